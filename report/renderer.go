// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// Upgrades all warnings to errors.
	WarningsAreErrors bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool

	// If set, rendering a diagnostic will show the debug footer.
	ShowDebug bool
}

// Render renders a diagnostic report.
//
// Returns the number of errors and warnings rendered. The error return is an
// error writing to out.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		if !r.ShowRemarks && d.level == Remark {
			continue
		}

		text := r.Diagnostic(d)
		if !r.Compact {
			text += "\n"
		}
		if _, err = fmt.Fprintln(out, text); err != nil {
			return errorCount, warningCount, err
		}

		switch {
		case d.level == Error, d.level == ICE:
			errorCount++
		case d.level == Warning && r.WarningsAreErrors:
			errorCount++
		case d.level == Warning:
			warningCount++
		}
	}
	if r.Compact {
		return errorCount, warningCount, nil
	}

	c := r.styles()
	switch {
	case errorCount > 0 && warningCount > 0:
		_, err = fmt.Fprintf(out, "%sencountered %v and %v%s\n",
			c.bError, plural(errorCount, "error"), plural(warningCount, "warning"), c.reset)
	case errorCount > 0:
		_, err = fmt.Fprintf(out, "%sencountered %v%s\n", c.bError, plural(errorCount, "error"), c.reset)
	case warningCount > 0:
		_, err = fmt.Fprintf(out, "%sencountered %v%s\n", c.bWarning, plural(warningCount, "warning"), c.reset)
	}
	return errorCount, warningCount, err
}

// RenderString is a helper for calling [Renderer.Render] with a
// [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *Diagnostic) string {
	level := d.level
	if level == Warning && r.WarningsAreErrors {
		level = Error
	}
	c := r.styles()

	// The compact style imitates the Go compiler.
	if r.Compact {
		primary := d.Primary()
		switch {
		case !primary.IsZero():
			loc := primary.StartLoc()
			return fmt.Sprintf("%s%s:%d:%d: %v: %s%s",
				c.normal(level), primary.File.Path(), loc.Line, loc.Column, level, d.message, c.reset)
		case d.inFile != "":
			return fmt.Sprintf("%s%s: %v: %s%s", c.normal(level), d.inFile, level, d.message, c.reset)
		default:
			return fmt.Sprintf("%s%v: %s%s", c.normal(level), level, d.message, c.reset)
		}
	}

	// Otherwise, imitate the Rust compiler.
	var out strings.Builder
	fmt.Fprint(&out, c.bold(level), level, ": ", d.message, c.reset)

	var greatestLine int
	for _, a := range d.annotations {
		greatestLine = max(greatestLine, a.StartLoc().Line)
	}
	bar := max(2, len(strconv.Itoa(greatestLine)))

	for i, group := range groupByFile(d.annotations) {
		arrow := "-->"
		if i > 0 {
			arrow = ":::"
		}
		loc := group[0].StartLoc()
		fmt.Fprintf(&out, "\n%s%s%s %s:%d:%d", c.nAccent, pad(bar), arrow, group[0].File.Path(), loc.Line, loc.Column)
		fmt.Fprintf(&out, "\n%s |", pad(bar))
		renderWindow(&out, bar, level, group, &c)
	}

	if len(d.annotations) == 0 && d.inFile != "" {
		fmt.Fprintf(&out, "\n%s%s--> %s", c.nAccent, pad(bar-1), d.inFile)
	}

	type footer struct{ color, label, text string }
	var footers []footer
	for _, n := range d.notes {
		footers = append(footers, footer{c.bRemark, "note", n})
	}
	for _, h := range d.help {
		footers = append(footers, footer{c.bRemark, "help", h})
	}
	if r.ShowDebug {
		for _, dbg := range d.debug {
			footers = append(footers, footer{c.bError, "debug", dbg})
		}
	}
	for _, f := range footers {
		fmt.Fprintf(&out, "\n%s%s = %s%s: %s", c.nAccent, pad(bar), f.color, f.label, c.reset)
		for i, line := range strings.Split(f.text, "\n") {
			if i > 0 {
				out.WriteString("\n" + pad(bar+3+len(f.label)+2))
			}
			out.WriteString(line)
		}
	}

	out.WriteString(c.reset)
	return out.String()
}

// groupByFile splits annotations into runs with the same file, preserving the
// position of the primary annotation at the front.
func groupByFile(annotations []annotation) [][]annotation {
	var groups [][]annotation
	for _, a := range annotations {
		idx := slices.IndexFunc(groups, func(g []annotation) bool { return g[0].File == a.File })
		if idx < 0 {
			groups = append(groups, []annotation{a})
			continue
		}
		groups[idx] = append(groups[idx], a)
	}
	return groups
}

// renderWindow renders the source lines annotated in a single file, with
// underlines beneath each annotation.
//
// Annotations spanning several lines are underlined to the end of their first
// line.
func renderWindow(out *strings.Builder, bar int, level Level, annotations []annotation, c *styles) {
	sorted := slices.Clone(annotations)
	slices.SortStableFunc(sorted, func(a, b annotation) int { return a.Start - b.Start })

	prevLine := 0
	for i := 0; i < len(sorted); {
		line := sorted[i].StartLoc().Line
		j := i
		for j < len(sorted) && sorted[j].StartLoc().Line == line {
			j++
		}

		if prevLine != 0 && line > prevLine+1 {
			fmt.Fprintf(out, "\n%s...", c.nAccent)
		}
		prevLine = line

		file := sorted[i].File
		text := file.Line(line)
		fmt.Fprintf(out, "\n%s%*d |%s ", c.nAccent, bar, line, c.reset)
		stringWidth(0, text, out)

		lineStart := strings.LastIndexByte(file.Text()[:sorted[i].Start], '\n') + 1
		for _, a := range sorted[i:j] {
			start := a.Start - lineStart
			end := min(a.End-lineStart, len(text))
			if end < start {
				end = start
			}
			col := stringWidth(0, text[:start], nil)
			width := max(1, stringWidth(col, text[start:end], nil)-col)

			color, mark := c.nAccent, "-"
			if a.primary {
				color, mark = c.normal(level), "^"
			}
			fmt.Fprintf(out, "\n%s%s |%s %s%s", c.nAccent, pad(bar), pad(col), color, strings.Repeat(mark, width))
			if a.message != "" {
				fmt.Fprintf(out, " %s", a.message)
			}
			out.WriteString(c.reset)
		}
		i = j
	}
}

func pad(n int) string {
	return strings.Repeat(" ", max(n, 0))
}

type pluralized struct {
	n    int
	what string
}

func plural(n int, what string) pluralized {
	return pluralized{n, what}
}

// String implements [fmt.Stringer].
func (p pluralized) String() string {
	if p.n == 1 {
		return "1 " + p.what
	}
	return fmt.Sprintf("%d %ss", p.n, p.what)
}

// styles is the colors used for rendering diagnostics.
type styles struct {
	reset              string
	nError, bError     string
	nWarning, bWarning string
	nRemark, bRemark   string
	nAccent            string
}

func (r Renderer) styles() styles {
	if !r.Colorize {
		return styles{}
	}
	return styles{
		reset:    "\033[0m",
		nError:   "\033[0;31m",
		bError:   "\033[1;31m",
		nWarning: "\033[0;33m",
		bWarning: "\033[1;33m",
		nRemark:  "\033[0;36m",
		bRemark:  "\033[1;36m",
		// Blue, for line numbers and other details that should stand apart
		// from the source code.
		nAccent: "\033[0;34m",
	}
}

func (c styles) normal(l Level) string {
	switch l {
	case ICE, Error:
		return c.nError
	case Warning:
		return c.nWarning
	default:
		return c.nRemark
	}
}

func (c styles) bold(l Level) string {
	switch l {
	case ICE, Error:
		return c.bError
	case Warning:
		return c.bWarning
	default:
		return c.bRemark
	}
}
