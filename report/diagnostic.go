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

import "fmt"

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Internal error. Indicates a panic within the library.
	ICE Level = 1 + iota
	// Red. Indicates that the input is ill-formed.
	Error
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case ICE:
		return "internal error"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("report.Level(%d)", int(l))
	}
}

// Tag is a machine-readable identification for a diagnostic, such as "lex"
// or "parse".
type Tag string

// Apply implements [DiagnosticOption].
func (t Tag) Apply(d *Diagnostic) {
	if d.tag != "" {
		panic("tokentree/report: set diagnostic tag more than once")
	}
	d.tag = t
}

// Diagnostic is a message about some input, which can be rendered with a
// [Renderer].
//
// To construct a diagnostic, create one using a function like [Report.Error].
// Apply at minimum [Message], and either [InFile] or at least one [Snippet].
type Diagnostic struct {
	tag     Tag
	message string
	level   Level
	inFile  string

	annotations        []annotation
	notes, help, debug []string
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.With] are ignored.
type DiagnosticOption interface {
	Apply(*Diagnostic)
}

// Message returns the main message of this diagnostic.
func (d *Diagnostic) Message() string {
	return d.message
}

// Level returns this diagnostic's level.
func (d *Diagnostic) Level() Level {
	return d.level
}

// Is checks whether this diagnostic has a particular tag.
func (d *Diagnostic) Is(tag Tag) bool {
	return d.tag == tag
}

// Primary returns this diagnostic's primary span, if it has one. Otherwise,
// returns the zero span.
func (d *Diagnostic) Primary() Span {
	for _, a := range d.annotations {
		if a.primary {
			return a.Span
		}
	}
	return Span{}
}

// Notes returns the notes attached to this diagnostic.
func (d *Diagnostic) Notes() []string {
	return d.notes
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.Apply(d)
		}
	}
	return d
}

// Message returns a DiagnosticOption that sets the main diagnostic message.
func Message(format string, args ...any) DiagnosticOption {
	return message(fmt.Sprintf(format, args...))
}

// InFile is a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
type InFile string

// Apply implements [DiagnosticOption].
func (f InFile) Apply(d *Diagnostic) {
	d.inFile = string(f)
}

// Snippet returns a DiagnosticOption that adds an annotated span to a
// diagnostic.
//
// Additional arguments are passed to [fmt.Sprintf] to produce a message to go
// with the span; the first must be a format string. The first snippet added
// is the primary one.
//
// If at has a zero span, returns nil.
func Snippet(at Spanner, args ...any) DiagnosticOption {
	if at == nil {
		return nil
	}
	span := at.Span()
	if span.IsZero() {
		return nil
	}

	a := annotation{Span: span}
	if len(args) > 0 {
		format, ok := args[0].(string)
		if !ok {
			panic("tokentree/report: expected string as first Snippet argument")
		}
		a.message = fmt.Sprintf(format, args[1:]...)
	}
	return a
}

// Note returns a DiagnosticOption that provides the user with context about
// the diagnostic, after the annotations.
func Note(format string, args ...any) DiagnosticOption {
	return note(fmt.Sprintf(format, args...))
}

// Help returns a DiagnosticOption that suggests how to resolve the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return help(fmt.Sprintf(format, args...))
}

// Debug returns a DiagnosticOption that appends information not intended for
// normal users.
func Debug(format string, args ...any) DiagnosticOption {
	return debugNote(fmt.Sprintf(format, args...))
}

type annotation struct {
	Span
	message string
	primary bool
}

func (a annotation) Apply(d *Diagnostic) {
	a.primary = len(d.annotations) == 0
	d.annotations = append(d.annotations, a)
}

type (
	message   string
	note      string
	help      string
	debugNote string
)

func (m message) Apply(d *Diagnostic) {
	if d.message != "" {
		panic("tokentree/report: set diagnostic message more than once")
	}
	d.message = string(m)
}

func (n note) Apply(d *Diagnostic)      { d.notes = append(d.notes, string(n)) }
func (n help) Apply(d *Diagnostic)      { d.help = append(d.help, string(n)) }
func (n debugNote) Apply(d *Diagnostic) { d.debug = append(d.debug, string(n)) }
