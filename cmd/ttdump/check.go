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

package main

import (
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
	"github.com/bufbuild/tokentree/tt"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check GLOB...",
		Short: "Check that files survive a round trip through token trees",
		Long: `For every file matching one of the globs, parse the file, convert the
syntax tree to a token tree, parse that token tree again, and check that
converting the result yields the same token tree.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := bridge.ParseDocCommentDesugarMode(override(cmd, "doc-comments", a.cfg.DocComments))
			if err != nil {
				return err
			}
			jobs, _ := cmd.Flags().GetInt("jobs")
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}

			files, err := expandGlobs(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %q", args)
			}

			results := make([]checkResult, len(files))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(min(jobs, len(files)))
			for i, path := range files {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					text, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("reading %q: %w", path, err)
					}
					results[i] = checkRoundTrip(path, string(text), span.FileID(i), a.cfg.Edition, mode)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return a.summarize(cmd, results)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "number of files to check at once (default GOMAXPROCS)")
	cmd.Flags().String("doc-comments", "", "doc comment desugaring (mbe|proc-macro)")
	return cmd
}

func expandGlobs(globs []string) ([]string, error) {
	var files []string
	for _, glob := range globs {
		matches, err := doublestar.FilepathGlob(glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", glob, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

type checkResult struct {
	path     string
	problems []string
}

// checkRoundTrip converts the syntax tree of text into a token tree, parses
// that tree back, and converts the result again. Both token trees must have
// the same entries; spans are not compared, since glued punctuation shares
// one span after parsing.
func checkRoundTrip(path, text string, file span.FileID, edition parser.Edition, mode bridge.DocCommentDesugarMode) checkResult {
	result := checkResult{path: path}
	if bridge.ParseToTokenTree(edition, span.Anchor{File: file}, span.RootContext, text) == nil {
		result.problems = append(result.problems, "lexer errors")
		return result
	}

	parse := syntax.ParseText(text, parser.EntrySourceFile, edition)
	for _, err := range parse.Errors() {
		result.problems = append(result.problems, err.String())
	}
	if !parse.Ok() {
		return result
	}

	callSite := span.Span{Anchor: span.Anchor{File: file}}
	top := bridge.SyntaxNodeToTokenTree(parse.Root(), span.RealMapper{File: file}, callSite, mode)
	decoded, spans := bridge.TokenTreeToSyntaxNode(top, parser.EntrySourceFile, edition, bridge.DecodeOptions{})
	for _, err := range decoded.Errors() {
		result.problems = append(result.problems, "after round trip: "+err.String())
	}
	if !decoded.Ok() {
		return result
	}

	again := bridge.SyntaxNodeToTokenTree(decoded.Root(), spans, callSite, mode)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        describe(top),
		B:        describe(again),
		FromFile: "encoded",
		ToFile:   "round trip",
		Context:  2,
	})
	switch {
	case err != nil:
		result.problems = append(result.problems, err.Error())
	case diff != "":
		result.problems = append(result.problems, diff)
	}
	return result
}

// describe lists the entries of a token tree without their spans, one per
// line.
//
// The spacing of a semicolon, or of punctuation right before a lifetime
// quote, is left out: text rebuilt from a token tree never separates those
// from what follows, so they come back joint.
func describe(top *tt.TopSubtree) []string {
	trees := top.View().View().FlatTokens()
	lines := make([]string, 0, len(trees))
	for i, tree := range trees {
		switch tree.Kind() {
		case tt.KindSubtree:
			sub, _ := tree.Subtree()
			lines = append(lines, fmt.Sprintf("SUBTREE %v %d\n", sub.Delimiter.Kind, sub.Len))
		case tt.KindPunct:
			p, _ := tree.Punct()
			if p.Char == ';' || (i+1 < len(trees) && trees[i+1].IsPunct('\'')) {
				lines = append(lines, fmt.Sprintf("PUNCT %c\n", p.Char))
				break
			}
			lines = append(lines, fmt.Sprintf("PUNCT %c %v\n", p.Char, p.Spacing))
		case tt.KindLiteral:
			lit, _ := tree.Literal()
			lines = append(lines, fmt.Sprintf("LITERAL %v %v\n", lit.Kind, lit))
		case tt.KindIdent:
			id, _ := tree.Ident()
			lines = append(lines, fmt.Sprintf("IDENT %v\n", id))
		}
	}
	return lines
}

func (a *app) summarize(cmd *cobra.Command, results []checkResult) error {
	out := cmd.OutOrStdout()
	pass := paint(a.color, color.FgGreen, color.Bold)
	fail := paint(a.color, color.FgRed, color.Bold)

	var failed int
	for _, result := range results {
		if len(result.problems) == 0 {
			pass.Fprint(out, "ok  ")
			fmt.Fprintln(out, result.path)
			continue
		}
		failed++
		fail.Fprint(out, "FAIL")
		fmt.Fprintf(out, " %s\n", result.path)
		for _, problem := range result.problems {
			fmt.Fprintf(out, "    %s\n", problem)
		}
		a.logger.Debug("round trip failed", zap.String("path", result.path), zap.Int("problems", len(result.problems)))
	}

	summary := paint(a.color, color.Bold)
	summary.Fprintf(out, "%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed the round trip", failed, len(results))
	}
	return nil
}
