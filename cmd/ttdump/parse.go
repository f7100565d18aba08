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

	"github.com/spf13/cobra"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/report"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse the token tree of a file and print the syntax tree and span map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := parser.ParseEntry(override(cmd, "entry", a.cfg.Entry))
			if err != nil {
				return err
			}
			top, err := a.encodeFile(cmd.ErrOrStderr(), args[0], 0)
			if err != nil {
				return err
			}

			parse, spans := bridge.TokenTreeToSyntaxNode(top, entry, a.cfg.Edition, bridge.DecodeOptions{})
			out := cmd.OutOrStdout()
			fmt.Fprint(out, parse.Root().Debug())
			if showSpans, _ := cmd.Flags().GetBool("spans"); showSpans {
				fmt.Fprintln(out, "spans:")
				for rng, sp := range spans.All() {
					fmt.Fprintf(out, "  %v -> %v\n", rng, sp)
				}
			}

			if parse.Ok() {
				return nil
			}
			// Errors point into the rebuilt text, not the file.
			var r report.Report
			parse.Diagnose(report.NewFile(args[0]+" (reparsed)", parse.Root().Text()), &r)
			renderer := report.Renderer{Colorize: a.color}
			if _, _, err := renderer.Render(&r, cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("writing diagnostics: %w", err)
			}
			return fmt.Errorf("%s: %d parse errors as %v", args[0], len(parse.Errors()), entry)
		},
	}
	cmd.Flags().StringP("entry", "e", "", "entry point (file|items|stmts|expr|type|pattern|meta)")
	cmd.Flags().Bool("spans", true, "print the span map")
	return cmd
}
