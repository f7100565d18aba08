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
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser/lexer"
	"github.com/bufbuild/tokentree/report"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

func newLexCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lex FILE...",
		Short: "Print the token tree of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := override(cmd, "format", a.cfg.Format)
			if err := checkFormat(format); err != nil {
				return err
			}

			for i, path := range args {
				top, err := a.encodeFile(cmd.ErrOrStderr(), path, span.FileID(i))
				if err != nil {
					return err
				}
				text, err := formatTree(top, format)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", path)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "", "output format (debug|pretty|yaml)")
	return cmd
}

// encodeFile reads a file and converts it into a token tree anchored at
// file. Lexer errors are rendered to errs.
func (a *app) encodeFile(errs io.Writer, path string, file span.FileID) (*tt.TopSubtree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	text := string(data)

	top := bridge.ParseToTokenTree(a.cfg.Edition, span.Anchor{File: file}, span.RootContext, text)
	if top != nil {
		a.logger.Debug("encoded", zap.String("path", path), zap.Int("entries", top.Len()))
		return top, nil
	}

	var r report.Report
	lexer.Lex(text, a.cfg.Edition).Diagnose(report.NewFile(path, text), &r)
	renderer := report.Renderer{Colorize: a.color}
	if _, _, err := renderer.Render(&r, errs); err != nil {
		return nil, fmt.Errorf("writing diagnostics: %w", err)
	}
	return nil, fmt.Errorf("%s: %d lexer errors", path, r.Len())
}

func formatTree(top *tt.TopSubtree, format string) (string, error) {
	switch format {
	case "debug":
		return top.Debug(), nil
	case "pretty":
		return top.Pretty(), nil
	case "yaml":
		return treeYAML(top)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
