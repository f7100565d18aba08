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

package bridge_test

import (
	"strings"
	"testing"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/internal/corpora"
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
)

// TestCorpus checks that every file under testdata survives both encodings
// and a round trip through the parser. Each output is empty on success.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:      "testdata",
		Refresh:   "TOKENTREE_REFRESH",
		Extension: "rs",
		Outputs: []corpora.Output{
			{Extension: "errors"},
			{Extension: "encode"},
			{Extension: "roundtrip"},
		},
		Test: func(t *testing.T, path, text string) []string {
			t.Parallel()

			parse := syntax.ParseText(text, parser.EntrySourceFile, parser.Edition2021)
			var errs strings.Builder
			for _, err := range parse.Errors() {
				errs.WriteString(err.String())
				errs.WriteByte('\n')
			}

			fromNode := bridge.SyntaxNodeToTokenTree(parse.Root(), span.RealMapper{File: 1}, at(0, 0), bridge.DesugarMbe)
			fromText := bridge.ParseToTokenTree(parser.Edition2021, anchor, span.RootContext, text)
			var encode string
			switch {
			case fromText == nil:
				encode = "lexer rejected the text\n"
			default:
				encode = corpora.Diff(fromNode.Debug(), fromText.Debug())
			}

			decoded, _ := bridge.TokenTreeToSyntaxNode(fromNode, parser.EntrySourceFile, parser.Edition2021, bridge.DecodeOptions{})
			roundtrip := corpora.Diff(
				strings.Join(tokens(decoded.Root()), "\n"),
				strings.Join(tokens(parse.Root()), "\n"),
			)
			if !decoded.Ok() {
				roundtrip += decoded.Debug()
			}

			return []string{errs.String(), encode, roundtrip}
		},
	}
	corpus.Run(t)
}
