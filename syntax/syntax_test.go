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

package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/report"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
)

func TestParseText(t *testing.T) {
	t.Parallel()

	parse := syntax.ParseText("fn f() {}", parser.EntrySourceFile, parser.Edition2021)
	assert.True(t, parse.Ok())
	assert.Equal(t, strings.TrimLeft(`
SOURCE_FILE@0..9
  FN@0..9
    FN_KW@0..2 "fn"
    WHITESPACE@2..3 " "
    NAME@3..4
      IDENT@3..4 "f"
    PARAM_LIST@4..6
      L_PAREN@4..5 "("
      R_PAREN@5..6 ")"
    WHITESPACE@6..7 " "
    BLOCK_EXPR@7..9
      STMT_LIST@7..9
        L_CURLY@7..8 "{"
        R_CURLY@8..9 "}"
`, "\n"), parse.Debug())
}

func TestFloatSplit(t *testing.T) {
	t.Parallel()

	parse := syntax.ParseText("x.0.1", parser.EntryExpr, parser.Edition2021)
	assert.True(t, parse.Ok())
	assert.Equal(t, strings.TrimLeft(`
FIELD_EXPR@0..5
  FIELD_EXPR@0..3
    PATH_EXPR@0..1
      PATH@0..1
        PATH_SEGMENT@0..1
          NAME_REF@0..1
            IDENT@0..1 "x"
    DOT@1..2 "."
    NAME_REF@2..3
      INT_NUMBER@2..3 "0"
  DOT@3..4 "."
  NAME_REF@4..5
    INT_NUMBER@4..5 "1"
`, "\n"), parse.Debug())
}

func TestTriviaAttachment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		fnStart    uint32
	}{
		{name: "doc", text: "/// doc\nfn f() {}", fnStart: 0},
		{name: "plain", text: "// a\nfn f() {}", fnStart: 0},
		{name: "blank_line", text: "// a\n\nfn f() {}", fnStart: 6},
		{name: "blank_line_after_doc", text: "/// a\n\nfn f() {}", fnStart: 0},
		{name: "blank_line_before_doc", text: "// a\n\n/// b\nfn f() {}", fnStart: 6},
		{name: "inner", text: "//! a\nfn f() {}", fnStart: 6},
		{name: "four_slashes", text: "// a\n\n//// b\nfn f() {}", fnStart: 6},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			parse := syntax.ParseText(test.text, parser.EntrySourceFile, parser.Edition2021)
			require.True(t, parse.Ok())
			fn := parse.Root().FirstChild(parser.Fn)
			require.NotNil(t, fn)
			assert.Equal(t, span.NewRange(test.fnStart, uint32(len(test.text))), fn.Range())
			assert.Equal(t, test.text, parse.Root().Text())
		})
	}
}

func TestLossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"  // only trivia\n",
		"}",
		"fn",
		"struct S { a: u8, }\n",
		"fn main() { let x = 1 + 2 * 3; x.0.1; }",
		"use a::{b, c::*};",
	}
	entries := []parser.TopEntry{
		parser.EntrySourceFile, parser.EntryMacroItems, parser.EntryMacroStmts,
		parser.EntryPattern, parser.EntryType, parser.EntryExpr, parser.EntryMetaItem,
	}
	for _, entry := range entries {
		for _, input := range inputs {
			parse := syntax.ParseText(input, entry, parser.Edition2021)
			assert.Equal(t, input, parse.Root().Text(), "%v: %q", entry, input)
			assert.Equal(t, span.RangeOf(0, len(input)), parse.Root().Range(), "%v: %q", entry, input)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	text := `"abc`
	parse := syntax.ParseText(text, parser.EntryExpr, parser.Edition2021)
	require.NotEmpty(t, parse.Errors())
	last := parse.Errors()[len(parse.Errors())-1]
	assert.Equal(t, span.NewRange(0, 4), last.Range)

	file := report.NewFile("a.rs", text)
	var r report.Report
	parse.Diagnose(file, &r)
	assert.Equal(t, len(parse.Errors()), r.Len())
	assert.True(t, r.HasErrors())
	assert.True(t, r.Diagnostics[0].Is("parse"))
}

func TestPreorder(t *testing.T) {
	t.Parallel()

	root := syntax.ParseText("fn f() {}", parser.EntrySourceFile, parser.Edition2021).Root()

	var entered []string
	walk := root.Preorder()
	for ev := range walk.All() {
		if !ev.Enter {
			continue
		}
		entered = append(entered, ev.Element.Kind().String())
		if ev.Element.Kind() == parser.ParamList {
			walk.SkipSubtree()
		}
	}
	assert.Equal(t, []string{
		"SOURCE_FILE", "FN", "FN_KW", "WHITESPACE", "NAME", "IDENT",
		"PARAM_LIST", "WHITESPACE", "BLOCK_EXPR", "STMT_LIST", "L_CURLY", "R_CURLY",
	}, entered)

	var leaves int
	for ev := range root.Preorder().All() {
		if !ev.Enter {
			leaves++
		}
	}
	var enters int
	for ev := range root.Preorder().All() {
		if ev.Enter {
			enters++
		}
	}
	assert.Equal(t, enters, leaves)
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	root := syntax.ParseText("fn f() {}", parser.EntrySourceFile, parser.Edition2021).Root()

	var texts []string
	for tok := root.FirstToken(); tok != nil; tok = tok.NextToken() {
		texts = append(texts, tok.Text())
	}
	assert.Equal(t, []string{"fn", " ", "f", "(", ")", " ", "{", "}"}, texts)

	texts = nil
	for tok := root.LastToken(); tok != nil; tok = tok.PrevToken() {
		texts = append(texts, tok.Text())
	}
	assert.Equal(t, []string{"}", "{", " ", ")", "(", "f", " ", "fn"}, texts)

	fn := root.FirstChild(parser.Fn)
	name := fn.FirstChild(parser.Name)
	require.NotNil(t, name)
	next, ok := name.NextSibling()
	require.True(t, ok)
	assert.Equal(t, parser.ParamList, next.Kind())
	prev, ok := name.PrevSibling()
	require.True(t, ok)
	assert.Equal(t, parser.Whitespace, prev.Kind())
	assert.Equal(t, fn, name.Parent())

	var kinds []parser.Kind
	for node := range name.Ancestors() {
		kinds = append(kinds, node.Kind())
	}
	assert.Equal(t, []parser.Kind{parser.Name, parser.Fn, parser.SourceFile}, kinds)

	var count int
	for range root.Descendants() {
		count++
	}
	assert.Equal(t, 6, count)
}

func TestTreeBuilder(t *testing.T) {
	t.Parallel()

	var b syntax.TreeBuilder
	b.StartNode(parser.Literal)
	b.Token(parser.IntNumber, "42")
	b.Error("oops", b.Offset())
	assert.Equal(t, 1, b.Depth())
	b.FinishNode()

	parse := b.Finish()
	assert.Equal(t, "LITERAL@0..2\n  INT_NUMBER@0..2 \"42\"\nerror 2..2: oops\n", parse.Debug())
	assert.False(t, parse.Ok())

	assert.Panics(t, func() {
		var b syntax.TreeBuilder
		b.FinishNode()
	})
	assert.Panics(t, func() {
		var b syntax.TreeBuilder
		b.StartNode(parser.Literal)
		b.Finish()
	})

	var empty syntax.TreeBuilder
	assert.Equal(t, parser.Error, empty.Finish().Root().Kind())
}

func TestDocCommentKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.IsOuterDoc("/// a"))
	assert.True(t, syntax.IsOuterDoc("/** a */"))
	assert.False(t, syntax.IsOuterDoc("//// a"))
	assert.False(t, syntax.IsOuterDoc("/*** a */"))
	assert.False(t, syntax.IsOuterDoc("// a"))
	assert.True(t, syntax.IsInnerDoc("//! a"))
	assert.True(t, syntax.IsInnerDoc("/*! a */"))
	assert.False(t, syntax.IsInnerDoc("/// a"))
}
