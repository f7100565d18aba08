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
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
	"github.com/bufbuild/tokentree/tt"
)

var anchor = span.Anchor{File: 1}

func encode(t *testing.T, text string) *tt.TopSubtree {
	t.Helper()
	top := bridge.ParseToTokenTree(parser.Edition2021, anchor, span.RootContext, text)
	require.NotNil(t, top, "lexer rejected %q", text)
	require.NoError(t, top.Validate())
	return top
}

// flat describes every entry of a tree, without spans.
func flat(top *tt.TopSubtree) []string {
	var out []string
	for _, tree := range top.View().View().FlatTokens() {
		switch tree.Kind() {
		case tt.KindSubtree:
			sub, _ := tree.Subtree()
			out = append(out, fmt.Sprintf("subtree %v %d", sub.Delimiter.Kind, sub.Len))
		case tt.KindLiteral:
			lit, _ := tree.Literal()
			out = append(out, fmt.Sprintf("literal %v %q %q", lit.Kind, lit.Symbol, lit.Suffix))
		case tt.KindPunct:
			p, _ := tree.Punct()
			out = append(out, fmt.Sprintf("punct %c %v", p.Char, p.Spacing))
		case tt.KindIdent:
			id, _ := tree.Ident()
			out = append(out, fmt.Sprintf("ident %v", id))
		}
	}
	return out
}

func at(start, end uint32) span.Span {
	return span.Span{Range: span.NewRange(start, end), Anchor: anchor}
}

func TestParseToTokenTree(t *testing.T) {
	t.Parallel()

	empty := encode(t, "")
	assert.Equal(t, []string{"subtree $$ 0"}, flat(empty))

	top := encode(t, "foo(1, 2)")
	assert.Empty(t, cmp.Diff([]string{
		"subtree $$ 5",
		"ident foo",
		"subtree () 3",
		`literal Integer "1" ""`,
		"punct , alone",
		`literal Integer "2" ""`,
	}, flat(top)))

	trees := top.View().View().FlatTokens()
	assert.Equal(t, at(0, 0), trees[0].FirstSpan())
	assert.Equal(t, at(0, 3), trees[1].FirstSpan())
	sub, ok := trees[2].Subtree()
	require.True(t, ok)
	assert.Equal(t, at(3, 4), sub.Delimiter.Open)
	assert.Equal(t, at(8, 9), sub.Delimiter.Close)
	assert.Equal(t, at(7, 8), trees[5].FirstSpan())

	// A single delimited group becomes the top subtree.
	single := encode(t, "[a]")
	assert.Equal(t, []string{"subtree [] 1", "ident a"}, flat(single))
}

func TestParseToTokenTreeRejectsErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{`"abc`, "(a", "a)", "(]", "/* open"} {
		assert.Nil(t, bridge.ParseToTokenTree(parser.Edition2021, anchor, span.RootContext, text), "%q", text)
		assert.Nil(t, bridge.ParseToTokenTreeStaticSpan(parser.Edition2021, at(0, 0), text), "%q", text)
	}
}

func TestStaticSpan(t *testing.T) {
	t.Parallel()

	sp := span.Span{Range: span.NewRange(10, 20), Anchor: span.Anchor{File: 7, Ast: 3}, Ctx: 2}
	top := bridge.ParseToTokenTreeStaticSpan(parser.Edition2021, sp, "a + (b)")
	require.NotNil(t, top)
	for _, tree := range top.View().View().FlatTokens() {
		assert.Equal(t, sp, tree.FirstSpan())
		assert.Equal(t, sp, tree.LastSpan())
	}
}

func TestSpacing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"subtree $$ 4",
		"ident a",
		"punct < joint",
		"punct < alone",
		"ident b",
	}, flat(encode(t, "a<<b")))

	assert.Equal(t, []string{
		"subtree $$ 6",
		"ident x",
		"punct = alone",
		"punct & alone",
		"punct ' joint",
		"ident a",
		"punct ; alone",
	}, flat(encode(t, "x = & 'a;")))

	assert.Equal(t, []string{
		"subtree $$ 5",
		"punct - joint",
		"punct > alone",
		"ident _",
		"punct : joint",
		"punct : alone",
	}, flat(encode(t, "-> _ ::")))
}

func TestLiterals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"subtree $$ 4",
		`literal Integer "1" "u8"`,
		`literal StrRaw(1) "abc" ""`,
		`literal Float "1." ""`,
		`literal Err "\"a\"x" ""`,
	}, flat(encode(t, `1u8 r#"abc"# 1. "a"x`)))
}

func TestTokenToLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, symbol, suffix string
		kind                 tt.LitKind
	}{
		{text: "1u8", symbol: "1", suffix: "u8", kind: tt.LitInteger},
		{text: "0x2a", symbol: "0x2a", kind: tt.LitInteger},
		{text: "1.", symbol: "1.", kind: tt.LitFloat},
		{text: "1.0f64", symbol: "1.0", suffix: "f64", kind: tt.LitFloat},
		{text: `r#"abc"#`, symbol: "abc", kind: tt.Raw(tt.LitStrRaw, 1)},
		{text: `br"x"`, symbol: "x", kind: tt.Raw(tt.LitByteStrRaw, 0)},
		{text: `cr##"x"##`, symbol: "x", kind: tt.Raw(tt.LitCStrRaw, 2)},
		{text: `"a\n"`, symbol: `a\n`, kind: tt.LitStr},
		{text: `"a"_`, symbol: "a", kind: tt.LitStr},
		{text: `b"a"`, symbol: "a", kind: tt.LitByteStr},
		{text: `c"a"`, symbol: "a", kind: tt.LitCStr},
		{text: "'a'", symbol: "a", kind: tt.LitChar},
		{text: "b'a'", symbol: "a", kind: tt.LitByte},
		{text: `"a"x`, symbol: `"a"x`, kind: tt.LitErr},
		{text: "'a'q", symbol: "'a'q", kind: tt.LitErr},
		{text: "abc", symbol: "abc", kind: tt.LitErr},
		{text: "1 2", symbol: "1 2", kind: tt.LitErr},
	}

	sp := at(0, 3)
	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			lit := bridge.TokenToLiteral(test.text, sp)
			assert.Equal(t, test.kind, lit.Kind)
			assert.Equal(t, test.symbol, lit.Symbol.String())
			assert.Equal(t, test.suffix, lit.Suffix.String())
			assert.Equal(t, test.suffix != "", lit.HasSuffix())
			assert.Equal(t, sp, lit.Span)
		})
	}
}

func TestDocComments(t *testing.T) {
	t.Parallel()

	// Free text desugars in proc-macro mode.
	assert.Equal(t, []string{
		"subtree $$ 11",
		"punct # alone",
		"subtree [] 3",
		"ident doc",
		"punct = alone",
		`literal Str " a \\\"b\\\"" ""`,
		"punct # alone",
		"punct ! alone",
		"subtree [] 3",
		"ident doc",
		"punct = alone",
		`literal Str " c " ""`,
	}, flat(encode(t, "/// a \"b\"\n/*! c */\n// plain\n//// not doc")))

	// Syntax trees may desugar to raw strings.
	parse := syntax.ParseText("/// a \"#b\nfn f() {}", parser.EntrySourceFile, parser.Edition2021)
	require.True(t, parse.Ok())
	top := bridge.SyntaxNodeToTokenTree(parse.Root(), span.RealMapper{File: 1}, at(0, 0), bridge.DesugarMbe)
	assert.Equal(t, []string{
		"subtree $$ 9",
		"punct # alone",
		"subtree [] 3",
		"ident doc",
		"punct = alone",
		`literal StrRaw(2) " a \"#b" ""`,
		"ident fn",
		"ident f",
		"subtree () 0",
		"subtree {} 0",
	}, flat(top))

	// Every token of the attribute has the span of the comment.
	trees := top.View().View().FlatTokens()
	for _, tree := range trees[1:6] {
		assert.Equal(t, span.NewRange(0, 9), tree.FirstSpan().Range)
	}
}

func TestDesugarDocCommentText(t *testing.T) {
	t.Parallel()

	sym, kind := bridge.DesugarDocCommentText(` plain`, bridge.DesugarMbe)
	assert.Equal(t, " plain", sym.String())
	assert.Equal(t, tt.Raw(tt.LitStrRaw, 0), kind)

	sym, kind = bridge.DesugarDocCommentText(`"# and "##`, bridge.DesugarMbe)
	assert.Equal(t, `"# and "##`, sym.String())
	assert.Equal(t, tt.Raw(tt.LitStrRaw, 3), kind)

	sym, kind = bridge.DesugarDocCommentText("tab\there \"q\" \\ 'x'", bridge.DesugarProcMacro)
	assert.Equal(t, `tab\there \"q\" \\ \'x\'`, sym.String())
	assert.Equal(t, tt.LitStr, kind)

	mode, err := bridge.ParseDocCommentDesugarMode("proc-macro")
	require.NoError(t, err)
	assert.Equal(t, bridge.DesugarProcMacro, mode)
	assert.Equal(t, "mbe", bridge.DesugarMbe.String())
	_, err = bridge.ParseDocCommentDesugarMode("nope")
	assert.Error(t, err)
}

func TestSyntaxNodeToTokenTree(t *testing.T) {
	t.Parallel()

	// Compound operators are split back into single characters.
	parse := syntax.ParseText("a <<= b", parser.EntryExpr, parser.Edition2021)
	require.True(t, parse.Ok(), parse.Debug())
	top := bridge.SyntaxNodeToTokenTree(parse.Root(), span.RealMapper{File: 1}, at(0, 0), bridge.DesugarMbe)
	assert.Equal(t, []string{
		"subtree $$ 5",
		"ident a",
		"punct < joint",
		"punct < joint",
		"punct = alone",
		"ident b",
	}, flat(top))

	trees := top.View().View().FlatTokens()
	assert.Equal(t, at(0, 0), trees[0].FirstSpan())
	assert.Equal(t, span.NewRange(2, 3), trees[2].FirstSpan().Range)
	assert.Equal(t, span.NewRange(3, 4), trees[3].FirstSpan().Range)
	assert.Equal(t, span.NewRange(4, 5), trees[4].FirstSpan().Range)
	assert.Equal(t, span.NewRange(6, 7), trees[5].FirstSpan().Range)
}

func TestSyntaxNodeToTokenTreeModified(t *testing.T) {
	t.Parallel()

	parse := syntax.ParseText("fn f(x: u8) { x }", parser.EntrySourceFile, parser.Edition2021)
	require.True(t, parse.Ok())
	fn := parse.Root().FirstChild(parser.Fn)
	require.NotNil(t, fn)
	params := fn.FirstChild(parser.ParamList)
	require.NotNil(t, params)
	name := fn.FirstChild(parser.Name)
	require.NotNil(t, name)

	sp := at(100, 100)
	appendLeaves := map[syntax.Element][]tt.Leaf{
		name.Element(): {
			tt.Punct{Char: '<', Spacing: tt.Alone, Span: sp},
			tt.Ident{Symbol: tt.Intern("T"), Span: sp},
			tt.Punct{Char: '>', Spacing: tt.Alone, Span: sp},
		},
	}
	remove := map[syntax.Element]struct{}{params.Element(): {}}

	top := bridge.SyntaxNodeToTokenTreeModified(parse.Root(), span.RealMapper{File: 1}, appendLeaves, remove, at(0, 0), bridge.DesugarMbe)
	assert.Equal(t, []string{
		"subtree $$ 7",
		"ident fn",
		"ident f",
		"punct < alone",
		"ident T",
		"punct > alone",
		"subtree {} 1",
		"ident x",
	}, flat(top))

	// The maps belong to the caller.
	assert.Len(t, appendLeaves, 1)
	assert.Len(t, remove, 1)
}

func TestDecodeSpacing(t *testing.T) {
	t.Parallel()

	parse, _ := bridge.TokenTreeToSyntaxNode(encode(t, "a << b"), parser.EntryExpr, parser.Edition2021, bridge.DecodeOptions{})
	require.True(t, parse.Ok(), parse.Debug())
	assert.Equal(t, "a<<b", parse.Root().Text())
	assert.Equal(t, []parser.Kind{parser.Ident, parser.Shl, parser.Ident}, kinds(parse.Root()))

	parse, _ = bridge.TokenTreeToSyntaxNode(encode(t, "Vec<Vec<T>>"), parser.EntryType, parser.Edition2021, bridge.DecodeOptions{})
	require.True(t, parse.Ok(), parse.Debug())
	assert.Equal(t, "Vec<Vec<T>>", parse.Root().Text())
	assert.Equal(t, []parser.Kind{
		parser.Ident, parser.LAngle, parser.Ident, parser.LAngle, parser.Ident,
		parser.RAngle, parser.RAngle,
	}, kinds(parse.Root()))

	// Alone punctuation next to more punctuation gets a space.
	parse, _ = bridge.TokenTreeToSyntaxNode(encode(t, "a = -b"), parser.EntryExpr, parser.Edition2021, bridge.DecodeOptions{})
	require.True(t, parse.Ok(), parse.Debug())
	assert.Equal(t, "a= -b", parse.Root().Text())
}

func TestDecodeFloatSplit(t *testing.T) {
	t.Parallel()

	top := encode(t, "x.1.2")
	parse, spans := bridge.TokenTreeToSyntaxNode(top, parser.EntryExpr, parser.Edition2021, bridge.DecodeOptions{})
	require.True(t, parse.Ok(), parse.Debug())
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
      INT_NUMBER@2..3 "1"
  DOT@3..4 "."
  NAME_REF@4..5
    INT_NUMBER@4..5 "2"
`, "\n"), parse.Debug())

	x, ok := spans.SpanAt(0)
	require.True(t, ok)
	assert.Equal(t, at(0, 1), x)
	for offset := uint32(2); offset < 5; offset++ {
		sp, ok := spans.SpanAt(offset)
		require.True(t, ok)
		assert.Equal(t, at(2, 5), sp, "offset %d", offset)
	}
	assert.Equal(t, uint32(5), spans.End())
}

func TestDecodeSpanMap(t *testing.T) {
	t.Parallel()

	parse, spans := bridge.TokenTreeToSyntaxNode(encode(t, "S<'b, T>"), parser.EntryType, parser.Edition2021, bridge.DecodeOptions{})
	require.True(t, parse.Ok(), parse.Debug())
	assert.Equal(t, "S<'b,T>", parse.Root().Text())

	type entry struct {
		Range span.TextRange
		Span  span.Span
	}
	var got []entry
	for r, sp := range spans.All() {
		got = append(got, entry{r, sp})
	}
	assert.Empty(t, cmp.Diff([]entry{
		{span.NewRange(0, 1), at(0, 1)},
		{span.NewRange(1, 2), at(1, 2)},
		// The quote and the identifier merge into one lifetime.
		{span.NewRange(2, 4), at(2, 4)},
		{span.NewRange(4, 5), at(4, 5)},
		{span.NewRange(5, 6), at(6, 7)},
		{span.NewRange(6, 7), at(7, 8)},
	}, got))
}

func TestDecodeContextEq(t *testing.T) {
	t.Parallel()

	// Two halves of `<<` from different contexts.
	b := tt.NewBuilder(tt.InvisibleDelimiter(at(0, 0)))
	b.Extend(
		tt.Ident{Symbol: tt.Intern("a"), Span: at(0, 1)},
		tt.Punct{Char: '<', Spacing: tt.Joint, Span: at(1, 2)},
		tt.Punct{Char: '<', Spacing: tt.Alone, Span: at(2, 3).WithCtx(5)},
		tt.Ident{Symbol: tt.Intern("b"), Span: at(3, 4)},
	)
	top := b.Build()

	_, spans := bridge.TokenTreeToSyntaxNode(top, parser.EntryExpr, parser.Edition2021, bridge.DecodeOptions{})
	sp, ok := spans.SpanAt(1)
	require.True(t, ok)
	assert.Equal(t, at(1, 2), sp)

	anyCtx := func(a, b span.Span) bool { return a.Anchor == b.Anchor }
	_, spans = bridge.TokenTreeToSyntaxNode(top, parser.EntryExpr, parser.Edition2021, bridge.DecodeOptions{SameContext: anyCtx})
	sp, ok = spans.SpanAt(1)
	require.True(t, ok)
	assert.Equal(t, at(1, 3), sp)
}

func TestDecodeLoneQuote(t *testing.T) {
	t.Parallel()

	b := tt.NewBuilder(tt.InvisibleDelimiter(at(0, 0)))
	b.Extend(
		tt.Punct{Char: '\'', Spacing: tt.Alone, Span: at(0, 1)},
		tt.Punct{Char: ';', Spacing: tt.Alone, Span: at(1, 2)},
	)
	top := b.Build()

	assert.Panics(t, func() {
		bridge.TokenTreeToSyntaxNode(top, parser.EntryExpr, parser.Edition2021, bridge.DecodeOptions{})
	})
}

func TestDecodeSpanEdition(t *testing.T) {
	t.Parallel()

	// `async` is only a keyword from 2018 on.
	top := encode(t, "async")
	opts := bridge.DecodeOptions{
		SpanEdition: func(span.SyntaxContext) parser.Edition { return parser.Edition2015 },
	}
	parse, _ := bridge.TokenTreeToSyntaxNode(top, parser.EntryExpr, parser.Edition2021, opts)
	assert.Equal(t, []parser.Kind{parser.Ident}, kinds(parse.Root()))

	in := bridge.ToParserInput(top.TokenTrees(), parser.Edition2021)
	assert.Equal(t, parser.AsyncKw, in.Kind(0))
	in = bridge.ToParserInput(top.TokenTrees(), parser.Edition2015)
	assert.Equal(t, parser.Ident, in.Kind(0))
	assert.Equal(t, parser.AsyncKw, in.ContextualKind(0))
}

func TestToParserInput(t *testing.T) {
	t.Parallel()

	in := bridge.ToParserInput(encode(t, "r#fn _ 'a x.1.5 (1.)").TokenTrees(), parser.Edition2021)
	want := []parser.Kind{
		parser.Ident, parser.Underscore, parser.LifetimeIdent, parser.Ident,
		parser.Dot, parser.FloatNumber, parser.LParen, parser.FloatNumber, parser.RParen,
	}
	require.Equal(t, len(want), in.Len())
	for i, kind := range want {
		assert.Equal(t, kind, in.Kind(i), "token %d", i)
	}
	assert.True(t, in.IsJoint(5), "a float with a fractional part is joint")
	assert.False(t, in.IsJoint(7), "a float ending in a dot is not")
	assert.False(t, in.IsJoint(4))
}

func TestParseExprsWithSep(t *testing.T) {
	t.Parallel()

	exprs := bridge.ParseExprsWithSep(encode(t, "1, f(a, b), x + y,"), ',', parser.Edition2021)
	var texts []string
	for _, expr := range exprs {
		texts = append(texts, expr.Text())
	}
	assert.Equal(t, []string{"1", "f(a,b)", "x+y"}, texts)
	assert.Equal(t, parser.CallExpr, exprs[1].Kind())

	assert.Empty(t, bridge.ParseExprsWithSep(encode(t, ""), ',', parser.Edition2021))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"fn f(a: u8) -> u8 { let x = a << 2; x.0.1 }",
		"struct S<'a> { r: &'a str }",
		"use a::{b, c::*};",
		"fn g() { v.push(1.5); if a >= b { return; } }",
	}
	for _, input := range inputs {
		parse := syntax.ParseText(input, parser.EntrySourceFile, parser.Edition2021)
		require.True(t, parse.Ok(), "%q\n%s", input, parse.Debug())

		top := bridge.SyntaxNodeToTokenTree(parse.Root(), span.RealMapper{File: 1}, at(0, 0), bridge.DesugarMbe)
		decoded, _ := bridge.TokenTreeToSyntaxNode(top, parser.EntrySourceFile, parser.Edition2021, bridge.DecodeOptions{})
		assert.True(t, decoded.Ok(), "%q\n%s", input, decoded.Debug())
		assert.Empty(t, cmp.Diff(tokens(parse.Root()), tokens(decoded.Root())), "%q", input)
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, bridge.Logger())
}

func kinds(node *syntax.Node) []parser.Kind {
	var out []parser.Kind
	for tok := range node.Tokens() {
		if !tok.Kind().IsTrivia() {
			out = append(out, tok.Kind())
		}
	}
	return out
}

func tokens(node *syntax.Node) []string {
	var out []string
	for tok := range node.Tokens() {
		if !tok.Kind().IsTrivia() {
			out = append(out, fmt.Sprintf("%v %s", tok.Kind(), tok.Text()))
		}
	}
	return out
}
