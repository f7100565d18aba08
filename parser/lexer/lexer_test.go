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

package lexer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/parser/lexer"
	"github.com/bufbuild/tokentree/report"
)

// tokens dumps the non-whitespace tokens of l.
func tokens(l *lexer.Lexed) []string {
	var out []string
	for i := range l.Len() {
		if l.Kind(i) == parser.Whitespace {
			continue
		}
		out = append(out, fmt.Sprintf("%v %s", l.Kind(i), l.Text(i)))
	}
	return out
}

func TestLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		edition    parser.Edition
		want       []string
	}{
		{
			name:    "punct",
			edition: parser.Edition2021,
			text:    "fn main() { x += 1; }",
			want: []string{
				"FN_KW fn", "IDENT main", "L_PAREN (", "R_PAREN )", "L_CURLY {",
				"IDENT x", "PLUS +", "EQ =", "INT_NUMBER 1", "SEMICOLON ;", "R_CURLY }",
			},
		},
		{
			name:    "literals",
			edition: parser.Edition2021,
			text:    `1u8 0x_ff 1.0e10 1. 'a' b'x' "s\"" r#"raw"# br"b" c"c" 'a_lt`,
			want: []string{
				"INT_NUMBER 1u8", "INT_NUMBER 0x_ff", "FLOAT_NUMBER 1.0e10", "FLOAT_NUMBER 1.",
				"CHAR 'a'", "BYTE b'x'", `STRING "s\""`, `STRING r#"raw"#`,
				`BYTE_STRING br"b"`, `C_STRING c"c"`, "LIFETIME_IDENT 'a_lt",
			},
		},
		{
			name:    "numbers-and-dots",
			edition: parser.Edition2021,
			text:    "1..2 1.foo x.0.1",
			want: []string{
				"INT_NUMBER 1", "DOT .", "DOT .", "INT_NUMBER 2",
				"INT_NUMBER 1", "DOT .", "IDENT foo",
				"IDENT x", "DOT .", "FLOAT_NUMBER 0.1",
			},
		},
		{
			name:    "comments",
			edition: parser.Edition2021,
			text:    "//! inner\n/// outer\n//// plain\n/* a /* nested */ b */ x",
			want: []string{
				"COMMENT //! inner", "COMMENT /// outer", "COMMENT //// plain",
				"COMMENT /* a /* nested */ b */", "IDENT x",
			},
		},
		{
			name:    "editions-old",
			text:    "async dyn gen r#type _",
			edition: parser.Edition2015,
			want:    []string{"IDENT async", "IDENT dyn", "IDENT gen", "IDENT r#type", "UNDERSCORE _"},
		},
		{
			name:    "editions-new",
			text:    "async dyn gen",
			edition: parser.Edition2024,
			want:    []string{"ASYNC_KW async", "DYN_KW dyn", "GEN_KW gen"},
		},
		{
			name:    "shebang",
			edition: parser.Edition2021,
			text:    "#!/usr/bin/env run\nfn",
			want:    []string{"SHEBANG #!/usr/bin/env run", "FN_KW fn"},
		},
		{
			name:    "inner-attr",
			edition: parser.Edition2021,
			text:    "#![x]",
			want:    []string{"POUND #", "BANG !", "L_BRACK [", "IDENT x", "R_BRACK ]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := lexer.Lex(tt.text, tt.edition)
			assert.Empty(t, l.Errors())
			assert.Equal(t, tt.want, tokens(l))

			// Tokens must cover the input exactly.
			var text string
			for i := range l.Len() {
				text += l.Text(i)
			}
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []lexer.Error
	}{
		{`"abc`, []lexer.Error{{0, "Missing trailing `\"` symbol to terminate the string literal"}}},
		{`b"abc`, []lexer.Error{{0, "Missing trailing `\"` symbol to terminate the byte string literal"}}},
		{`'`, []lexer.Error{{0, "Missing trailing `'` symbol to terminate the character literal"}}},
		{"/* x", []lexer.Error{{0, "Missing trailing `*/` symbols to terminate the block comment"}}},
		{"0x", []lexer.Error{{0, "Missing digits after the integer base prefix"}}},
		{"1e", []lexer.Error{{0, "Missing digits after the exponent symbol"}}},
		{"'1a", []lexer.Error{{0, "Lifetime name cannot start with a number"}}},
		{"foo#", []lexer.Error{{0, "unknown literal prefix"}}},
		{`r#"abc`, []lexer.Error{{0, "Invalid raw string literal"}}},
		{"€", []lexer.Error{{0, "unknown start of token"}}},
		{"( ]", []lexer.Error{{2, "mismatched closing delimiter: `]`"}}},
		{"x)", []lexer.Error{{1, "unexpected closing delimiter: `)`"}}},
		{"{(", []lexer.Error{
			{0, "this file contains an unclosed delimiter"},
			{1, "this file contains an unclosed delimiter"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			l := lexer.Lex(tt.text, parser.Edition2021)
			assert.True(t, l.HasErrors())
			assert.Equal(t, tt.want, l.Errors())
		})
	}

	// Unknown prefixes are only reserved from 2021 on.
	assert.False(t, lexer.Lex("foo#", parser.Edition2018).HasErrors())
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	text := `let s = "abc`
	l := lexer.Lex(text, parser.Edition2021)

	r := new(report.Report)
	l.Diagnose(report.NewFile("a.rs", text), r)
	require.Equal(t, 1, r.Len())
	d := r.Diagnostics[0]
	assert.True(t, d.Is("lex"))
	assert.Equal(t, `"abc`, d.Primary().Text())
}

func TestToInput(t *testing.T) {
	t.Parallel()

	in := lexer.Lex("a<<=b", parser.Edition2021).ToInput()
	require.Equal(t, 5, in.Len())
	assert.Equal(t, parser.LAngle, in.Kind(1))
	joint := make([]bool, in.Len())
	for i := range joint {
		joint[i] = in.IsJoint(i)
	}
	assert.Equal(t, []bool{false, true, true, false, false}, joint)

	in = lexer.Lex("a < < b", parser.Edition2021).ToInput()
	assert.False(t, in.IsJoint(1))

	// Floats with a fractional part are joint; floats ending in a dot are not.
	in = lexer.Lex("1.2 1. x", parser.Edition2021).ToInput()
	assert.True(t, in.IsJoint(0))
	assert.False(t, in.IsJoint(1))

	in = lexer.Lex("union async", parser.Edition2015).ToInput()
	assert.Equal(t, parser.Ident, in.Kind(0))
	assert.Equal(t, parser.UnionKw, in.ContextualKind(0))
	assert.Equal(t, parser.AsyncKw, in.ContextualKind(1))

	// Trivia is dropped.
	in = lexer.Lex("a /* c */ b", parser.Edition2021).ToInput()
	assert.Equal(t, 2, in.Len())
}

func TestScanLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text             string
		kind             lexer.LiteralKind
		contents, suffix string
	}{
		{"1u8", lexer.LitInt, "1", "u8"},
		{"1.5e3f32", lexer.LitFloat, "1.5e3", "f32"},
		{`r#"abc"#`, lexer.LitRawStr, "abc", ""},
		{`"abc"suf`, lexer.LitStr, "abc", "suf"},
		{`"abc`, lexer.LitStr, "abc", ""},
		{"b'x'", lexer.LitByte, "x", ""},
		{"'\\n'", lexer.LitChar, "\\n", ""},
		{`cr##"x"##`, lexer.LitRawCStr, "x", ""},
		{`br"y"`, lexer.LitRawByteStr, "y", ""},
		{`c"z"`, lexer.LitCStr, "z", ""},
	}
	for _, tt := range tests {
		lit, ok := lexer.ScanLiteral(tt.text)
		require.True(t, ok, tt.text)
		assert.Equal(t, tt.kind, lit.Kind, tt.text)
		contents, suffix := lit.Split(tt.text)
		assert.Equal(t, tt.contents, contents, tt.text)
		assert.Equal(t, tt.suffix, suffix, tt.text)
	}

	lit, _ := lexer.ScanLiteral(`r##"a"##`)
	assert.Equal(t, 2, lit.Hashes)
	lit, _ = lexer.ScanLiteral("0x1f")
	assert.Equal(t, 16, lit.Base)

	for _, text := range []string{"", "a", "1 2", "-1", "'a"} {
		_, ok := lexer.ScanLiteral(text)
		assert.False(t, ok, text)
	}
}

func TestSingleToken(t *testing.T) {
	t.Parallel()

	kind, err, ok := lexer.SingleToken("fn", parser.Edition2021)
	assert.True(t, ok)
	assert.Equal(t, parser.FnKw, kind)
	assert.Empty(t, err)

	kind, err, ok = lexer.SingleToken(`"x`, parser.Edition2021)
	assert.True(t, ok)
	assert.Equal(t, parser.String, kind)
	assert.NotEmpty(t, err)

	_, _, ok = lexer.SingleToken("a b", parser.Edition2021)
	assert.False(t, ok)
}
