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

package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/parser/lexer"
)

// dump parses text and renders the resulting steps as an indented tree.
func dump(t *testing.T, entry parser.TopEntry, text string) (string, *parser.Output) {
	t.Helper()

	l := lexer.Lex(text, parser.Edition2021)
	require.Empty(t, l.Errors())
	out := entry.Parse(l.ToInput(), parser.Edition2021)

	var tokens []string
	for i := range l.Len() {
		if !l.Kind(i).IsTrivia() {
			tokens = append(tokens, l.Text(i))
		}
	}

	var b strings.Builder
	var depth int
	line := func(format string, args ...any) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	for step := range out.Steps() {
		switch step.Kind {
		case parser.StepEnter:
			line("%v", step.Node)
			depth++
		case parser.StepExit:
			depth--
		case parser.StepToken:
			line("%v %s", step.Node, strings.Join(tokens[:step.N], ""))
			tokens = tokens[step.N:]
		case parser.StepFloatSplit:
			line("FLOAT_SPLIT %s %v", tokens[0], step.EndsInDot)
			tokens = tokens[1:]
		case parser.StepError:
			line("error: %s", step.Error)
		}
	}
	assert.Empty(t, tokens, "not every token was consumed")
	return b.String(), out
}

func TestExprPrecedence(t *testing.T) {
	t.Parallel()

	got, out := dump(t, parser.EntryExpr, "1 + 2 * 3")
	assert.Empty(t, out.Errors())
	assert.Equal(t, strings.TrimLeft(`
BIN_EXPR
  LITERAL
    INT_NUMBER 1
  PLUS +
  BIN_EXPR
    LITERAL
      INT_NUMBER 2
    STAR *
    LITERAL
      INT_NUMBER 3
`, "\n"), got)
}

func TestCompositeGluing(t *testing.T) {
	t.Parallel()

	got, out := dump(t, parser.EntryExpr, "a <<= b")
	assert.Empty(t, out.Errors())
	assert.Contains(t, got, "  SHLEQ <<=\n")

	var glued parser.Step
	for step := range out.Steps() {
		if step.Kind == parser.StepToken && step.Node == parser.ShlEq {
			glued = step
		}
	}
	assert.Equal(t, 3, glued.N)

	// Closing angle brackets of generics are never glued into a shift.
	got, out = dump(t, parser.EntryType, "Vec<Vec<T>>")
	assert.Empty(t, out.Errors())
	assert.Equal(t, 2, strings.Count(got, "GENERIC_ARG_LIST\n"))
	assert.Equal(t, 2, strings.Count(got, "R_ANGLE >\n"))
	assert.NotContains(t, got, "SHR")
}

func TestFloatSplit(t *testing.T) {
	t.Parallel()

	got, out := dump(t, parser.EntryExpr, "x.0.1")
	assert.Empty(t, out.Errors())
	assert.Equal(t, strings.TrimLeft(`
FIELD_EXPR
  FIELD_EXPR
    PATH_EXPR
      PATH
        PATH_SEGMENT
          NAME_REF
            IDENT x
    DOT .
    FLOAT_SPLIT 0.1 false
`, "\n"), got)

	// The split leaves nodes open for the consumer: two for `0.1`, which
	// becomes `0` `.` `1`, and one for `0.`, which has no second field.
	var opened, closed int
	for step := range out.Steps() {
		switch step.Kind {
		case parser.StepEnter:
			opened++
		case parser.StepExit:
			closed++
		}
	}
	assert.Equal(t, 2, opened-closed)
}

func TestTrailingTokens(t *testing.T) {
	t.Parallel()

	got, out := dump(t, parser.EntryExpr, "1 2")
	assert.Equal(t, []string{"unexpected trailing tokens"}, out.Errors())
	assert.Equal(t, strings.TrimLeft(`
ERROR
  LITERAL
    INT_NUMBER 1
  error: unexpected trailing tokens
  INT_NUMBER 2
`, "\n"), got)

	_, out = dump(t, parser.EntryType, "x.1.2")
	assert.Equal(t, []string{"unexpected trailing tokens"}, out.Errors())
}

func TestSourceFile(t *testing.T) {
	t.Parallel()

	got, out := dump(t, parser.EntrySourceFile, "fn f() {}")
	assert.Empty(t, out.Errors())
	assert.Equal(t, strings.TrimLeft(`
SOURCE_FILE
  FN
    FN_KW fn
    NAME
      IDENT f
    PARAM_LIST
      L_PAREN (
      R_PAREN )
    BLOCK_EXPR
      STMT_LIST
        L_CURLY {
        R_CURLY }
`, "\n"), got)
}

func TestEntriesDoNotLoop(t *testing.T) {
	t.Parallel()

	// None of these are well-formed, but every entry point must consume all
	// of its input and terminate.
	inputs := []string{
		"",
		"}",
		"a; } b",
		"fn",
		"struct S { a: }",
		"let x = ;",
		"match x { _ => }",
		"impl<T> for {}",
		"#[attr",
		"use a::{b, c::*};",
		"x as",
		"|a, b| a + ",
		"macro_rules! m { () => {} }",
		"<T as Tr>::f()",
		"&raw const x",
	}
	entries := []parser.TopEntry{
		parser.EntrySourceFile, parser.EntryMacroStmts, parser.EntryMacroItems,
		parser.EntryPattern, parser.EntryType, parser.EntryExpr, parser.EntryMetaItem,
	}
	for _, text := range inputs {
		l := lexer.Lex(text, parser.Edition2021)
		for _, entry := range entries {
			out := entry.Parse(l.ToInput(), parser.Edition2021)

			var consumed int
			for step := range out.Steps() {
				switch step.Kind {
				case parser.StepToken:
					consumed += step.N
				case parser.StepFloatSplit:
					consumed++
				}
			}
			assert.Equal(t, l.ToInput().Len(), consumed, "%v %q", entry, text)
		}
	}
}

func TestMacroStmtsStrayBrace(t *testing.T) {
	t.Parallel()

	l := lexer.Lex("a; }", parser.Edition2021)
	out := parser.EntryMacroStmts.Parse(l.ToInput(), parser.Edition2021)
	assert.Contains(t, out.Errors(), "unmatched `}`")
}
