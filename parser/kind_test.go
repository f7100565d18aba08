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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/parser"
)

func TestKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "L_PAREN", parser.LParen.String())
	assert.Equal(t, "(", parser.LParen.Text())
	assert.Equal(t, "parser.Kind(65535)", parser.Kind(65535).String())
	assert.True(t, parser.Whitespace.IsTrivia())
	assert.True(t, parser.Shl.IsPunct())
	assert.True(t, parser.CString.IsLiteral())
	assert.True(t, parser.FieldExpr.IsNode())
	assert.False(t, parser.Ident.IsNode())

	kind, ok := parser.FromKeyword("fn", parser.Edition2015)
	assert.True(t, ok)
	assert.Equal(t, parser.FnKw, kind)

	_, ok = parser.FromKeyword("async", parser.Edition2015)
	assert.False(t, ok)
	kind, ok = parser.FromKeyword("async", parser.Edition2018)
	assert.True(t, ok)
	assert.Equal(t, parser.AsyncKw, kind)

	kind, ok = parser.FromContextualKeyword("async", parser.Edition2015)
	assert.True(t, ok)
	assert.Equal(t, parser.AsyncKw, kind)
	_, ok = parser.FromContextualKeyword("async", parser.Edition2021)
	assert.False(t, ok)
	kind, ok = parser.FromContextualKeyword("macro_rules", parser.Edition2021)
	assert.True(t, ok)
	assert.Equal(t, parser.MacroRulesKw, kind)
	assert.False(t, parser.MacroRulesKw.IsKeyword(parser.EditionLatest))
	assert.True(t, parser.MacroRulesKw.IsAnyKeyword())

	kind, ok = parser.FromChar('>')
	assert.True(t, ok)
	assert.Equal(t, parser.RAngle, kind)
	_, ok = parser.FromChar('a')
	assert.False(t, ok)
}

func TestEdition(t *testing.T) {
	t.Parallel()

	e, err := parser.ParseEdition("2018")
	require.NoError(t, err)
	assert.Equal(t, parser.Edition2018, e)
	_, err = parser.ParseEdition("2019")
	require.Error(t, err)

	var got parser.Edition
	require.NoError(t, got.UnmarshalText([]byte("2024")))
	assert.Equal(t, parser.Edition2024, got)
	text, err := got.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024", string(text))
}

func TestParseEntry(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]parser.TopEntry{
		"file":  parser.EntrySourceFile,
		"stmts": parser.EntryMacroStmts,
		"items": parser.EntryMacroItems,
		"pat":   parser.EntryPattern,
		"ty":    parser.EntryType,
		"expr":  parser.EntryExpr,
		"meta":  parser.EntryMetaItem,
	} {
		got, err := parser.ParseEntry(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := parser.ParseEntry("nope")
	assert.Error(t, err)
}

func TestInput(t *testing.T) {
	t.Parallel()

	in := new(parser.Input)
	assert.Panics(t, in.WasJoint)

	for range 70 {
		in.Push(parser.Plus)
	}
	in.WasJoint()
	in.PushIdent(parser.UnionKw)
	assert.Equal(t, 71, in.Len())
	assert.True(t, in.IsJoint(69))
	assert.False(t, in.IsJoint(68))
	assert.Equal(t, parser.Ident, in.Kind(70))
	assert.Equal(t, parser.UnionKw, in.ContextualKind(70))
	assert.Equal(t, parser.EOF, in.ContextualKind(0))
	assert.Equal(t, parser.EOF, in.Kind(71))
}
