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

package wire_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
	"github.com/bufbuild/tokentree/tt/wire"
)

func sample() *tt.TopSubtree {
	anchor := span.Anchor{File: 3, Ast: 7}
	at := func(start, end uint32) span.Span {
		return span.Span{Range: span.NewRange(start, end), Anchor: anchor, Ctx: 2}
	}

	b := tt.NewBuilder(tt.InvisibleDelimiter(at(0, 0)))
	b.Push(tt.NewIdent("r#match", at(0, 7)))
	b.Open(tt.Bracket, at(7, 8))
	b.Push(tt.Literal{Symbol: tt.Intern("1"), Kind: tt.LitInteger, Suffix: tt.Intern("u8"), Span: at(8, 11)})
	b.Push(tt.Punct{Char: ':', Spacing: tt.Joint, Span: at(11, 12)})
	b.Push(tt.Punct{Char: ':', Spacing: tt.Alone, Span: at(12, 13)})
	b.Push(tt.Literal{Symbol: tt.Intern("a long string literal"), Kind: tt.Raw(tt.LitStrRaw, 2), Span: at(13, 40)})
	b.Open(tt.Brace, at(40, 41))
	b.Close(at(41, 42))
	b.Close(at(42, 43))
	b.Push(tt.NewIdent("x", at(43, 44)))
	return b.Build()
}

// flat returns the flat entries of top in a form cmp can compare.
func flat(top *tt.TopSubtree) []string {
	var out []string
	for _, tree := range top.View().View().FlatTokens() {
		switch tree.Kind() {
		case tt.KindSubtree:
			s, _ := tree.Subtree()
			out = append(out, s.Delimiter.Kind.String(), s.Delimiter.Open.String(), s.Delimiter.Close.String())
		default:
			out = append(out, tree.String(), tree.FirstSpan().String())
		}
		if l, ok := tree.Literal(); ok {
			out = append(out, l.Kind.String())
		}
		if p, ok := tree.Punct(); ok {
			out = append(out, p.Spacing.String())
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	top := sample()
	want := flat(top)
	tree := wire.FromTopSubtree(top)
	assert.Equal(t, wire.Version, tree.Version)
	assert.Len(t, tree.Tokens, top.Len())
	assert.Equal(t, "", tree.Text[0])

	t.Run("direct", func(t *testing.T) {
		t.Parallel()
		got, err := tree.TopSubtree()
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, flat(got)))
	})

	t.Run("proto", func(t *testing.T) {
		t.Parallel()
		decoded, err := wire.UnmarshalProto(wire.MarshalProto(tree))
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(tree, decoded))
		got, err := decoded.TopSubtree()
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, flat(got)))
	})

	t.Run("msgpack", func(t *testing.T) {
		t.Parallel()
		data, err := wire.MarshalMsgpack(tree)
		require.NoError(t, err)
		decoded, err := wire.UnmarshalMsgpack(data)
		require.NoError(t, err)
		got, err := decoded.TopSubtree()
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, flat(got)))

		var buf bytes.Buffer
		require.NoError(t, wire.WriteMsgpack(&buf, tree))
		decoded, err = wire.ReadMsgpack(&buf)
		require.NoError(t, err)
		assert.Equal(t, tree.Tokens, decoded.Tokens)
	})
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	corrupt := func(f func(*wire.Tree)) error {
		tree := wire.FromTopSubtree(sample())
		f(tree)
		_, err := tree.TopSubtree()
		return err
	}

	require.NoError(t, corrupt(func(*wire.Tree) {}))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Version++ }))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Tokens = nil }))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Spans = t.Spans[:1] }))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Text = t.Text[:1] }))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Subtrees[1].Len += 5 }))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Subtrees[0].Kind = 9 }))
	require.Error(t, corrupt(func(t *wire.Tree) { t.Tokens = t.Tokens[:len(t.Tokens)-1] }))

	_, err := wire.UnmarshalProto([]byte{0x0a, 0x05})
	require.Error(t, err)
}
