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

package tt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/tt"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	comma := func(e tt.Element) bool {
		p, ok := e.Punct()
		return ok && p.Char == ','
	}
	split := func(top *tt.TopSubtree) []string {
		var out []string
		for chunk := range top.TokenTrees().Split(comma) {
			out = append(out, chunk.Pretty())
		}
		return out
	}

	b := tt.NewBuilder(tt.Delimiter{})
	b.Push(ident("a", 0))
	b.Push(punct(',', tt.Alone, 1))
	b.Open(tt.Parenthesis, sp(2, 3))
	b.Extend(ident("b", 3), punct(',', tt.Alone, 4), ident("c", 5))
	b.Close(sp(6, 7))
	b.Push(punct(',', tt.Alone, 7))
	assert.Equal(t, []string{"a", "(b , c)", ""}, split(b.Build()))

	assert.Equal(t, []string{""}, split(tt.Empty(tt.Delimiter{})))
	assert.Equal(t, []string{"x"}, split(tt.FromToken(tt.Delimiter{}, ident("x", 0))))
}

func TestStripInvisible(t *testing.T) {
	t.Parallel()

	b := tt.NewBuilder(tt.Delimiter{})
	b.Open(tt.Invisible, sp(0, 0))
	b.Push(ident("x", 0))
	b.Close(sp(1, 1))
	top := b.Build()

	stripped := top.TokenTrees().StripInvisible()
	assert.Equal(t, 1, stripped.Len())

	call := fooCall()
	assert.Equal(t, call.TokenTrees().Len(), call.TokenTrees().StripInvisible().Len())
	assert.Equal(t, 5, call.View().StripInvisible().Len())
}

func TestSpans(t *testing.T) {
	t.Parallel()

	view := fooCall().TokenTrees()
	first, ok := view.FirstSpan()
	require.True(t, ok)
	assert.Equal(t, sp(0, 3), first)
	last, ok := view.LastSpan()
	require.True(t, ok)
	assert.Equal(t, sp(8, 9), last)

	_, ok = tt.View{}.LastSpan()
	assert.False(t, ok)
}

func TestIter(t *testing.T) {
	t.Parallel()

	it := fooCall().Iter()
	start := it.Savepoint()

	id, ok := it.ExpectIdent()
	require.True(t, ok)
	assert.Equal(t, "foo", id.Symbol.String())

	next, ok := it.NextSpan()
	require.True(t, ok)
	assert.Equal(t, sp(3, 4), next)

	sub, children, ok := it.ExpectSubtree()
	require.True(t, ok)
	assert.Equal(t, tt.Parenthesis, sub.Delimiter.Kind)
	assert.True(t, it.IsEmpty())
	assert.Equal(t, 5, it.FromSavepoint(start).Len())

	_, ok = children.ExpectLiteral()
	assert.True(t, ok)
	assert.False(t, children.ExpectChar(';'))
	assert.True(t, children.ExpectChar(','))
	assert.Equal(t, 1, children.Remaining().Len())

	it.Reset(start)
	var n int
	for range it.All() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestExpectIdent(t *testing.T) {
	t.Parallel()

	top := tt.FromToken(tt.Delimiter{}, ident("_", 0))
	it := top.Iter()
	_, ok := it.ExpectIdent()
	assert.False(t, ok)
	id, ok := it.ExpectIdentOrUnderscore()
	assert.True(t, ok)
	assert.Equal(t, "_", id.String())

	it = tt.FromToken(tt.Delimiter{}, ident("true", 0)).Iter()
	leaf, ok := it.ExpectLiteral()
	require.True(t, ok)
	assert.Equal(t, "true", leaf.String())

	assert.Equal(t, "r#type", tt.NewIdent("r#type", sp(0, 6)).String())
	assert.True(t, tt.NewIdent("r#type", sp(0, 6)).IsRaw)
}

func TestExpectGluedPunct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		puncts []tt.Punct
		want   []string
	}{
		{
			puncts: []tt.Punct{punct('.', tt.Joint, 0), punct('.', tt.Joint, 1), punct('=', tt.Alone, 2)},
			want:   []string{"..="},
		},
		{
			puncts: []tt.Punct{punct(':', tt.Joint, 0), punct(':', tt.Alone, 1)},
			want:   []string{"::"},
		},
		{
			puncts: []tt.Punct{punct('>', tt.Joint, 0), punct('>', tt.Alone, 1)},
			want:   []string{">>"},
		},
		{
			puncts: []tt.Punct{punct('>', tt.Alone, 0), punct('>', tt.Alone, 1)},
			want:   []string{">", ">"},
		},
		{
			puncts: []tt.Punct{punct('-', tt.Joint, 0), punct('>', tt.Joint, 1), punct('=', tt.Alone, 2)},
			want:   []string{"->", "="},
		},
		{
			puncts: []tt.Punct{punct('#', tt.Joint, 0), punct('!', tt.Alone, 1)},
			want:   []string{"#", "!"},
		},
	}

	for _, test := range tests {
		b := tt.NewBuilder(tt.Delimiter{})
		for _, p := range test.puncts {
			b.Push(p)
		}
		it := b.Build().Iter()

		var got []string
		for !it.IsEmpty() {
			glued, ok := it.ExpectGluedPunct()
			require.True(t, ok)
			var op string
			for _, p := range glued {
				op += p.String()
			}
			got = append(got, op)
		}
		assert.Equal(t, test.want, got)
	}
}
