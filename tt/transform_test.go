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

// nested builds a ( b [ c { x } ] ).
func nested() *tt.TopSubtree {
	b := tt.NewBuilder(tt.Delimiter{})
	b.Push(ident("a", 0))
	b.Open(tt.Parenthesis, sp(1, 2))
	b.Push(ident("b", 2))
	b.Open(tt.Bracket, sp(3, 4))
	b.Push(ident("c", 4))
	b.Open(tt.Brace, sp(5, 6))
	b.Push(ident("x", 6))
	b.Close(sp(7, 8))
	b.Close(sp(8, 9))
	b.Close(sp(9, 10))
	return b.Build()
}

// lens returns the lengths of every subtree, in order.
func lens(top *tt.TopSubtree) []uint32 {
	var out []uint32
	for _, tree := range top.View().View().FlatTokens() {
		if s, ok := tree.Subtree(); ok {
			out = append(out, s.Len)
		}
	}
	return out
}

// assertSubtrees checks that every subtree in view is well formed.
func assertSubtrees(t *testing.T, it *tt.Iter) {
	t.Helper()
	for e := range it.All() {
		if !e.IsSubtree() {
			continue
		}
		_, ok := e.View().TryIntoSubtree()
		assert.True(t, ok)
		_, children, _ := e.Subtree()
		assertSubtrees(t, children)
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	t.Run("keep", func(t *testing.T) {
		t.Parallel()
		top := nested()
		var visited int
		tt.Transform(top, func(tt.View) tt.Action {
			visited++
			return tt.Keep()
		})
		assert.Equal(t, 8, visited)
		assert.Equal(t, []uint32{7, 5, 3, 1}, lens(top))
	})

	t.Run("grow-leaf", func(t *testing.T) {
		t.Parallel()
		replacement := tt.NewBuilder(tt.Delimiter{})
		replacement.Extend(ident("y", 0), ident("z", 0), ident("x", 0))
		with := replacement.Build().TokenTrees()

		top := nested()
		var visited []string
		tt.Transform(top, func(v tt.View) tt.Action {
			if id, ok := v.FlatTokens()[0].Ident(); ok {
				visited = append(visited, id.String())
				if id.String() == "x" {
					return tt.ReplaceWith(with)
				}
			}
			return tt.Keep()
		})

		require.NoError(t, top.Validate())
		assert.Equal(t, []string{"a", "b", "c", "x"}, visited)
		assert.Equal(t, []uint32{9, 7, 5, 3}, lens(top))
		assert.Equal(t, "a (b [c {y z x}])", top.Pretty())
		assertSubtrees(t, top.View().View().Iter())
	})

	t.Run("shrink-subtree", func(t *testing.T) {
		t.Parallel()
		top := nested()
		tt.Transform(top, func(v tt.View) tt.Action {
			if s, ok := v.TryIntoSubtree(); ok && s.Delimiter().Kind == tt.Bracket {
				return tt.ReplaceWith(tt.FromToken(tt.Delimiter{}, ident("q", 0)).TokenTrees())
			}
			return tt.Keep()
		})

		require.NoError(t, top.Validate())
		assert.Equal(t, []uint32{4, 2}, lens(top))
		assert.Equal(t, "a (b q)", top.Pretty())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		top := nested()
		tt.Transform(top, func(v tt.View) tt.Action {
			if id, ok := v.FlatTokens()[0].Ident(); ok && id.String() != "a" {
				return tt.ReplaceWith(tt.View{})
			}
			return tt.Keep()
		})

		require.NoError(t, top.Validate())
		assert.Equal(t, []uint32{4, 2, 1, 0}, lens(top))
		assert.Equal(t, "a ([{}])", top.Pretty())
	})

	t.Run("replace-top", func(t *testing.T) {
		t.Parallel()
		top := nested()
		assert.Panics(t, func() {
			tt.Transform(top, func(tt.View) tt.Action {
				return tt.ReplaceWith(tt.View{})
			})
		})
	})
}
