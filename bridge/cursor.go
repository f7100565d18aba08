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

package bridge

import "github.com/bufbuild/tokentree/tt"

// cursor walks the flat entries of a view in the order a parser sees them:
// a subtree's header stands for its opening delimiter, and the cursor stops
// once more at the end of each subtree for its closing delimiter.
type cursor struct {
	trees []tt.TokenTree
	pos   int
	open  []int // Header indices of the subtrees the cursor is inside.
}

func newCursor(view tt.View) *cursor {
	return &cursor{trees: view.FlatTokens()}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.trees) && len(c.open) == 0
}

// end returns the index just past the innermost subtree the cursor is in.
func (c *cursor) end() int {
	n := len(c.open)
	if n == 0 {
		return len(c.trees)
	}
	header := c.open[n-1]
	sub, _ := c.trees[header].Subtree()
	return header + 1 + int(sub.Len)
}

// closing returns the subtree whose closing delimiter the cursor is at.
func (c *cursor) closing() (tt.Subtree, bool) {
	n := len(c.open)
	if n == 0 || c.pos < c.end() {
		return tt.Subtree{}, false
	}
	sub, _ := c.trees[c.open[n-1]].Subtree()
	return sub, true
}

// tree returns the entry at the cursor. Returns false at a closing
// delimiter or at the end.
func (c *cursor) tree() (tt.TokenTree, bool) {
	if _, ok := c.closing(); ok || c.pos >= len(c.trees) {
		return tt.TokenTree{}, false
	}
	return c.trees[c.pos], true
}

// bump moves past the current entry or closing delimiter. Bumping a subtree
// header enters the subtree.
func (c *cursor) bump() {
	if _, ok := c.closing(); ok {
		c.open = c.open[:len(c.open)-1]
		return
	}
	if c.pos >= len(c.trees) {
		return
	}
	if c.trees[c.pos].IsSubtree() {
		c.open = append(c.open, c.pos)
	}
	c.pos++
}
