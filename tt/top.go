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

package tt

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/bufbuild/tokentree/span"
)

// TopSubtree is an owned token tree: a flat array whose first entry is a
// [Subtree] covering all the others.
//
// A TopSubtree is produced by a [Builder], by one of the constructors below,
// or by the encoder, and may be rewritten in place with [Transform].
type TopSubtree struct {
	trees []TokenTree
}

// Empty returns a tree containing just the top subtree.
func Empty(delim Delimiter) *TopSubtree {
	return &TopSubtree{trees: []TokenTree{Subtree{Delimiter: delim}.Tree()}}
}

// FromToken returns a tree containing a single leaf.
func FromToken(delim Delimiter, leaf Leaf) *TopSubtree {
	return &TopSubtree{trees: []TokenTree{
		Subtree{Delimiter: delim, Len: 1}.Tree(),
		FromLeaf(leaf),
	}}
}

// FromSubtree copies a subtree into a new tree, making it the top.
func FromSubtree(sub SubtreeView) *TopSubtree {
	return &TopSubtree{trees: slices.Clone(sub.trees)}
}

// FromTokenTrees returns a tree that wraps a copy of view with delim.
func FromTokenTrees(delim Delimiter, view View) *TopSubtree {
	trees := make([]TokenTree, 0, len(view.trees)+1)
	trees = append(trees, Subtree{Delimiter: delim, Len: toLen(len(view.trees))}.Tree())
	trees = append(trees, view.trees...)
	return &TopSubtree{trees: trees}
}

// FromFlat adopts a flat array as a tree, after checking that it obeys the
// flat encoding.
func FromFlat(trees []TokenTree) (*TopSubtree, error) {
	if err := validate(trees); err != nil {
		return nil, err
	}
	return &TopSubtree{trees: trees}, nil
}

// Top returns the header of the top subtree.
func (t *TopSubtree) Top() Subtree {
	s, _ := t.trees[0].Subtree()
	return s
}

// Delimiter returns the delimiter of the top subtree.
func (t *TopSubtree) Delimiter() Delimiter {
	return t.Top().Delimiter
}

// Len returns the number of flat entries in this tree, including the top
// subtree's header.
func (t *TopSubtree) Len() int {
	return len(t.trees)
}

// View returns a view of the whole tree.
func (t *TopSubtree) View() SubtreeView {
	return SubtreeView{trees: t.trees}
}

// TokenTrees returns a view of the tree's contents, excluding the top
// subtree's header.
func (t *TopSubtree) TokenTrees() View {
	return View{trees: t.trees[1:]}
}

// Iter returns an iterator over the top subtree's children.
func (t *TopSubtree) Iter() *Iter {
	return newIter(t.trees[1:])
}

// SetTopDelimiterKind changes the top subtree's delimiter kind.
func (t *TopSubtree) SetTopDelimiterKind(kind DelimiterKind) {
	t.trees[0].flags = byte(kind)
}

// SetTopDelimiterSpan changes the spans of the top subtree's delimiters.
func (t *TopSubtree) SetTopDelimiterSpan(openSpan, closeSpan span.Span) {
	t.trees[0].first = openSpan
	t.trees[0].second = closeSpan
}

// Clone returns a deep copy of this tree.
func (t *TopSubtree) Clone() *TopSubtree {
	return &TopSubtree{trees: slices.Clone(t.trees)}
}

// Validate checks that this tree obeys the flat encoding: the first entry is
// a subtree covering the rest, and every subtree's descendants fit inside its
// parent.
func (t *TopSubtree) Validate() error {
	return validate(t.trees)
}

// Pretty returns the tree's contents printed as source text.
func (t *TopSubtree) Pretty() string {
	return t.TokenTrees().Pretty()
}

// Debug returns a dump of the tree's structure, one entry per line.
func (t *TopSubtree) Debug() string {
	return t.View().Debug()
}

// String implements [fmt.Stringer].
func (t *TopSubtree) String() string {
	return t.View().String()
}

func validate(trees []TokenTree) error {
	if len(trees) == 0 {
		return fmt.Errorf("tokentree/tt: empty token tree")
	}
	top, ok := trees[0].Subtree()
	if !ok {
		return fmt.Errorf("tokentree/tt: first entry is a %v, not a subtree", trees[0].Kind())
	}
	if int(top.Len) != len(trees)-1 {
		return fmt.Errorf("tokentree/tt: top subtree covers %d entries, want %d", top.Len, len(trees)-1)
	}
	return checkNested(trees)
}

// checkNested checks that no subtree in trees extends past the end of its
// parent, or past the end of trees.
func checkNested(trees []TokenTree) error {
	var ends []int
	for i, tree := range trees {
		for len(ends) > 0 && i >= ends[len(ends)-1] {
			ends = ends[:len(ends)-1]
		}
		switch tree.Kind() {
		case KindSubtree:
		case KindLiteral, KindPunct, KindIdent:
			continue
		default:
			return fmt.Errorf("tokentree/tt: invalid entry at index %d", i)
		}

		end := i + 1 + tree.length()
		limit := len(trees)
		if len(ends) > 0 {
			limit = ends[len(ends)-1]
		}
		if end > limit {
			return fmt.Errorf("tokentree/tt: subtree at index %d ends at %d, past its parent's end %d", i, end, limit)
		}
		ends = append(ends, end)
	}
	return nil
}

// toLen converts a flat length into a header length.
func toLen(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Sprintf("tokentree/tt: token tree too long: %d entries", n))
	}
	return v
}
