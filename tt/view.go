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
	"iter"

	"github.com/bufbuild/tokentree/span"
)

// View is a borrowed slice of a flat token tree that does not cut through any
// subtree: every subtree header in it is followed by all of its descendants.
//
// A view may contain any number of top-level elements. The zero value is an
// empty view.
type View struct {
	trees []TokenTree
}

// NewView wraps trees in a view.
//
// Panics if some subtree in trees extends past its end.
func NewView(trees []TokenTree) View {
	if err := checkNested(trees); err != nil {
		panic(err.Error())
	}
	return View{trees: trees}
}

// Len returns the number of flat entries in this view.
func (v View) Len() int {
	return len(v.trees)
}

// IsEmpty returns whether this view contains no entries.
func (v View) IsEmpty() bool {
	return len(v.trees) == 0
}

// Iter returns an iterator over this view's top-level elements.
func (v View) Iter() *Iter {
	return newIter(v.trees)
}

// FlatTokens returns the flat entries of this view. The returned slice must
// not be modified.
func (v View) FlatTokens() []TokenTree {
	return v.trees
}

// TryIntoSubtree returns this view as a single subtree, if it consists of
// exactly one subtree.
func (v View) TryIntoSubtree() (SubtreeView, bool) {
	if len(v.trees) == 0 || !v.trees[0].IsSubtree() || v.trees[0].length() != len(v.trees)-1 {
		return SubtreeView{}, false
	}
	return SubtreeView{trees: v.trees}, true
}

// StripInvisible returns the contents of this view if it consists of exactly
// one [Invisible] subtree. Otherwise, it returns v.
func (v View) StripInvisible() View {
	sub, ok := v.TryIntoSubtree()
	if !ok {
		return v
	}
	return sub.StripInvisible()
}

// Split splits this view into the runs of top-level elements between
// elements for which sep returns true. The separators themselves are dropped.
//
// A trailing separator produces a final empty view, and an empty view
// produces one empty view.
func (v View) Split(sep func(Element) bool) iter.Seq[View] {
	return func(yield func(View) bool) {
		it := v.Iter()
		for {
			start := it.Savepoint()
			chunk := it.FromSavepoint(start)
			trailing := false
			for {
				e, ok := it.Next()
				if !ok {
					break
				}
				if sep(e) {
					trailing = true
					break
				}
				chunk = it.FromSavepoint(start)
			}
			if !yield(chunk) || !trailing {
				return
			}
		}
	}
}

// FirstSpan returns the first span of this view's first element.
func (v View) FirstSpan() (span.Span, bool) {
	if len(v.trees) == 0 {
		return span.Span{}, false
	}
	return v.trees[0].FirstSpan(), true
}

// LastSpan returns the last span of this view's last top-level element: a
// leaf's span, or a subtree's close delimiter span.
func (v View) LastSpan() (span.Span, bool) {
	var last TokenTree
	for i := 0; i < len(v.trees); i += 1 + v.trees[i].length() {
		last = v.trees[i]
	}
	if last.Kind() == KindInvalid {
		return span.Span{}, false
	}
	return last.LastSpan(), true
}

// String implements [fmt.Stringer]; it is the same as [View.Pretty].
func (v View) String() string {
	return v.Pretty()
}

// SubtreeView is a [View] consisting of exactly one subtree.
type SubtreeView struct {
	trees []TokenTree
}

// NewSubtreeView wraps trees in a subtree view.
//
// Panics if trees is not exactly one subtree.
func NewSubtreeView(trees []TokenTree) SubtreeView {
	sub, ok := NewView(trees).TryIntoSubtree()
	if !ok {
		panic(fmt.Sprintf("tokentree/tt: %d entries are not exactly one subtree", len(trees)))
	}
	return sub
}

// Top returns this subtree's header.
func (s SubtreeView) Top() Subtree {
	sub, _ := s.trees[0].Subtree()
	return sub
}

// Delimiter returns this subtree's delimiter.
func (s SubtreeView) Delimiter() Delimiter {
	return s.Top().Delimiter
}

// TokenTrees returns a view of this subtree's children, excluding the header.
func (s SubtreeView) TokenTrees() View {
	return View{trees: s.trees[1:]}
}

// View returns this subtree as a plain view, including the header.
func (s SubtreeView) View() View {
	return View{trees: s.trees}
}

// Iter returns an iterator over this subtree's children.
func (s SubtreeView) Iter() *Iter {
	return newIter(s.trees[1:])
}

// Len returns the number of flat entries in this view, including the header.
func (s SubtreeView) Len() int {
	return len(s.trees)
}

// StripInvisible returns this subtree's children if it is [Invisible], and
// the whole subtree otherwise.
func (s SubtreeView) StripInvisible() View {
	if s.Top().Delimiter.Kind == Invisible {
		return s.TokenTrees()
	}
	return s.View()
}

// Pretty returns this subtree printed as source text.
func (s SubtreeView) Pretty() string {
	return s.View().Pretty()
}

// Debug returns a dump of the subtree's structure.
func (s SubtreeView) Debug() string {
	return s.View().Debug()
}

// String implements [fmt.Stringer].
func (s SubtreeView) String() string {
	return s.Debug()
}
