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
	"iter"

	"github.com/bufbuild/tokentree/span"
)

// Builder builds a [TopSubtree] incrementally.
//
// A Builder must not be used after [Builder.Build] or
// [Builder.BuildSkipTopSubtree] returns.
type Builder struct {
	trees []TokenTree
	// Indices of subtree headers that have been opened but not closed.
	unclosed []int
	// Index of the most recently closed subtree, or -1.
	lastClosed int
}

// RestorePoint is a snapshot of a [Builder]'s state, for rolling back
// speculative construction with [Builder.Restore].
type RestorePoint struct {
	unclosed, trees, lastClosed int
}

// NewBuilder returns a new builder whose top subtree has the given delimiter.
func NewBuilder(delim Delimiter) *Builder {
	return &Builder{
		trees:      []TokenTree{Subtree{Delimiter: delim}.Tree()},
		lastClosed: -1,
	}
}

// Open starts a new subtree. Both delimiter spans are set to open until the
// subtree is closed.
func (b *Builder) Open(kind DelimiterKind, open span.Span) {
	b.live()
	b.unclosed = append(b.unclosed, len(b.trees))
	b.trees = append(b.trees, Subtree{
		Delimiter: Delimiter{Open: open, Close: open, Kind: kind},
	}.Tree())
}

// Close closes the most recently opened subtree.
//
// Panics if no subtree is open.
func (b *Builder) Close(closeSpan span.Span) {
	b.live()
	if len(b.unclosed) == 0 {
		panic("tokentree/tt: attempt to close a subtree when none is open")
	}
	idx := b.unclosed[len(b.unclosed)-1]
	b.unclosed = b.unclosed[:len(b.unclosed)-1]

	header := b.trees[idx].withLen(toLen(len(b.trees) - idx - 1))
	header.second = closeSpan
	b.trees[idx] = header
	b.lastClosed = idx
}

// RemoveLastSubtreeIfInvisible removes the header of the subtree that was
// just closed if it is [Invisible], splicing its contents into the parent.
//
// This only has an effect immediately after [Builder.Close]; calling it twice
// in a row does nothing the second time.
func (b *Builder) RemoveLastSubtreeIfInvisible() {
	b.live()
	idx := b.lastClosed
	if idx < 0 {
		return
	}
	if s, ok := b.trees[idx].Subtree(); ok && s.Delimiter.Kind == Invisible {
		b.trees = append(b.trees[:idx], b.trees[idx+1:]...)
		b.lastClosed = -1
	}
}

// Push appends a leaf.
func (b *Builder) Push(leaf Leaf) {
	b.live()
	b.trees = append(b.trees, FromLeaf(leaf))
}

// Extend appends leaves.
func (b *Builder) Extend(leaves ...Leaf) {
	b.live()
	for _, leaf := range leaves {
		b.trees = append(b.trees, FromLeaf(leaf))
	}
}

// ExtendWithTT appends the contents of a view verbatim.
func (b *Builder) ExtendWithTT(view View) {
	b.live()
	b.trees = append(b.trees, view.trees...)
}

// ExtendWithTTAlone is like [Builder.ExtendWithTT], but if the view's final
// entry is a [Punct], it is appended with [Alone] spacing, so that it cannot
// be glued to whatever is appended next.
func (b *Builder) ExtendWithTTAlone(view View) {
	b.live()
	n := len(view.trees)
	if n == 0 {
		return
	}
	b.trees = append(b.trees, view.trees...)
	if last := &b.trees[len(b.trees)-1]; last.Kind() == KindPunct {
		last.flags = byte(Alone)
	}
}

// ExpectedDelimiters returns an iterator over the delimiters of the subtrees
// that are currently open, innermost first.
func (b *Builder) ExpectedDelimiters() iter.Seq[Delimiter] {
	return func(yield func(Delimiter) bool) {
		for i := len(b.unclosed) - 1; i >= 0; i-- {
			s, _ := b.trees[b.unclosed[i]].Subtree()
			if !yield(s.Delimiter) {
				return
			}
		}
	}
}

// Depth returns the number of subtrees that are currently open, not counting
// the top subtree.
func (b *Builder) Depth() int {
	return len(b.unclosed)
}

// Len returns the number of flat entries pushed so far, including the top
// subtree's header.
func (b *Builder) Len() int {
	return len(b.trees)
}

// RestorePoint snapshots the builder's state.
func (b *Builder) RestorePoint() RestorePoint {
	b.live()
	return RestorePoint{
		unclosed:   len(b.unclosed),
		trees:      len(b.trees),
		lastClosed: b.lastClosed,
	}
}

// Restore rolls this builder back to a snapshot taken with
// [Builder.RestorePoint].
//
// Panics if a subtree that was open when the snapshot was taken has since been
// closed.
func (b *Builder) Restore(p RestorePoint) {
	b.live()
	if len(b.unclosed) < p.unclosed || len(b.trees) < p.trees {
		panic("tokentree/tt: restore point is ahead of the builder")
	}
	b.unclosed = b.unclosed[:p.unclosed]
	for _, idx := range b.unclosed {
		if idx >= p.trees {
			panic("tokentree/tt: restore point is ahead of the builder")
		}
	}
	b.trees = b.trees[:p.trees]
	b.lastClosed = p.lastClosed
}

// Build finishes the tree.
//
// Panics if any subtree is still open.
func (b *Builder) Build() *TopSubtree {
	b.live()
	if len(b.unclosed) != 0 {
		panic("tokentree/tt: attempt to build an unbalanced token tree")
	}
	trees := b.trees
	b.trees = nil

	trees[0] = trees[0].withLen(toLen(len(trees) - 1))
	return &TopSubtree{trees: trees}
}

// BuildSkipTopSubtree is like [Builder.Build], but if the builder's contents
// are exactly one subtree, that subtree becomes the top instead of being
// wrapped in the builder's top subtree.
func (b *Builder) BuildSkipTopSubtree() *TopSubtree {
	b.live()
	if _, ok := (View{trees: b.trees[1:]}).TryIntoSubtree(); !ok {
		return b.Build()
	}
	if len(b.unclosed) != 0 {
		panic("tokentree/tt: attempt to build an unbalanced token tree")
	}
	trees := b.trees[1:]
	b.trees = nil
	return &TopSubtree{trees: trees}
}

func (b *Builder) live() {
	if b.trees == nil {
		panic("tokentree/tt: use of a builder after it was built")
	}
}
