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

// MaxGluedPunct is the most punctuation characters [Iter.ExpectGluedPunct]
// will glue together.
const MaxGluedPunct = 3

// Element is a top-level element yielded by an [Iter]: a leaf, or a subtree
// header together with its descendants.
type Element struct {
	// The leaf or subtree header, followed by the subtree's descendants.
	trees []TokenTree
}

// Tree returns the leaf or subtree header of this element.
func (e Element) Tree() TokenTree {
	return e.trees[0]
}

// IsSubtree returns whether this element is a subtree.
func (e Element) IsSubtree() bool {
	return e.trees[0].IsSubtree()
}

// Leaf returns this element's leaf, if it is one.
func (e Element) Leaf() (Leaf, bool) {
	return e.trees[0].Leaf()
}

// Punct returns this element's punct, if it is one.
func (e Element) Punct() (Punct, bool) {
	return e.trees[0].Punct()
}

// Ident returns this element's ident, if it is one.
func (e Element) Ident() (Ident, bool) {
	return e.trees[0].Ident()
}

// Literal returns this element's literal, if it is one.
func (e Element) Literal() (Literal, bool) {
	return e.trees[0].Literal()
}

// Subtree returns this element's subtree header and an iterator over its
// children, if it is a subtree.
func (e Element) Subtree() (Subtree, *Iter, bool) {
	s, ok := e.trees[0].Subtree()
	if !ok {
		return Subtree{}, nil, false
	}
	return s, newIter(e.trees[1:]), true
}

// View returns this element as a view.
func (e Element) View() View {
	return View{trees: e.trees}
}

// FirstSpan returns the span of a leaf, or the open delimiter span of a
// subtree.
func (e Element) FirstSpan() span.Span {
	return e.trees[0].FirstSpan()
}

// LastSpan returns the span of a leaf, or the close delimiter span of a
// subtree.
func (e Element) LastSpan() span.Span {
	return e.trees[0].LastSpan()
}

// Iter iterates over the top-level elements of a [View]. It never descends
// into subtrees on its own; use the iterator returned by [Element.Subtree].
//
// An Iter is a small value; copying it forks the iteration.
type Iter struct {
	trees []TokenTree
	pos   int
}

// Savepoint is a position within an [Iter].
type Savepoint struct {
	pos int
}

func newIter(trees []TokenTree) *Iter {
	return &Iter{trees: trees}
}

// Next returns the next element and advances past it.
func (it *Iter) Next() (Element, bool) {
	e, ok := it.Peek()
	if ok {
		it.pos += len(e.trees)
	}
	return e, ok
}

// Peek returns the next element without advancing.
func (it *Iter) Peek() (Element, bool) {
	if it.pos >= len(it.trees) {
		return Element{}, false
	}
	end := it.pos + 1 + it.trees[it.pos].length()
	return Element{trees: it.trees[it.pos:end]}, true
}

// PeekN returns the flat entry n entries ahead, without advancing. Unlike
// [Iter.Peek], this does not skip over subtrees.
func (it *Iter) PeekN(n int) (TokenTree, bool) {
	if it.pos+n >= len(it.trees) {
		return TokenTree{}, false
	}
	return it.trees[it.pos+n], true
}

// IsEmpty returns whether there are no elements left.
func (it *Iter) IsEmpty() bool {
	return it.pos >= len(it.trees)
}

// Remaining returns a view of the elements not yet yielded.
func (it *Iter) Remaining() View {
	return View{trees: it.trees[it.pos:]}
}

// All returns an iterator over the remaining elements, advancing this one as
// it goes.
func (it *Iter) All() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for {
			e, ok := it.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

// Savepoint returns the current position.
func (it *Iter) Savepoint() Savepoint {
	return Savepoint{pos: it.pos}
}

// FromSavepoint returns a view of the elements yielded since sp was taken.
func (it *Iter) FromSavepoint(sp Savepoint) View {
	return View{trees: it.trees[sp.pos:it.pos]}
}

// Reset rewinds the iterator to sp.
func (it *Iter) Reset(sp Savepoint) {
	it.pos = sp.pos
}

// NextSpan returns the first span of the next element, if there is one.
func (it *Iter) NextSpan() (span.Span, bool) {
	e, ok := it.Peek()
	if !ok {
		return span.Span{}, false
	}
	return e.FirstSpan(), true
}

// ExpectChar advances past the next element if it is a punct with the given
// character.
func (it *Iter) ExpectChar(c rune) bool {
	return it.ExpectAnyChar(c)
}

// ExpectAnyChar advances past the next element if it is a punct with any of
// the given characters.
func (it *Iter) ExpectAnyChar(chars ...rune) bool {
	e, ok := it.Peek()
	if !ok {
		return false
	}
	p, ok := e.Punct()
	if !ok {
		return false
	}
	for _, c := range chars {
		if p.Char == c {
			it.Next()
			return true
		}
	}
	return false
}

// ExpectSubtree advances past the next element if it is a subtree.
func (it *Iter) ExpectSubtree() (Subtree, *Iter, bool) {
	e, ok := it.Peek()
	if !ok {
		return Subtree{}, nil, false
	}
	s, sub, ok := e.Subtree()
	if ok {
		it.Next()
	}
	return s, sub, ok
}

// ExpectLeaf advances past the next element if it is a leaf.
func (it *Iter) ExpectLeaf() (Leaf, bool) {
	e, ok := it.Peek()
	if !ok {
		return nil, false
	}
	l, ok := e.Leaf()
	if ok {
		it.Next()
	}
	return l, ok
}

// ExpectIdent advances past the next element if it is an identifier other
// than _.
func (it *Iter) ExpectIdent() (Ident, bool) {
	id, ok := it.ExpectIdentOrUnderscore()
	if ok && id.Symbol.String() == "_" {
		it.pos--
		return Ident{}, false
	}
	return id, ok
}

// ExpectIdentOrUnderscore advances past the next element if it is an
// identifier.
func (it *Iter) ExpectIdentOrUnderscore() (Ident, bool) {
	e, ok := it.Peek()
	if !ok {
		return Ident{}, false
	}
	id, ok := e.Ident()
	if ok {
		it.Next()
	}
	return id, ok
}

// ExpectLiteral advances past the next element if it is a literal or one of
// the identifiers true and false.
func (it *Iter) ExpectLiteral() (Leaf, bool) {
	e, ok := it.Peek()
	if !ok {
		return nil, false
	}
	if lit, ok := e.Literal(); ok {
		it.Next()
		return lit, true
	}
	if id, ok := e.Ident(); ok && !id.IsRaw {
		if s := id.Symbol.String(); s == "true" || s == "false" {
			it.Next()
			return id, true
		}
	}
	return nil, false
}

// ExpectSinglePunct advances past the next element if it is a punct.
func (it *Iter) ExpectSinglePunct() (Punct, bool) {
	e, ok := it.Peek()
	if !ok {
		return Punct{}, false
	}
	p, ok := e.Punct()
	if ok {
		it.Next()
	}
	return p, ok
}

// ExpectGluedPunct advances past a run of up to [MaxGluedPunct] [Joint]
// puncts that form a single operator, such as ::, ..= or >>=.
//
// This may return a lone ', which is the first half of a lifetime rather than
// an operator. Callers must handle this case.
func (it *Iter) ExpectGluedPunct() ([]Punct, bool) {
	first, ok := it.ExpectSinglePunct()
	if !ok {
		return nil, false
	}
	if first.Spacing == Alone {
		return []Punct{first}, true
	}

	next, _ := it.PeekN(0)
	second, ok := next.Punct()
	if !ok {
		return []Punct{first}, true
	}
	var third Punct
	hasThird := false
	if second.Spacing == Joint {
		next, _ := it.PeekN(1)
		third, hasThird = next.Punct()
	}

	a, b := first.Char, second.Char
	switch {
	case hasThird && (a == '.' && b == '.' && (third.Char == '.' || third.Char == '=') ||
		a == '<' && b == '<' && third.Char == '=' ||
		a == '>' && b == '>' && third.Char == '='):
		it.pos += 2
		return []Punct{first, second, third}, true
	case gluesTwo(a, b):
		it.pos++
		return []Punct{first, second}, true
	default:
		return []Punct{first}, true
	}
}

// gluesTwo returns whether ab is a two-character operator.
func gluesTwo(a, b rune) bool {
	switch b {
	case '=':
		switch a {
		case '-', '!', '*', '/', '&', '%', '^', '+', '<', '=', '>', '|':
			return true
		}
	case '>':
		return a == '-' || a == '=' || a == '>'
	case '-':
		return a == '<'
	case ':':
		return a == ':'
	case '.':
		return a == '.'
	case '&':
		return a == '&'
	case '<':
		return a == '<'
	case '|':
		return a == '|'
	}
	return false
}
