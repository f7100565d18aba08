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

// Package syntax provides an immutable concrete syntax tree.
//
// Trees are lossless: the text of the root node is exactly the text that was
// parsed, including whitespace and comments. Every node and token knows its
// parent, so trees can be walked in any direction.
package syntax

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
)

// Node is an interior node of a syntax tree.
type Node struct {
	kind     parser.Kind
	parent   *Node
	index    int
	offset   uint32
	len      uint32
	children []Element
}

// Token is a leaf of a syntax tree.
type Token struct {
	kind   parser.Kind
	parent *Node
	index  int
	offset uint32
	text   string
}

// Element is a [Node] or a [Token]. The zero Element is neither.
//
// Elements are comparable, and may be used as map keys.
type Element struct {
	node  *Node
	token *Token
}

// Kind returns this node's kind.
func (n *Node) Kind() parser.Kind {
	return n.kind
}

// Parent returns the node containing this one, or nil if this is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Range returns the range of text this node covers.
func (n *Node) Range() span.TextRange {
	return span.At(n.offset, n.len)
}

// Element wraps this node in an [Element].
func (n *Node) Element() Element {
	return Element{node: n}
}

// Children returns the direct children of this node, tokens included.
func (n *Node) Children() []Element {
	return n.children
}

// ChildNodes returns an iterator over the direct children of this node that
// are nodes.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range n.children {
			if child.node != nil && !yield(child.node) {
				return
			}
		}
	}
}

// ChildTokens returns an iterator over the direct children of this node that
// are tokens.
func (n *Node) ChildTokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for _, child := range n.children {
			if child.token != nil && !yield(child.token) {
				return
			}
		}
	}
}

// FirstChild returns the first child node of the given kind, or nil.
func (n *Node) FirstChild(kind parser.Kind) *Node {
	for child := range n.ChildNodes() {
		if child.kind == kind {
			return child
		}
	}
	return nil
}

// FirstToken returns the first token in this subtree, or nil if it has none.
func (n *Node) FirstToken() *Token {
	for _, child := range n.children {
		if tok := child.firstToken(); tok != nil {
			return tok
		}
	}
	return nil
}

// LastToken returns the last token in this subtree, or nil if it has none.
func (n *Node) LastToken() *Token {
	for i := len(n.children) - 1; i >= 0; i-- {
		if tok := n.children[i].lastToken(); tok != nil {
			return tok
		}
	}
	return nil
}

// Descendants returns an iterator over this node and every node beneath it,
// in preorder.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for ev := range n.Preorder().All() {
			if node := ev.Element.Node(); ev.Enter && node != nil && !yield(node) {
				return
			}
		}
	}
}

// Tokens returns an iterator over every token in this subtree, in order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for ev := range n.Preorder().All() {
			if tok := ev.Element.Token(); ev.Enter && tok != nil && !yield(tok) {
				return
			}
		}
	}
}

// Ancestors returns an iterator over this node and its ancestors, innermost
// first.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for node := n; node != nil; node = node.parent {
			if !yield(node) {
				return
			}
		}
	}
}

// NextSibling returns the element after this one in its parent.
func (n *Node) NextSibling() (Element, bool) {
	return sibling(n.parent, n.index+1)
}

// PrevSibling returns the element before this one in its parent.
func (n *Node) PrevSibling() (Element, bool) {
	return sibling(n.parent, n.index-1)
}

// Text returns the text of this node.
func (n *Node) Text() string {
	var b strings.Builder
	for tok := range n.Tokens() {
		b.WriteString(tok.text)
	}
	return b.String()
}

// String implements [fmt.Stringer], returning the text of this node.
func (n *Node) String() string {
	return n.Text()
}

// Debug returns a dump of this subtree, one element per line, for use in
// tests.
func (n *Node) Debug() string {
	var b strings.Builder
	depth := 0
	for ev := range n.Preorder().All() {
		if !ev.Enter {
			if ev.Element.Node() != nil {
				depth--
			}
			continue
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(ev.Element.debug())
		b.WriteByte('\n')
		if ev.Element.Node() != nil {
			depth++
		}
	}
	return b.String()
}

// Kind returns this token's kind.
func (t *Token) Kind() parser.Kind {
	return t.kind
}

// Text returns this token's text.
func (t *Token) Text() string {
	return t.text
}

// Parent returns the node containing this token. Only tokens produced by a
// builder have one.
func (t *Token) Parent() *Node {
	return t.parent
}

// Range returns the range of text this token covers.
func (t *Token) Range() span.TextRange {
	return span.At(t.offset, span.Offset(len(t.text)))
}

// Element wraps this token in an [Element].
func (t *Token) Element() Element {
	return Element{token: t}
}

// NextSibling returns the element after this token in its parent.
func (t *Token) NextSibling() (Element, bool) {
	return sibling(t.parent, t.index+1)
}

// PrevSibling returns the element before this token in its parent.
func (t *Token) PrevSibling() (Element, bool) {
	return sibling(t.parent, t.index-1)
}

// NextToken returns the token after this one in the tree, or nil.
func (t *Token) NextToken() *Token {
	for el := t.Element(); ; {
		next, ok := el.NextSibling()
		for !ok {
			parent := el.Parent()
			if parent == nil {
				return nil
			}
			el = parent.Element()
			next, ok = el.NextSibling()
		}
		if tok := next.firstToken(); tok != nil {
			return tok
		}
		el = next
	}
}

// PrevToken returns the token before this one in the tree, or nil.
func (t *Token) PrevToken() *Token {
	for el := t.Element(); ; {
		prev, ok := el.PrevSibling()
		for !ok {
			parent := el.Parent()
			if parent == nil {
				return nil
			}
			el = parent.Element()
			prev, ok = el.PrevSibling()
		}
		if tok := prev.lastToken(); tok != nil {
			return tok
		}
		el = prev
	}
}

// String implements [fmt.Stringer], returning the text of this token.
func (t *Token) String() string {
	return t.text
}

// Node returns the node this element wraps, or nil.
func (e Element) Node() *Node {
	return e.node
}

// Token returns the token this element wraps, or nil.
func (e Element) Token() *Token {
	return e.token
}

// IsZero returns whether this is the zero element.
func (e Element) IsZero() bool {
	return e.node == nil && e.token == nil
}

// Kind returns the kind of this element.
func (e Element) Kind() parser.Kind {
	switch {
	case e.node != nil:
		return e.node.kind
	case e.token != nil:
		return e.token.kind
	default:
		return parser.Tombstone
	}
}

// Range returns the range of text this element covers.
func (e Element) Range() span.TextRange {
	switch {
	case e.node != nil:
		return e.node.Range()
	case e.token != nil:
		return e.token.Range()
	default:
		return span.TextRange{}
	}
}

// Parent returns the node containing this element.
func (e Element) Parent() *Node {
	switch {
	case e.node != nil:
		return e.node.parent
	case e.token != nil:
		return e.token.parent
	default:
		return nil
	}
}

// NextSibling returns the element after this one in its parent.
func (e Element) NextSibling() (Element, bool) {
	switch {
	case e.node != nil:
		return e.node.NextSibling()
	case e.token != nil:
		return e.token.NextSibling()
	default:
		return Element{}, false
	}
}

// PrevSibling returns the element before this one in its parent.
func (e Element) PrevSibling() (Element, bool) {
	switch {
	case e.node != nil:
		return e.node.PrevSibling()
	case e.token != nil:
		return e.token.PrevSibling()
	default:
		return Element{}, false
	}
}

// String implements [fmt.Stringer], returning the text of this element.
func (e Element) String() string {
	switch {
	case e.node != nil:
		return e.node.Text()
	case e.token != nil:
		return e.token.text
	default:
		return ""
	}
}

func (e Element) firstToken() *Token {
	if e.token != nil {
		return e.token
	}
	return e.node.FirstToken()
}

func (e Element) lastToken() *Token {
	if e.token != nil {
		return e.token
	}
	return e.node.LastToken()
}

func (e Element) debug() string {
	if e.token != nil {
		return fmt.Sprintf("%v@%v %s", e.token.kind, e.token.Range(), strconv.Quote(e.token.text))
	}
	return fmt.Sprintf("%v@%v", e.node.kind, e.node.Range())
}

func sibling(parent *Node, idx int) (Element, bool) {
	if parent == nil || idx < 0 || idx >= len(parent.children) {
		return Element{}, false
	}
	return parent.children[idx], true
}
