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

import (
	"maps"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
	"github.com/bufbuild/tokentree/tt"
)

// NodeConverter is a [TokenConverter] that walks the tokens of a syntax
// tree.
//
// Compound punctuation tokens, such as `<<=`, are produced one character at
// a time. The walk can be edited without modifying the tree: leaves can be
// appended after any element, and elements can be removed along with
// everything beneath them.
type NodeConverter struct {
	walk     *syntax.Preorder
	rng      span.TextRange
	current  *syntax.Token
	leaves   []tt.Leaf // Pending appended leaves, last one first.
	punct    *syntax.Token
	offset   int // Offset of the last character produced from punct.
	append   map[syntax.Element][]tt.Leaf
	remove   map[syntax.Element]struct{}
	mapper   span.Mapper
	callSite span.Span
	mode     DocCommentDesugarMode
}

var _ TokenConverter = (*NodeConverter)(nil)

// NewNodeConverter returns a converter over the tokens of node.
//
// The leaves in appendLeaves are produced right after their element has been
// walked; elements in remove are skipped. Either map may be nil. Neither map
// is modified.
func NewNodeConverter(
	node *syntax.Node,
	mapper span.Mapper,
	appendLeaves map[syntax.Element][]tt.Leaf,
	remove map[syntax.Element]struct{},
	callSite span.Span,
	mode DocCommentDesugarMode,
) *NodeConverter {
	c := &NodeConverter{
		walk:     node.Preorder(),
		rng:      node.Range(),
		append:   maps.Clone(appendLeaves),
		remove:   remove,
		mapper:   mapper,
		callSite: callSite,
		mode:     mode,
	}
	c.current = c.nextToken()
	return c
}

// Bump implements [TokenConverter].
func (c *NodeConverter) Bump() (Token, span.TextRange, bool) {
	if c.punct != nil && c.offset+1 < len(c.punct.Text()) {
		c.offset++
		return c.punctChar(c.offset), span.At(c.punct.Range().Start+span.Offset(c.offset), 1), true
	}

	if n := len(c.leaves); n > 0 {
		leaf := c.leaves[n-1]
		c.leaves = c.leaves[:n-1]
		if len(c.leaves) == 0 {
			c.current = c.nextToken()
		}
		return Token{Leaf: leaf}, span.TextRange{}, true
	}

	cur := c.current
	if cur == nil || !c.rng.ContainsRange(cur.Range()) {
		return Token{}, span.TextRange{}, false
	}
	c.current = c.nextToken()

	if cur.Kind().IsPunct() {
		c.punct, c.offset = cur, 0
		return c.punctChar(0), span.At(cur.Range().Start, 1), true
	}
	c.punct = nil
	return Token{Kind: cur.Kind(), Text: cur.Text()}, cur.Range(), true
}

// Peek implements [TokenConverter].
func (c *NodeConverter) Peek() (parser.Kind, bool) {
	if c.punct != nil && c.offset+1 < len(c.punct.Text()) {
		return c.punctChar(c.offset + 1).Kind, true
	}

	cur := c.current
	if cur == nil || !c.rng.ContainsRange(cur.Range()) {
		return parser.EOF, false
	}
	if cur.Kind().IsPunct() {
		return charKind(cur.Text()[0]), true
	}
	return cur.Kind(), true
}

// SpanFor implements [TokenConverter].
func (c *NodeConverter) SpanFor(r span.TextRange) span.Span {
	return c.mapper.SpanFor(r)
}

// CallSite implements [TokenConverter].
func (c *NodeConverter) CallSite() span.Span {
	return c.callSite
}

// ConvertDocComment implements [TokenConverter].
func (c *NodeConverter) ConvertDocComment(tok Token, sp span.Span, b *tt.Builder) {
	convertDocComment(tok.Text, sp, c.mode, b)
}

func (c *NodeConverter) punctChar(offset int) Token {
	text := c.punct.Text()
	return Token{Kind: charKind(text[offset]), Text: text[offset : offset+1]}
}

// nextToken advances the walk to the next token that was not removed.
//
// Returns nil either at the end of the walk or when appended leaves are
// pending; once they are drained, the walk resumes.
func (c *NodeConverter) nextToken() *syntax.Token {
	for {
		ev, ok := c.walk.Next()
		if !ok {
			return nil
		}

		if !ev.Enter {
			if c.queue(ev.Element) {
				return nil
			}
			continue
		}

		if _, removed := c.remove[ev.Element]; removed {
			if ev.Element.Token() != nil {
				continue
			}
			c.walk.SkipSubtree()
			if c.queue(ev.Element) {
				return nil
			}
			continue
		}
		if tok := ev.Element.Token(); tok != nil {
			return tok
		}
	}
}

// queue makes the leaves appended after el pending. Each element's leaves
// are only produced once.
func (c *NodeConverter) queue(el syntax.Element) bool {
	leaves, ok := c.append[el]
	if !ok {
		return false
	}
	delete(c.append, el)
	for i := len(leaves) - 1; i >= 0; i-- {
		c.leaves = append(c.leaves, leaves[i])
	}
	return len(leaves) > 0
}

func charKind(c byte) parser.Kind {
	kind, ok := parser.FromChar(rune(c))
	if !ok {
		return parser.Error
	}
	return kind
}
