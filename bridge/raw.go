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
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/parser/lexer"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

// RawConverter is a [TokenConverter] over lexed free text.
type RawConverter struct {
	lexed    *lexer.Lexed
	pos      int
	mapper   span.Mapper
	callSite span.Span
	mode     DocCommentDesugarMode
}

var _ TokenConverter = (*RawConverter)(nil)

// NewRawConverter returns a converter whose spans are the ranges of the
// tokens in the text, relative to anchor and in context ctx.
func NewRawConverter(lexed *lexer.Lexed, anchor span.Anchor, ctx span.SyntaxContext, mode DocCommentDesugarMode) *RawConverter {
	m := anchored{anchor: anchor, ctx: ctx}
	return &RawConverter{
		lexed:    lexed,
		mapper:   m,
		callSite: m.SpanFor(span.Empty(0)),
		mode:     mode,
	}
}

// NewStaticRawConverter returns a converter that gives every token, and the
// top-level delimiter, the same span.
func NewStaticRawConverter(lexed *lexer.Lexed, sp span.Span, mode DocCommentDesugarMode) *RawConverter {
	return &RawConverter{
		lexed:    lexed,
		mapper:   span.Fixed(sp),
		callSite: sp,
		mode:     mode,
	}
}

// Bump implements [TokenConverter].
func (c *RawConverter) Bump() (Token, span.TextRange, bool) {
	if c.pos >= c.lexed.Len() {
		return Token{}, span.TextRange{}, false
	}
	idx := c.pos
	c.pos++
	return Token{Kind: c.lexed.Kind(idx), Text: c.lexed.Text(idx)}, c.lexed.Range(idx), true
}

// Peek implements [TokenConverter].
func (c *RawConverter) Peek() (parser.Kind, bool) {
	if c.pos >= c.lexed.Len() {
		return parser.EOF, false
	}
	return c.lexed.Kind(c.pos), true
}

// SpanFor implements [TokenConverter].
func (c *RawConverter) SpanFor(r span.TextRange) span.Span {
	return c.mapper.SpanFor(r)
}

// CallSite implements [TokenConverter].
func (c *RawConverter) CallSite() span.Span {
	return c.callSite
}

// ConvertDocComment implements [TokenConverter].
func (c *RawConverter) ConvertDocComment(tok Token, sp span.Span, b *tt.Builder) {
	convertDocComment(tok.Text, sp, c.mode, b)
}

// anchored maps ranges onto spans relative to a fixed anchor.
type anchored struct {
	anchor span.Anchor
	ctx    span.SyntaxContext
}

func (a anchored) SpanFor(r span.TextRange) span.Span {
	return span.Span{Range: r, Anchor: a.anchor, Ctx: a.ctx}
}
