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
	"fmt"
	"unicode/utf8"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

// Token is a token produced by a [TokenConverter].
//
// It is either a token of source text, with a kind and text, or a leaf that
// was synthesized by the converter and is emitted as-is.
type Token struct {
	Kind parser.Kind
	Text string

	// If set, Kind and Text are ignored.
	Leaf tt.Leaf
}

// TokenConverter produces the tokens [ConvertTokens] turns into a token
// tree.
//
// Punctuation must be produced one character at a time.
type TokenConverter interface {
	// Bump consumes the next token, returning its range in the source.
	Bump() (Token, span.TextRange, bool)
	// Peek returns the kind of the next token without consuming it.
	Peek() (parser.Kind, bool)

	// SpanFor returns the span of a range of the source.
	SpanFor(span.TextRange) span.Span
	// CallSite returns the span of the top-level delimiter.
	CallSite() span.Span

	// ConvertDocComment appends the token tree equivalent of a comment to b.
	// Comments that are not doc comments produce nothing.
	ConvertDocComment(tok Token, sp span.Span, b *tt.Builder)
}

// ConvertTokens drains conv and builds a token tree out of its tokens.
//
// Whitespace and plain comments are dropped. A punctuation character is
// [tt.Joint] if the token after it is an operator character or a lifetime,
// and [tt.Alone] otherwise; delimiters are always alone. A closer that does
// not match any open delimiter becomes an ordinary punctuation character;
// a closer that matches an outer delimiter closes everything inside it.
//
// Panics if a delimiter is still open when conv runs out of tokens.
func ConvertTokens(conv TokenConverter) *tt.TopSubtree {
	b := tt.NewBuilder(tt.InvisibleDelimiter(conv.CallSite()))
	for {
		tok, rng, ok := conv.Bump()
		if !ok {
			break
		}
		if tok.Leaf != nil {
			b.Push(tok.Leaf)
			continue
		}

		switch kind := tok.Kind; {
		case kind == parser.Comment:
			conv.ConvertDocComment(tok, conv.SpanFor(rng), b)

		case kind.IsPunct() && kind != parser.Underscore:
			if closeDelimiters(b, kind, conv.SpanFor(rng)) {
				continue
			}
			if delim, ok := openDelimiter(kind); ok {
				b.Open(delim, conv.SpanFor(rng))
				continue
			}

			spacing := tt.Alone
			if next, ok := conv.Peek(); ok && isSingleTokenOp(next) {
				spacing = tt.Joint
			}
			c, n := utf8.DecodeRuneInString(tok.Text)
			if n == 0 || n != len(tok.Text) {
				panic(fmt.Sprintf("tokentree/bridge: punctuation token must be a single character, got %q", tok.Text))
			}
			b.Push(tt.Punct{Char: c, Spacing: spacing, Span: conv.SpanFor(rng)})

		case kind == parser.Ident || kind.IsAnyKeyword():
			b.Push(tt.NewIdent(tok.Text, conv.SpanFor(rng)))

		case kind == parser.Underscore:
			b.Push(tt.Ident{Symbol: tt.Intern(tok.Text), Span: conv.SpanFor(rng)})

		case kind.IsLiteral():
			b.Push(TokenToLiteral(tok.Text, conv.SpanFor(rng)))

		case kind == parser.LifetimeIdent:
			quote := span.At(rng.Start, 1)
			b.Push(tt.Punct{Char: '\'', Spacing: tt.Joint, Span: conv.SpanFor(quote)})
			b.Push(tt.Ident{
				Symbol: tt.Intern(tok.Text[1:]),
				Span:   conv.SpanFor(span.NewRange(quote.End, rng.End)),
			})
		}
	}

	if b.Depth() > 0 {
		panic(fmt.Sprintf("tokentree/bridge: %d delimiters left unclosed at end of input", b.Depth()))
	}
	return b.BuildSkipTopSubtree()
}

// closeDelimiters closes every subtree up to and including the innermost
// one that kind closes. Returns false if no open subtree is closed by kind.
func closeDelimiters(b *tt.Builder, kind parser.Kind, sp span.Span) bool {
	depth := 0
	found := false
	for delim := range b.ExpectedDelimiters() {
		depth++
		if closes(delim.Kind, kind) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for range depth {
		b.Close(sp)
	}
	return true
}

func closes(delim tt.DelimiterKind, kind parser.Kind) bool {
	switch delim {
	case tt.Parenthesis:
		return kind == parser.RParen
	case tt.Brace:
		return kind == parser.RCurly
	case tt.Bracket:
		return kind == parser.RBrack
	default:
		return false
	}
}

func openDelimiter(kind parser.Kind) (tt.DelimiterKind, bool) {
	switch kind {
	case parser.LParen:
		return tt.Parenthesis, true
	case parser.LCurly:
		return tt.Brace, true
	case parser.LBrack:
		return tt.Bracket, true
	default:
		return tt.Invisible, false
	}
}

// isSingleTokenOp returns whether a token of the given kind can glue onto a
// punctuation character before it.
func isSingleTokenOp(kind parser.Kind) bool {
	switch kind {
	case parser.Eq, parser.LAngle, parser.RAngle, parser.Bang, parser.Amp,
		parser.Pipe, parser.Tilde, parser.At, parser.Dot, parser.Comma,
		parser.Semicolon, parser.Colon, parser.Pound, parser.Dollar,
		parser.Question, parser.Plus, parser.Minus, parser.Star, parser.Slash,
		parser.Percent, parser.Caret,
		// Lifetimes start with a quote character.
		parser.LifetimeIdent:
		return true
	default:
		return false
	}
}
