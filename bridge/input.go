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
	"strings"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

// ToParserInput converts the entries of a token tree view into parser input.
//
// Keywords are recognized according to edition. Every entry becomes one
// input token, except for a `'` followed by an identifier, which becomes a
// single lifetime. Invisible delimiters produce nothing.
//
// Panics if a `'` is not followed by an identifier.
func ToParserInput(view tt.View, edition parser.Edition) *parser.Input {
	return toParserInput(view, func(span.SyntaxContext) parser.Edition { return edition })
}

func toParserInput(view tt.View, editionOf func(span.SyntaxContext) parser.Edition) *parser.Input {
	in := new(parser.Input)
	editions := make(map[span.SyntaxContext]parser.Edition)

	c := newCursor(view)
	for !c.eof() {
		if sub, ok := c.closing(); ok {
			if kind, ok := closeKind(sub.Delimiter.Kind); ok {
				in.Push(kind)
			}
			c.bump()
			continue
		}

		tree, _ := c.tree()
		c.bump()
		switch tree.Kind() {
		case tt.KindSubtree:
			sub, _ := tree.Subtree()
			if kind, ok := openKind(sub.Delimiter.Kind); ok {
				in.Push(kind)
			}

		case tt.KindLiteral:
			lit, _ := tree.Literal()
			kind := literalKind(lit.Kind)
			in.Push(kind)
			// A float with a fractional part is marked joint, so that the
			// parser splits it when it is used as a tuple field.
			if kind == parser.FloatNumber && !strings.HasSuffix(lit.Symbol.String(), ".") {
				in.WasJoint()
			}

		case tt.KindIdent:
			ident, _ := tree.Ident()
			edition, ok := editions[ident.Span.Ctx]
			if !ok {
				edition = editionOf(ident.Span.Ctx)
				editions[ident.Span.Ctx] = edition
			}
			pushIdent(in, ident, edition)

		case tt.KindPunct:
			punct, _ := tree.Punct()
			if punct.Char == '\'' {
				next, ok := c.tree()
				if !ok || next.Kind() != tt.KindIdent {
					panic("tokentree/bridge: a lifetime quote must be followed by an identifier")
				}
				c.bump()
				in.Push(parser.LifetimeIdent)
				continue
			}
			kind, ok := parser.FromChar(punct.Char)
			if !ok {
				panic(fmt.Sprintf("tokentree/bridge: %q is not a valid punctuation character", punct.Char))
			}
			in.Push(kind)
			if punct.Spacing == tt.Joint {
				in.WasJoint()
			}
		}
	}
	return in
}

func pushIdent(in *parser.Input, ident tt.Ident, edition parser.Edition) {
	text := ident.Symbol.String()
	switch {
	case text == "_":
		in.Push(parser.Underscore)
	case strings.HasPrefix(text, "'"):
		in.Push(parser.LifetimeIdent)
	case ident.IsRaw:
		in.Push(parser.Ident)
	default:
		if kind, ok := parser.FromKeyword(text, edition); ok {
			in.Push(kind)
			return
		}
		ctx, ok := parser.FromContextualKeyword(text, edition)
		if !ok {
			ctx = parser.EOF
		}
		in.PushIdent(ctx)
	}
}

func literalKind(kind tt.LitKind) parser.Kind {
	switch kind.Base() {
	case tt.LitByte:
		return parser.Byte
	case tt.LitChar:
		return parser.Char
	case tt.LitInteger:
		return parser.IntNumber
	case tt.LitFloat:
		return parser.FloatNumber
	case tt.LitStr, tt.LitStrRaw:
		return parser.String
	case tt.LitByteStr, tt.LitByteStrRaw:
		return parser.ByteString
	case tt.LitCStr, tt.LitCStrRaw:
		return parser.CString
	default:
		return parser.Error
	}
}

func openKind(kind tt.DelimiterKind) (parser.Kind, bool) {
	switch kind {
	case tt.Parenthesis:
		return parser.LParen, true
	case tt.Brace:
		return parser.LCurly, true
	case tt.Bracket:
		return parser.LBrack, true
	default:
		return parser.EOF, false
	}
}

func closeKind(kind tt.DelimiterKind) (parser.Kind, bool) {
	switch kind {
	case tt.Parenthesis:
		return parser.RParen, true
	case tt.Brace:
		return parser.RCurly, true
	case tt.Bracket:
		return parser.RBrack, true
	default:
		return parser.EOF, false
	}
}
