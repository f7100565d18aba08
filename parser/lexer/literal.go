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

package lexer

import (
	"fmt"

	"github.com/bufbuild/tokentree/parser"
)

// LiteralKind is the shape of a literal token.
type LiteralKind byte

const (
	NotLiteral LiteralKind = iota
	LitInt                 // 42, 0x2a, 1u8
	LitFloat               // 1.0, 1e9, 1.
	LitChar                // 'x'
	LitByte                // b'x'
	LitStr                 // "x"
	LitByteStr             // b"x"
	LitCStr                // c"x"
	LitRawStr              // r#"x"#
	LitRawByteStr          // br#"x"#
	LitRawCStr             // cr#"x"#
)

// String implements [fmt.Stringer].
func (k LiteralKind) String() string {
	switch k {
	case NotLiteral:
		return "NotLiteral"
	case LitInt:
		return "Int"
	case LitFloat:
		return "Float"
	case LitChar:
		return "Char"
	case LitByte:
		return "Byte"
	case LitStr:
		return "Str"
	case LitByteStr:
		return "ByteStr"
	case LitCStr:
		return "CStr"
	case LitRawStr:
		return "RawStr"
	case LitRawByteStr:
		return "RawByteStr"
	case LitRawCStr:
		return "RawCStr"
	default:
		return fmt.Sprintf("lexer.LiteralKind(%d)", int(k))
	}
}

// Kind returns the token kind for literals of this kind.
func (k LiteralKind) Kind() parser.Kind {
	switch k {
	case LitInt:
		return parser.IntNumber
	case LitFloat:
		return parser.FloatNumber
	case LitChar:
		return parser.Char
	case LitByte:
		return parser.Byte
	case LitStr, LitRawStr:
		return parser.String
	case LitByteStr, LitRawByteStr:
		return parser.ByteString
	case LitCStr, LitRawCStr:
		return parser.CString
	default:
		return parser.Error
	}
}

// IsNumeric returns whether this is an integer or float kind.
func (k LiteralKind) IsNumeric() bool {
	return k == LitInt || k == LitFloat
}

// Literal describes the layout of a single literal token.
type Literal struct {
	Kind LiteralKind
	// The offset at which the literal's suffix starts. This is the length of
	// the token if there is no suffix.
	SuffixStart int
	// Whether the closing quote is present. Always true for numbers.
	Terminated bool
	// For raw strings, the number of hashes, or -1 if the string is
	// ill-formed.
	Hashes int
	// For numbers, the radix.
	Base int
}

// ScanLiteral lexes text as a single literal.
//
// Returns false if text does not consist of exactly one literal token.
func ScanLiteral(text string) (Literal, bool) {
	c := cursor{text: text}
	tok := c.next()
	if tok.kind != rawLiteral || tok.len != len(text) {
		return Literal{}, false
	}
	return tok.literal(), true
}

func (t rawToken) literal() Literal {
	return Literal{
		Kind:        t.lit,
		SuffixStart: t.suffixStart,
		Terminated:  t.terminated,
		Hashes:      t.hashes,
		Base:        t.base,
	}
}

// Split splits the text of this literal into its contents, with quotes,
// prefixes and hashes removed, and its suffix.
//
// Unterminated literals are missing their closing quote; Split accounts for
// this.
func (l Literal) Split(text string) (contents, suffix string) {
	end := min(max(l.SuffixStart, 0), len(text))
	body, suffix := text[:end], text[end:]

	var unquote int
	if l.Terminated {
		unquote = 1
	}
	hashes := max(l.Hashes, 0)

	var start, stop int
	switch l.Kind {
	case LitChar, LitStr:
		start, stop = 1, unquote
	case LitByte, LitByteStr, LitCStr:
		start, stop = 2, unquote
	case LitRawStr:
		start, stop = 2+hashes, 1+hashes
	case LitRawByteStr, LitRawCStr:
		start, stop = 3+hashes, 1+hashes
	}
	if start+stop > len(body) {
		return "", suffix
	}
	return body[start : len(body)-stop], suffix
}
