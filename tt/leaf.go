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
	"strings"

	"github.com/bufbuild/tokentree/internal/intern"
	"github.com/bufbuild/tokentree/span"
)

// Symbol is an interned string. See [Intern].
type Symbol = intern.Symbol

// Intern interns s in the global symbol table.
func Intern(s string) Symbol {
	return intern.Intern(s)
}

// Spacing is whether a [Punct] may fuse with the token that follows it when
// the stream is printed or re-lexed.
type Spacing byte

const (
	// Alone punctuation is followed by something that is not punctuation, or
	// by whitespace.
	Alone Spacing = iota
	// Joint punctuation is immediately followed by more punctuation, and the
	// two may be glued into one operator.
	Joint
	// JointHidden punctuation is immediately followed by a non-punctuation
	// token; the jointness is not visible to macros.
	JointHidden
)

// String implements [fmt.Stringer].
func (s Spacing) String() string {
	switch s {
	case Alone:
		return "alone"
	case Joint:
		return "joint"
	case JointHidden:
		return "joint-hidden"
	default:
		return fmt.Sprintf("tt.Spacing(%d)", int(s))
	}
}

// LitKind classifies the shape of a [Literal].
//
// Raw string kinds carry the number of hashes delimiting them; see
// [LitKind.Hashes].
type LitKind uint16

const (
	LitErr        LitKind = iota // An ill-formed literal. Its symbol is the full text.
	LitByte                      // b'x'
	LitChar                      // 'x'
	LitInteger                   // 42, 0x2a, 1u8
	LitFloat                     // 1.0, 1e9, 1.
	LitStr                       // "x"
	LitStrRaw                    // r#"x"#
	LitByteStr                   // b"x"
	LitByteStrRaw                // br#"x"#
	LitCStr                      // c"x"
	LitCStrRaw                   // cr#"x"#
)

// Raw returns a raw string kind with the given hash count.
//
// Panics if base is not one of [LitStrRaw], [LitByteStrRaw] or [LitCStrRaw].
func Raw(base LitKind, hashes uint8) LitKind {
	if !base.IsRaw() {
		panic(fmt.Sprintf("tokentree/tt: %v is not a raw literal kind", base))
	}
	return base.Base() | LitKind(hashes)<<8
}

// Base returns the kind with any hash count removed.
func (k LitKind) Base() LitKind {
	return k & 0xff
}

// Hashes returns the number of hashes of a raw string kind, or zero.
func (k LitKind) Hashes() uint8 {
	return uint8(k >> 8)
}

// IsRaw returns whether this is a raw string kind.
func (k LitKind) IsRaw() bool {
	switch k.Base() {
	case LitStrRaw, LitByteStrRaw, LitCStrRaw:
		return true
	default:
		return false
	}
}

// IsNumeric returns whether this is an integer or float kind. Only numeric
// literals may carry arbitrary suffixes.
func (k LitKind) IsNumeric() bool {
	return k == LitInteger || k == LitFloat
}

// String implements [fmt.Stringer].
func (k LitKind) String() string {
	var name string
	switch k.Base() {
	case LitErr:
		name = "Err"
	case LitByte:
		name = "Byte"
	case LitChar:
		name = "Char"
	case LitInteger:
		name = "Integer"
	case LitFloat:
		name = "Float"
	case LitStr:
		name = "Str"
	case LitStrRaw:
		name = "StrRaw"
	case LitByteStr:
		name = "ByteStr"
	case LitByteStrRaw:
		name = "ByteStrRaw"
	case LitCStr:
		name = "CStr"
	case LitCStrRaw:
		name = "CStrRaw"
	default:
		return fmt.Sprintf("tt.LitKind(%d)", int(k))
	}
	if k.IsRaw() {
		return fmt.Sprintf("%s(%d)", name, k.Hashes())
	}
	return name
}

// Leaf is a token tree entry that does not nest: a [Literal], a [Punct], or
// an [Ident].
type Leaf interface {
	fmt.Stringer

	tree() TokenTree
}

// SpanOf returns the span of a leaf.
func SpanOf(l Leaf) span.Span {
	switch l := l.(type) {
	case Literal:
		return l.Span
	case Punct:
		return l.Span
	case Ident:
		return l.Span
	default:
		return span.Span{}
	}
}

// Literal is a literal token.
//
// Symbol holds the literal's contents with quotes, prefixes and hashes
// removed; for [LitErr] it holds the literal's full text.
type Literal struct {
	Symbol Symbol
	Span   span.Span
	Kind   LitKind
	// Zero if this literal has no suffix.
	Suffix Symbol
}

// Punct is a single punctuation character.
type Punct struct {
	Char    rune
	Spacing Spacing
	Span    span.Span
}

// Ident is an identifier or keyword.
type Ident struct {
	Symbol Symbol
	Span   span.Span
	// Whether this is a raw identifier, e.g. r#type. Symbol does not include
	// the r# prefix.
	IsRaw bool
}

// NewIdent builds an identifier from its source text, recognizing the raw
// identifier prefix.
func NewIdent(text string, sp span.Span) Ident {
	raw := strings.HasPrefix(text, "r#")
	if raw {
		text = text[2:]
	}
	return Ident{Symbol: Intern(text), Span: sp, IsRaw: raw}
}

// HasSuffix returns whether this literal has a suffix.
func (l Literal) HasSuffix() bool {
	return l.Suffix != 0
}
