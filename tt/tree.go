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

	"github.com/bufbuild/tokentree/span"
)

// DelimiterKind is the kind of bracket a [Subtree] is enclosed in.
type DelimiterKind byte

const (
	Invisible   DelimiterKind = iota // No delimiters; a purely structural group.
	Parenthesis                      // ( ... )
	Brace                            // { ... }
	Bracket                          // [ ... ]
)

// Chars returns the open and close characters for this delimiter, or zero for
// [Invisible].
func (k DelimiterKind) Chars() (open, close rune) {
	switch k {
	case Parenthesis:
		return '(', ')'
	case Brace:
		return '{', '}'
	case Bracket:
		return '[', ']'
	default:
		return 0, 0
	}
}

// String implements [fmt.Stringer].
func (k DelimiterKind) String() string {
	switch k {
	case Invisible:
		return "$$"
	case Parenthesis:
		return "()"
	case Brace:
		return "{}"
	case Bracket:
		return "[]"
	default:
		return fmt.Sprintf("tt.DelimiterKind(%d)", int(k))
	}
}

// Delimiter is the pair of brackets around a [Subtree], with the spans of
// each side.
type Delimiter struct {
	Open, Close span.Span
	Kind        DelimiterKind
}

// InvisibleDelimiter returns an [Invisible] delimiter whose two sides both
// carry sp.
func InvisibleDelimiter(sp span.Span) Delimiter {
	return Delimiter{Open: sp, Close: sp, Kind: Invisible}
}

// Subtree is the header of a delimited group in the flat encoding.
type Subtree struct {
	Delimiter Delimiter
	// The number of flat entries after this header that belong to it. This
	// counts all descendants, not just direct children.
	Len uint32
}

// Kind is the kind of a [TokenTree] entry.
type Kind byte

const (
	KindInvalid Kind = iota
	KindSubtree
	KindLiteral
	KindPunct
	KindIdent
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindSubtree:
		return "Subtree"
	case KindLiteral:
		return "Literal"
	case KindPunct:
		return "Punct"
	case KindIdent:
		return "Ident"
	default:
		return fmt.Sprintf("tt.Kind(%d)", int(k))
	}
}

// TokenTree is one entry of the flat encoding: either a [Leaf] or a [Subtree]
// header.
//
// Entries are packed: a TokenTree is a plain value and can be copied freely.
// The zero value is invalid.
type TokenTree struct {
	// Leaf span, or the open delimiter span.
	first span.Span
	// Close delimiter span. Unused for leaves.
	second span.Span
	// Ident or literal symbol.
	sym Symbol
	// Literal suffix.
	suffix Symbol
	// Subtree length, punct character, or literal kind.
	data uint32
	kind Kind
	// Spacing, delimiter kind, or whether an ident is raw.
	flags byte
}

// FromLeaf wraps a leaf into a [TokenTree].
func FromLeaf(l Leaf) TokenTree {
	return l.tree()
}

// Tree wraps this subtree header into a [TokenTree].
func (s Subtree) Tree() TokenTree {
	return TokenTree{
		first:  s.Delimiter.Open,
		second: s.Delimiter.Close,
		data:   s.Len,
		kind:   KindSubtree,
		flags:  byte(s.Delimiter.Kind),
	}
}

func (l Literal) tree() TokenTree {
	return TokenTree{
		first:  l.Span,
		sym:    l.Symbol,
		suffix: l.Suffix,
		data:   uint32(l.Kind),
		kind:   KindLiteral,
	}
}

func (p Punct) tree() TokenTree {
	return TokenTree{
		first: p.Span,
		data:  uint32(p.Char),
		kind:  KindPunct,
		flags: byte(p.Spacing),
	}
}

func (i Ident) tree() TokenTree {
	t := TokenTree{
		first: i.Span,
		sym:   i.Symbol,
		kind:  KindIdent,
	}
	if i.IsRaw {
		t.flags = 1
	}
	return t
}

// Kind returns what kind of entry this is.
func (t TokenTree) Kind() Kind {
	return t.kind
}

// IsLeaf returns whether this entry is a leaf.
func (t TokenTree) IsLeaf() bool {
	return t.kind > KindSubtree
}

// IsSubtree returns whether this entry is a subtree header.
func (t TokenTree) IsSubtree() bool {
	return t.kind == KindSubtree
}

// Subtree returns this entry as a subtree header, if it is one.
func (t TokenTree) Subtree() (Subtree, bool) {
	if t.kind != KindSubtree {
		return Subtree{}, false
	}
	return Subtree{
		Delimiter: Delimiter{
			Open:  t.first,
			Close: t.second,
			Kind:  DelimiterKind(t.flags),
		},
		Len: t.data,
	}, true
}

// Leaf returns this entry as a leaf, if it is one.
func (t TokenTree) Leaf() (Leaf, bool) {
	switch t.kind {
	case KindLiteral:
		l, _ := t.Literal()
		return l, true
	case KindPunct:
		p, _ := t.Punct()
		return p, true
	case KindIdent:
		i, _ := t.Ident()
		return i, true
	default:
		return nil, false
	}
}

// Literal returns this entry as a literal, if it is one.
func (t TokenTree) Literal() (Literal, bool) {
	if t.kind != KindLiteral {
		return Literal{}, false
	}
	return Literal{
		Symbol: t.sym,
		Span:   t.first,
		Kind:   LitKind(t.data),
		Suffix: t.suffix,
	}, true
}

// Punct returns this entry as a punct, if it is one.
func (t TokenTree) Punct() (Punct, bool) {
	if t.kind != KindPunct {
		return Punct{}, false
	}
	return Punct{
		Char:    rune(t.data),
		Spacing: Spacing(t.flags),
		Span:    t.first,
	}, true
}

// Ident returns this entry as an ident, if it is one.
func (t TokenTree) Ident() (Ident, bool) {
	if t.kind != KindIdent {
		return Ident{}, false
	}
	return Ident{
		Symbol: t.sym,
		Span:   t.first,
		IsRaw:  t.flags != 0,
	}, true
}

// IsPunct returns whether this is a punct with the given character.
func (t TokenTree) IsPunct(c rune) bool {
	return t.kind == KindPunct && rune(t.data) == c
}

// FirstSpan returns the span of a leaf, or the open delimiter span of a
// subtree.
func (t TokenTree) FirstSpan() span.Span {
	return t.first
}

// LastSpan returns the span of a leaf, or the close delimiter span of a
// subtree.
func (t TokenTree) LastSpan() span.Span {
	if t.kind == KindSubtree {
		return t.second
	}
	return t.first
}

// length returns the number of flat descendants of this entry.
func (t TokenTree) length() int {
	if t.kind == KindSubtree {
		return int(t.data)
	}
	return 0
}

// withLen returns a copy of a subtree header with a new length.
func (t TokenTree) withLen(n uint32) TokenTree {
	t.data = n
	return t
}

// String implements [fmt.Stringer].
func (t TokenTree) String() string {
	if l, ok := t.Leaf(); ok {
		return l.String()
	}
	if s, ok := t.Subtree(); ok {
		return fmt.Sprintf("SUBTREE %v len=%d", s.Delimiter.Kind, s.Len)
	}
	return "<invalid>"
}
