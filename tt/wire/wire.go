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

// Package wire provides a flat serialization of token trees, for sending them
// across a process boundary.
//
// A [Tree] stores every leaf kind in its own table and keeps the order of the
// original flat array in [Tree.Tokens]. Strings and spans are deduplicated.
// The flat encoding of the original tree is not re-derived on the way out;
// it is checked again when the tree is converted back with [Tree.TopSubtree].
package wire

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

// Version is the current version of the wire format.
const Version uint32 = 1

// Tag identifies which table an entry of [Tree.Tokens] indexes into.
type Tag uint32

const (
	TagSubtree Tag = iota
	TagLiteral
	TagPunct
	TagIdent

	tagBits = 2
	tagMask = 1<<tagBits - 1
)

// Tree is the serialized form of a [tt.TopSubtree].
type Tree struct {
	Version uint32 `msgpack:"v"`
	// Deduplicated spans; all span fields below index into this table.
	Spans []Span `msgpack:"spans"`
	// Deduplicated strings. Index 0 is always the empty string.
	Text     []string  `msgpack:"text"`
	Subtrees []Subtree `msgpack:"subtrees"`
	Literals []Literal `msgpack:"literals"`
	Puncts   []Punct   `msgpack:"puncts"`
	Idents   []Ident   `msgpack:"idents"`
	// One entry per flat token tree entry: an index shifted left by two,
	// or'ed with its [Tag].
	Tokens []uint32 `msgpack:"tokens"`
}

// Span is a serialized [span.Span].
type Span struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	File  uint32 `msgpack:"f"`
	Ast   uint32 `msgpack:"a"`
	Ctx   uint32 `msgpack:"c"`
}

// Subtree is a serialized [tt.Subtree].
type Subtree struct {
	Open  uint32 `msgpack:"o"`
	Close uint32 `msgpack:"c"`
	Kind  uint32 `msgpack:"k"`
	Len   uint32 `msgpack:"n"`
}

// Literal is a serialized [tt.Literal].
type Literal struct {
	Span   uint32 `msgpack:"p"`
	Text   uint32 `msgpack:"t"`
	Kind   uint32 `msgpack:"k"`
	Suffix uint32 `msgpack:"x"`
}

// Punct is a serialized [tt.Punct].
type Punct struct {
	Span    uint32 `msgpack:"p"`
	Char    uint32 `msgpack:"r"`
	Spacing uint32 `msgpack:"s"`
}

// Ident is a serialized [tt.Ident].
type Ident struct {
	Span  uint32 `msgpack:"p"`
	Text  uint32 `msgpack:"t"`
	IsRaw bool   `msgpack:"r"`
}

// FromTopSubtree serializes a token tree.
func FromTopSubtree(top *tt.TopSubtree) *Tree {
	w := &writer{
		tree:  &Tree{Version: Version, Text: []string{""}},
		spans: make(map[span.Span]uint32),
		text:  map[string]uint32{"": 0},
	}
	for _, tree := range top.View().View().FlatTokens() {
		w.push(tree)
	}
	return w.tree
}

// TopSubtree deserializes a token tree, checking that every index is in
// bounds and that the result obeys the flat encoding.
func (t *Tree) TopSubtree() (*tt.TopSubtree, error) {
	if t.Version != Version {
		return nil, fmt.Errorf("tokentree/wire: unsupported version %d, want %d", t.Version, Version)
	}
	if len(t.Tokens) == 0 {
		return nil, errors.New("tokentree/wire: no tokens")
	}

	r := reader{tree: t}
	flat := make([]tt.TokenTree, 0, len(t.Tokens))
	for i, tok := range t.Tokens {
		tree, err := r.token(tok)
		if err != nil {
			return nil, fmt.Errorf("tokentree/wire: token %d: %w", i, err)
		}
		flat = append(flat, tree)
	}
	return tt.FromFlat(flat)
}

type writer struct {
	tree  *Tree
	spans map[span.Span]uint32
	text  map[string]uint32
}

func (w *writer) push(tree tt.TokenTree) {
	var tag Tag
	var idx int
	switch tree.Kind() {
	case tt.KindSubtree:
		s, _ := tree.Subtree()
		tag, idx = TagSubtree, len(w.tree.Subtrees)
		w.tree.Subtrees = append(w.tree.Subtrees, Subtree{
			Open:  w.span(s.Delimiter.Open),
			Close: w.span(s.Delimiter.Close),
			Kind:  uint32(s.Delimiter.Kind),
			Len:   s.Len,
		})
	case tt.KindLiteral:
		l, _ := tree.Literal()
		tag, idx = TagLiteral, len(w.tree.Literals)
		w.tree.Literals = append(w.tree.Literals, Literal{
			Span:   w.span(l.Span),
			Text:   w.string(l.Symbol.String()),
			Kind:   uint32(l.Kind),
			Suffix: w.string(l.Suffix.String()),
		})
	case tt.KindPunct:
		p, _ := tree.Punct()
		tag, idx = TagPunct, len(w.tree.Puncts)
		w.tree.Puncts = append(w.tree.Puncts, Punct{
			Span:    w.span(p.Span),
			Char:    uint32(p.Char),
			Spacing: uint32(p.Spacing),
		})
	case tt.KindIdent:
		id, _ := tree.Ident()
		tag, idx = TagIdent, len(w.tree.Idents)
		w.tree.Idents = append(w.tree.Idents, Ident{
			Span:  w.span(id.Span),
			Text:  w.string(id.Symbol.String()),
			IsRaw: id.IsRaw,
		})
	default:
		panic(fmt.Sprintf("tokentree/wire: unexpected token tree entry %v", tree.Kind()))
	}
	w.tree.Tokens = append(w.tree.Tokens, index(idx)<<tagBits|uint32(tag))
}

func (w *writer) span(sp span.Span) uint32 {
	if idx, ok := w.spans[sp]; ok {
		return idx
	}
	idx := index(len(w.tree.Spans))
	w.spans[sp] = idx
	w.tree.Spans = append(w.tree.Spans, Span{
		Start: sp.Range.Start,
		End:   sp.Range.End,
		File:  uint32(sp.Anchor.File),
		Ast:   uint32(sp.Anchor.Ast),
		Ctx:   uint32(sp.Ctx),
	})
	return idx
}

func (w *writer) string(s string) uint32 {
	if idx, ok := w.text[s]; ok {
		return idx
	}
	idx := index(len(w.tree.Text))
	w.text[s] = idx
	w.tree.Text = append(w.tree.Text, s)
	return idx
}

// index converts a table index to its serialized form. Indices are shifted
// by tagBits in Tokens, so they must leave room for the tag.
func index(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil || v > ^uint32(0)>>tagBits {
		panic(fmt.Sprintf("tokentree/wire: token tree too large: %d entries", n))
	}
	return v
}

type reader struct {
	tree *Tree
}

func (r reader) token(tok uint32) (tt.TokenTree, error) {
	idx := tok >> tagBits
	switch Tag(tok & tagMask) {
	case TagSubtree:
		s, err := get(r.tree.Subtrees, idx, "subtree")
		if err != nil {
			return tt.TokenTree{}, err
		}
		open, err := r.span(s.Open)
		if err != nil {
			return tt.TokenTree{}, err
		}
		closeSpan, err := r.span(s.Close)
		if err != nil {
			return tt.TokenTree{}, err
		}
		if s.Kind > uint32(tt.Bracket) {
			return tt.TokenTree{}, fmt.Errorf("invalid delimiter kind %d", s.Kind)
		}
		return tt.Subtree{
			Delimiter: tt.Delimiter{Open: open, Close: closeSpan, Kind: tt.DelimiterKind(s.Kind)},
			Len:       s.Len,
		}.Tree(), nil

	case TagLiteral:
		l, err := get(r.tree.Literals, idx, "literal")
		if err != nil {
			return tt.TokenTree{}, err
		}
		sp, err := r.span(l.Span)
		if err != nil {
			return tt.TokenTree{}, err
		}
		text, err := r.symbol(l.Text)
		if err != nil {
			return tt.TokenTree{}, err
		}
		suffix, err := r.symbol(l.Suffix)
		if err != nil {
			return tt.TokenTree{}, err
		}
		kind, err := safecast.Conv[uint16](l.Kind)
		if err != nil || tt.LitKind(kind).Base() > tt.LitCStrRaw {
			return tt.TokenTree{}, fmt.Errorf("invalid literal kind %d", l.Kind)
		}
		return tt.FromLeaf(tt.Literal{Symbol: text, Span: sp, Kind: tt.LitKind(kind), Suffix: suffix}), nil

	case TagPunct:
		p, err := get(r.tree.Puncts, idx, "punct")
		if err != nil {
			return tt.TokenTree{}, err
		}
		sp, err := r.span(p.Span)
		if err != nil {
			return tt.TokenTree{}, err
		}
		if p.Spacing > uint32(tt.JointHidden) {
			return tt.TokenTree{}, fmt.Errorf("invalid spacing %d", p.Spacing)
		}
		char, err := safecast.Conv[rune](p.Char)
		if err != nil {
			return tt.TokenTree{}, fmt.Errorf("invalid punct character %d", p.Char)
		}
		return tt.FromLeaf(tt.Punct{Char: char, Spacing: tt.Spacing(p.Spacing), Span: sp}), nil

	case TagIdent:
		id, err := get(r.tree.Idents, idx, "ident")
		if err != nil {
			return tt.TokenTree{}, err
		}
		sp, err := r.span(id.Span)
		if err != nil {
			return tt.TokenTree{}, err
		}
		text, err := r.symbol(id.Text)
		if err != nil {
			return tt.TokenTree{}, err
		}
		return tt.FromLeaf(tt.Ident{Symbol: text, Span: sp, IsRaw: id.IsRaw}), nil
	}
	return tt.TokenTree{}, fmt.Errorf("invalid tag %d", tok&tagMask)
}

func (r reader) span(idx uint32) (span.Span, error) {
	s, err := get(r.tree.Spans, idx, "span")
	if err != nil {
		return span.Span{}, err
	}
	if s.Start > s.End {
		return span.Span{}, fmt.Errorf("invalid span range %d..%d", s.Start, s.End)
	}
	return span.Span{
		Range:  span.TextRange{Start: s.Start, End: s.End},
		Anchor: span.Anchor{File: span.FileID(s.File), Ast: span.AstID(s.Ast)},
		Ctx:    span.SyntaxContext(s.Ctx),
	}, nil
}

func (r reader) symbol(idx uint32) (tt.Symbol, error) {
	s, err := get(r.tree.Text, idx, "string")
	if err != nil {
		return 0, err
	}
	return tt.Intern(s), nil
}

func get[T any](table []T, idx uint32, what string) (T, error) {
	if int64(idx) >= int64(len(table)) {
		var zero T
		return zero, fmt.Errorf("%s index %d out of bounds (%d)", what, idx, len(table))
	}
	return table[idx], nil
}
