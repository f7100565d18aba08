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

package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the protobuf encoding of a [Tree]. These must never
// change; add new fields with new numbers and bump [Version] if the meaning
// of an existing field changes.
//
//	message Tree {
//	  uint32 version = 1;
//	  repeated Span spans = 2;
//	  repeated string text = 3;
//	  repeated Subtree subtrees = 4;
//	  repeated Literal literals = 5;
//	  repeated Punct puncts = 6;
//	  repeated Ident idents = 7;
//	  repeated uint32 tokens = 8 [packed = true];
//	}
//	message Span { uint32 start = 1; uint32 end = 2; uint32 file = 3; uint32 ast = 4; uint32 ctx = 5; }
//	message Subtree { uint32 open = 1; uint32 close = 2; uint32 kind = 3; uint32 len = 4; }
//	message Literal { uint32 span = 1; uint32 text = 2; uint32 kind = 3; uint32 suffix = 4; }
//	message Punct { uint32 span = 1; uint32 char = 2; uint32 spacing = 3; }
//	message Ident { uint32 span = 1; uint32 text = 2; bool is_raw = 3; }
const (
	fieldVersion  protowire.Number = 1
	fieldSpans    protowire.Number = 2
	fieldText     protowire.Number = 3
	fieldSubtrees protowire.Number = 4
	fieldLiterals protowire.Number = 5
	fieldPuncts   protowire.Number = 6
	fieldIdents   protowire.Number = 7
	fieldTokens   protowire.Number = 8
)

// MarshalProto encodes t in protobuf wire format.
func MarshalProto(t *Tree) []byte {
	var b []byte
	b = appendUint(b, fieldVersion, t.Version)
	for _, s := range t.Spans {
		b = appendMessage(b, fieldSpans, func(b []byte) []byte {
			b = appendUint(b, 1, s.Start)
			b = appendUint(b, 2, s.End)
			b = appendUint(b, 3, s.File)
			b = appendUint(b, 4, s.Ast)
			return appendUint(b, 5, s.Ctx)
		})
	}
	for _, s := range t.Text {
		b = protowire.AppendTag(b, fieldText, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	for _, s := range t.Subtrees {
		b = appendMessage(b, fieldSubtrees, func(b []byte) []byte {
			b = appendUint(b, 1, s.Open)
			b = appendUint(b, 2, s.Close)
			b = appendUint(b, 3, s.Kind)
			return appendUint(b, 4, s.Len)
		})
	}
	for _, l := range t.Literals {
		b = appendMessage(b, fieldLiterals, func(b []byte) []byte {
			b = appendUint(b, 1, l.Span)
			b = appendUint(b, 2, l.Text)
			b = appendUint(b, 3, l.Kind)
			return appendUint(b, 4, l.Suffix)
		})
	}
	for _, p := range t.Puncts {
		b = appendMessage(b, fieldPuncts, func(b []byte) []byte {
			b = appendUint(b, 1, p.Span)
			b = appendUint(b, 2, p.Char)
			return appendUint(b, 3, p.Spacing)
		})
	}
	for _, id := range t.Idents {
		b = appendMessage(b, fieldIdents, func(b []byte) []byte {
			b = appendUint(b, 1, id.Span)
			b = appendUint(b, 2, id.Text)
			if id.IsRaw {
				b = protowire.AppendTag(b, 3, protowire.VarintType)
				b = protowire.AppendVarint(b, protowire.EncodeBool(true))
			}
			return b
		})
	}
	if len(t.Tokens) > 0 {
		var packed []byte
		for _, tok := range t.Tokens {
			packed = protowire.AppendVarint(packed, uint64(tok))
		}
		b = protowire.AppendTag(b, fieldTokens, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

// UnmarshalProto decodes a [Tree] from protobuf wire format. Unknown fields
// are skipped.
func UnmarshalProto(data []byte) (*Tree, error) {
	t := new(Tree)
	err := eachField(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			return consumeUint(data, &t.Version)

		case num == fieldText && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			t.Text = append(t.Text, v)
			return n, protowire.ParseError(n)

		case num == fieldTokens && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			for len(packed) > 0 {
				var tok uint32
				m, err := consumeUint(packed, &tok)
				if err != nil {
					return 0, err
				}
				t.Tokens = append(t.Tokens, tok)
				packed = packed[m:]
			}
			return n, nil

		case num == fieldTokens && typ == protowire.VarintType:
			var tok uint32
			n, err := consumeUint(data, &tok)
			t.Tokens = append(t.Tokens, tok)
			return n, err

		case num == fieldSpans && typ == protowire.BytesType:
			var s Span
			n, err := consumeMessage(data, s.fields())
			t.Spans = append(t.Spans, s)
			return n, err

		case num == fieldSubtrees && typ == protowire.BytesType:
			var s Subtree
			n, err := consumeMessage(data, map[protowire.Number]*uint32{
				1: &s.Open, 2: &s.Close, 3: &s.Kind, 4: &s.Len,
			})
			t.Subtrees = append(t.Subtrees, s)
			return n, err

		case num == fieldLiterals && typ == protowire.BytesType:
			var l Literal
			n, err := consumeMessage(data, map[protowire.Number]*uint32{
				1: &l.Span, 2: &l.Text, 3: &l.Kind, 4: &l.Suffix,
			})
			t.Literals = append(t.Literals, l)
			return n, err

		case num == fieldPuncts && typ == protowire.BytesType:
			var p Punct
			n, err := consumeMessage(data, map[protowire.Number]*uint32{
				1: &p.Span, 2: &p.Char, 3: &p.Spacing,
			})
			t.Puncts = append(t.Puncts, p)
			return n, err

		case num == fieldIdents && typ == protowire.BytesType:
			var id Ident
			var raw uint32
			n, err := consumeMessage(data, map[protowire.Number]*uint32{
				1: &id.Span, 2: &id.Text, 3: &raw,
			})
			id.IsRaw = raw != 0
			t.Idents = append(t.Idents, id)
			return n, err
		}

		n := protowire.ConsumeFieldValue(num, typ, data)
		return n, protowire.ParseError(n)
	})
	if err != nil {
		return nil, fmt.Errorf("tokentree/wire: %w", err)
	}
	return t, nil
}

func (s *Span) fields() map[protowire.Number]*uint32 {
	return map[protowire.Number]*uint32{
		1: &s.Start, 2: &s.End, 3: &s.File, 4: &s.Ast, 5: &s.Ctx,
	}
}

func appendUint(b []byte, num protowire.Number, v uint32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, body func([]byte) []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, body(nil))
}

// eachField calls f with the contents of every field in data. f returns how
// many bytes of the field value it consumed.
func eachField(data []byte, f func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		m, err := f(num, typ, data)
		if err != nil {
			return err
		}
		data = data[m:]
	}
	return nil
}

// consumeMessage decodes a length-prefixed message whose fields are all
// varints into fields. Fields not in the map are skipped.
func consumeMessage(data []byte, fields map[protowire.Number]*uint32) (int, error) {
	body, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return n, protowire.ParseError(n)
	}
	err := eachField(body, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if field, ok := fields[num]; ok && typ == protowire.VarintType {
			return consumeUint(data, field)
		}
		m := protowire.ConsumeFieldValue(num, typ, data)
		return m, protowire.ParseError(m)
	})
	return n, err
}

func consumeUint(data []byte, out *uint32) (int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return n, protowire.ParseError(n)
	}
	if v > uint64(^uint32(0)) {
		return n, errors.New("varint overflows uint32")
	}
	*out = uint32(v)
	return n, nil
}
