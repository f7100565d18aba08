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
)

// String implements [fmt.Stringer], printing this literal as it would appear
// in source.
func (l Literal) String() string {
	var out strings.Builder
	sym := l.Symbol.String()
	hashes := strings.Repeat("#", int(l.Kind.Hashes()))
	switch l.Kind.Base() {
	case LitByte:
		fmt.Fprintf(&out, "b'%s'", sym)
	case LitChar:
		fmt.Fprintf(&out, "'%s'", sym)
	case LitStr:
		fmt.Fprintf(&out, `"%s"`, sym)
	case LitByteStr:
		fmt.Fprintf(&out, `b"%s"`, sym)
	case LitCStr:
		fmt.Fprintf(&out, `c"%s"`, sym)
	case LitStrRaw:
		fmt.Fprintf(&out, `r%s"%s"%s`, hashes, sym, hashes)
	case LitByteStrRaw:
		fmt.Fprintf(&out, `br%s"%s"%s`, hashes, sym, hashes)
	case LitCStrRaw:
		fmt.Fprintf(&out, `cr%s"%s"%s`, hashes, sym, hashes)
	default:
		out.WriteString(sym)
	}
	out.WriteString(l.Suffix.String())
	return out.String()
}

// String implements [fmt.Stringer].
func (p Punct) String() string {
	return string(p.Char)
}

// String implements [fmt.Stringer]. Raw identifiers are printed with their r#
// prefix.
func (i Ident) String() string {
	if i.IsRaw {
		return "r#" + i.Symbol.String()
	}
	return i.Symbol.String()
}

// Pretty prints this view as source text.
//
// Adjacent elements are separated by a single space, except after a [Joint]
// punct. Invisible delimiters print nothing.
func (v View) Pretty() string {
	var out strings.Builder
	prettyTo(&out, v.Iter())
	return out.String()
}

func prettyTo(out *strings.Builder, it *Iter) {
	join := true
	for e := range it.All() {
		if !join {
			out.WriteByte(' ')
		}
		join = false

		sub, children, ok := e.Subtree()
		if !ok {
			leaf, _ := e.Leaf()
			out.WriteString(leaf.String())
			if p, ok := leaf.(Punct); ok && p.Spacing == Joint {
				join = true
			}
			continue
		}

		open, closer := sub.Delimiter.Kind.Chars()
		if open != 0 {
			out.WriteRune(open)
		}
		prettyTo(out, children)
		if closer != 0 {
			out.WriteRune(closer)
		}
	}
}

// Debug returns a dump of this view's structure, one entry per line, with
// nested entries indented.
func (v View) Debug() string {
	var out strings.Builder
	debugTo(&out, 0, v.Iter())
	return strings.TrimSuffix(out.String(), "\n")
}

func debugTo(out *strings.Builder, level int, it *Iter) {
	for e := range it.All() {
		indent := strings.Repeat("  ", level)
		tree := e.Tree()

		switch tree.Kind() {
		case KindSubtree:
			sub, children, _ := e.Subtree()
			fmt.Fprintf(out, "%sSUBTREE %v %v %v\n", indent, sub.Delimiter.Kind, sub.Delimiter.Open, sub.Delimiter.Close)
			debugTo(out, level+1, children)
		case KindLiteral:
			lit, _ := tree.Literal()
			fmt.Fprintf(out, "%sLITERAL %v %v%v %v\n", indent, lit.Kind, lit.Symbol, lit.Suffix, lit.Span)
		case KindPunct:
			p, _ := tree.Punct()
			fmt.Fprintf(out, "%sPUNCT   %c [%v] %v\n", indent, p.Char, p.Spacing, p.Span)
		case KindIdent:
			id, _ := tree.Ident()
			fmt.Fprintf(out, "%sIDENT   %v %v\n", indent, id, id.Span)
		}
	}
}
