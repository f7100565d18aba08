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

package report

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the width tabstops are rendered with.
const TabstopWidth int = 4

// NonPrint returns whether a rune is replaced with <U+NNNN> when printing
// source text.
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// stringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops and escaped unprintable runes.
//
// If out is not nil, the rendered text is written to it.
func stringWidth(column int, text string, out *strings.Builder) int {
	for text != "" {
		next := text
		tab := strings.IndexByte(text, '\t')
		if tab >= 0 {
			next, text = text[:tab], text[tab+1:]
		} else {
			text = ""
		}

		for next != "" {
			chunk, escape := next, ""
			if idx := strings.IndexFunc(next, NonPrint); idx >= 0 {
				r, n := utf8.DecodeRuneInString(next[idx:])
				chunk, next = next[:idx], next[idx+n:]
				escape = fmt.Sprintf("<U+%04X>", r)
			} else {
				next = ""
			}

			column += uniseg.StringWidth(chunk) + len(escape)
			if out != nil {
				out.WriteString(chunk)
				out.WriteString(escape)
			}
		}

		if tab >= 0 {
			n := TabstopWidth - column%TabstopWidth
			column += n
			if out != nil {
				out.WriteString(strings.Repeat(" ", n))
			}
		}
	}
	return column
}
