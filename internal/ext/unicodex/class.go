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

// Package unicodex contains character classes used by the lexer.
package unicodex

import "unicode"

// IsWhitespace returns whether r has the Pattern_White_Space property. These
// are the characters that separate tokens.
func IsWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u0085', // Next line.
		'\u200e', // Left-to-right mark.
		'\u200f', // Right-to-left mark.
		'\u2028', // Line separator.
		'\u2029': // Paragraph separator.
		return true
	default:
		return false
	}
}

// IsIdentStart returns whether r may begin an identifier: an underscore, or a
// rune with the XID_Start property.
func IsIdentStart(r rune) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	if r < 0x80 {
		return false
	}
	return IsXIDStart(r)
}

// IsIdentContinue returns whether r may appear after the first rune of an
// identifier.
func IsIdentContinue(r rune) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	if r < 0x80 {
		return false
	}
	return IsXIDContinue(r)
}

// IsXIDStart returns whether r has the XID_Start property.
func IsXIDStart(r rune) bool {
	return unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_ID_Start) &&
		!unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space)
}

// IsXIDContinue returns whether r has the XID_Continue property.
func IsXIDContinue(r rune) bool {
	return unicode.In(r,
		unicode.Letter,
		unicode.Mn, // Mark, nonspacing.
		unicode.Mc, // Mark, spacing combining.
		unicode.Nl, // Number, letter.
		unicode.Nd, // Number, decimal digit.
		unicode.Pc, // Punctuation, connector.
		unicode.Other_ID_Start,
		unicode.Other_ID_Continue,
	) && !unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space)
}

// IsDigit returns whether r is a digit in the given base, up to base 16.
func IsDigit(r rune, base int) bool {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'f':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		v = int(r-'A') + 10
	default:
		return false
	}
	return v < base
}
