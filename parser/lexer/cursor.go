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
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/tokentree/internal/ext/unicodex"
)

// eof is returned by the cursor's lookahead functions past the end of the
// input. The input may legitimately contain NUL, so [cursor.isEOF] must be
// checked to tell them apart.
const eof rune = 0

// rawKind is the shape of a raw token, before keywords and errors are
// assigned.
type rawKind byte

const (
	rawEOF rawKind = iota
	rawLineComment
	rawBlockComment
	rawWhitespace
	rawIdent
	rawInvalidIdent
	rawRawIdent
	rawUnknownPrefix
	rawUnknownPrefixLifetime
	rawRawLifetime
	rawLiteral
	rawLifetime
	rawPunct
	rawUnknown
)

// docStyle is the doc style of a comment.
type docStyle byte

const (
	docNone docStyle = iota
	docOuter
	docInner
)

// rawToken is a token of the raw cursor. Only the fields relevant to kind are
// set.
type rawToken struct {
	kind rawKind
	len  int

	// For comments.
	doc docStyle
	// For block comments and literals.
	terminated bool

	// For literals.
	lit         LiteralKind
	base        int
	suffixStart int
	hashes      int  // For raw strings; -1 if invalid.
	emptyInt    bool // 0x with no digits.
	emptyExp    bool // 1e with no digits.

	// For lifetimes.
	startsWithNumber bool

	// For punctuation.
	char rune
}

// cursor is a tokenizer over raw text. It knows nothing about keywords,
// editions, or delimiter balance.
type cursor struct {
	text string
	pos  int
}

// shebangLen returns the length of the shebang line at the start of text, if
// there is one.
//
// `#!` followed by `[` (ignoring whitespace and non-doc comments) is the start
// of an inner attribute, not a shebang.
func shebangLen(text string) int {
	rest, ok := strings.CutPrefix(text, "#!")
	if !ok {
		return 0
	}
	c := cursor{text: rest}
loop:
	for {
		tok := c.next()
		switch tok.kind {
		case rawWhitespace:
		case rawLineComment, rawBlockComment:
			if tok.doc != docNone {
				break loop
			}
		case rawPunct:
			if tok.char == '[' {
				return 0
			}
			break loop
		default:
			break loop
		}
	}
	line, _, _ := strings.Cut(rest, "\n")
	return 2 + len(line)
}

func (c *cursor) isEOF() bool {
	return c.pos >= len(c.text)
}

func (c *cursor) nth(n int) rune {
	rest := c.text[c.pos:]
	for range n {
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
	}
	if rest == "" {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return r
}

func (c *cursor) first() rune  { return c.nth(0) }
func (c *cursor) second() rune { return c.nth(1) }
func (c *cursor) third() rune  { return c.nth(2) }

func (c *cursor) bump() (rune, bool) {
	if c.isEOF() {
		return eof, false
	}
	r, size := utf8.DecodeRuneInString(c.text[c.pos:])
	c.pos += size
	return r, true
}

func (c *cursor) eatWhile(pred func(rune) bool) {
	for !c.isEOF() && pred(c.first()) {
		c.bump()
	}
}

func (c *cursor) eatUntil(b byte) {
	if i := strings.IndexByte(c.text[c.pos:], b); i >= 0 {
		c.pos += i
	} else {
		c.pos = len(c.text)
	}
}

// next lexes one raw token.
func (c *cursor) next() rawToken {
	start := c.pos
	r, ok := c.bump()
	if !ok {
		return rawToken{kind: rawEOF}
	}

	var tok rawToken
	switch {
	case r == '/' && c.first() == '/':
		tok = c.lineComment()
	case r == '/' && c.first() == '*':
		tok = c.blockComment()
	case unicodex.IsWhitespace(r):
		c.eatWhile(unicodex.IsWhitespace)
		tok = rawToken{kind: rawWhitespace}
	case r == 'r' && c.first() == '#' && unicodex.IsIdentStart(c.second()):
		c.bump()
		c.eatIdentContinue()
		tok = rawToken{kind: rawRawIdent}
	case r == 'r' && (c.first() == '#' || c.first() == '"'):
		tok = c.rawLiteral(LitRawStr, start, 1)
	case r == 'b':
		tok = c.prefixedLiteral(start, LitByte, LitByteStr, LitRawByteStr)
	case r == 'c':
		tok = c.prefixedLiteral(start, 0, LitCStr, LitRawCStr)
	case unicodex.IsIdentStart(r):
		tok = c.identOrUnknownPrefix()
	case r >= '0' && r <= '9':
		tok = c.number(r)
		tok.suffixStart = c.pos - start
		c.eatSuffix()
	case r == '\'':
		tok = c.lifetimeOrChar(start)
	case r == '"':
		tok = rawToken{kind: rawLiteral, lit: LitStr, terminated: c.doubleQuoted()}
		tok.suffixStart = c.pos - start
		if tok.terminated {
			c.eatSuffix()
		}
	case strings.ContainsRune(";,.(){}[]@#~?:$=!<>-&|+*/^%", r):
		tok = rawToken{kind: rawPunct, char: r}
	case r >= utf8.RuneSelf && !unicodex.IsIdentContinue(r) && isEmoji(r):
		tok = c.invalidIdent()
	default:
		tok = rawToken{kind: rawUnknown}
	}
	tok.len = c.pos - start
	return tok
}

func (c *cursor) lineComment() rawToken {
	c.bump() // Second slash.
	doc := docNone
	switch {
	case c.first() == '!':
		doc = docInner
	case c.first() == '/' && c.second() != '/':
		doc = docOuter
	}
	c.eatUntil('\n')
	return rawToken{kind: rawLineComment, doc: doc}
}

func (c *cursor) blockComment() rawToken {
	c.bump() // Star.
	doc := docNone
	switch f, s := c.first(), c.second(); {
	case f == '!':
		doc = docInner
	case f == '*' && s != '*' && s != '/':
		doc = docOuter
	}

	depth := 1
	for depth > 0 {
		r, ok := c.bump()
		if !ok {
			break
		}
		switch {
		case r == '/' && c.first() == '*':
			c.bump()
			depth++
		case r == '*' && c.first() == '/':
			c.bump()
			depth--
		}
	}
	return rawToken{kind: rawBlockComment, doc: doc, terminated: depth == 0}
}

func (c *cursor) eatIdentContinue() {
	c.eatWhile(unicodex.IsIdentContinue)
}

// eatSuffix consumes a literal suffix, which is an identifier.
func (c *cursor) eatSuffix() {
	if !unicodex.IsIdentStart(c.first()) {
		return
	}
	c.bump()
	c.eatIdentContinue()
}

func (c *cursor) identOrUnknownPrefix() rawToken {
	c.eatIdentContinue()
	switch r := c.first(); {
	case r == '#' || r == '"' || r == '\'':
		return rawToken{kind: rawUnknownPrefix}
	case r >= utf8.RuneSelf && isEmoji(r):
		return c.invalidIdent()
	default:
		return rawToken{kind: rawIdent}
	}
}

func (c *cursor) invalidIdent() rawToken {
	c.eatWhile(func(r rune) bool {
		return unicodex.IsIdentContinue(r) || (r >= utf8.RuneSelf && isEmoji(r)) || r == '\u200d'
	})
	return rawToken{kind: rawInvalidIdent}
}

// prefixedLiteral lexes after a b or c prefix. single is zero if the prefix
// does not admit a quoted character.
func (c *cursor) prefixedLiteral(start int, single, str, raw LiteralKind) rawToken {
	switch f, s := c.first(), c.second(); {
	case f == '\'' && single != 0:
		c.bump()
		tok := rawToken{kind: rawLiteral, lit: single, terminated: c.singleQuoted()}
		tok.suffixStart = c.pos - start
		if tok.terminated {
			c.eatSuffix()
		}
		return tok
	case f == '"':
		c.bump()
		tok := rawToken{kind: rawLiteral, lit: str, terminated: c.doubleQuoted()}
		tok.suffixStart = c.pos - start
		if tok.terminated {
			c.eatSuffix()
		}
		return tok
	case f == 'r' && (s == '"' || s == '#'):
		c.bump()
		return c.rawLiteral(raw, start, 2)
	default:
		return c.identOrUnknownPrefix()
	}
}

// rawLiteral lexes a raw string after its prefix: hashes, a quote, the
// contents, a quote, and hashes again.
func (c *cursor) rawLiteral(kind LiteralKind, start, prefix int) rawToken {
	tok := rawToken{kind: rawLiteral, lit: kind, hashes: c.rawString(start + prefix)}
	tok.terminated = tok.hashes >= 0
	tok.suffixStart = c.pos - start
	if tok.terminated {
		c.eatSuffix()
	}
	return tok
}

// rawString returns the number of hashes, or -1 if the string is ill-formed.
func (c *cursor) rawString(start int) int {
	c.eatWhile(func(r rune) bool { return r == '#' })
	hashes := c.pos - start
	if r, _ := c.bump(); r != '"' {
		return -1
	}
	for {
		c.eatUntil('"')
		if c.isEOF() {
			return -1
		}
		c.bump()
		closing := 0
		for closing < hashes && c.first() == '#' {
			c.bump()
			closing++
		}
		if closing == hashes {
			break
		}
	}
	if hashes > 255 {
		return -1
	}
	return hashes
}

// singleQuoted lexes the rest of a character literal, returning whether it
// is terminated.
func (c *cursor) singleQuoted() bool {
	if c.second() == '\'' && c.first() != '\\' {
		c.bump()
		c.bump()
		return true
	}
	for {
		switch c.first() {
		case '\'':
			c.bump()
			return true
		case '/':
			return false // Likely the start of a comment.
		case '\n':
			if c.second() != '\'' {
				return false
			}
			c.bump()
		case '\\':
			c.bump()
			c.bump()
		default:
			if c.isEOF() {
				return false
			}
			c.bump()
		}
	}
}

// doubleQuoted lexes the rest of a string, returning whether it is
// terminated.
func (c *cursor) doubleQuoted() bool {
	for {
		r, ok := c.bump()
		if !ok {
			return false
		}
		switch {
		case r == '"':
			return true
		case r == '\\' && (c.first() == '\\' || c.first() == '"'):
			c.bump()
		}
	}
}

func (c *cursor) lifetimeOrChar(start int) rawToken {
	canBeLifetime := c.second() != '\'' &&
		(unicodex.IsIdentStart(c.first()) || (c.first() >= '0' && c.first() <= '9'))

	if !canBeLifetime {
		tok := rawToken{kind: rawLiteral, lit: LitChar, terminated: c.singleQuoted()}
		tok.suffixStart = c.pos - start
		if tok.terminated {
			c.eatSuffix()
		}
		return tok
	}

	if c.first() == 'r' && c.second() == '#' && unicodex.IsIdentStart(c.third()) {
		c.bump()
		c.bump()
		c.bump()
		c.eatIdentContinue()
		return rawToken{kind: rawRawLifetime}
	}

	number := c.first() >= '0' && c.first() <= '9'
	c.bump()
	c.eatIdentContinue()

	switch c.first() {
	case '\'':
		// Something like 'abc': a character literal with too many characters.
		c.bump()
		tok := rawToken{kind: rawLiteral, lit: LitChar, terminated: true}
		tok.suffixStart = c.pos - start
		c.eatSuffix()
		return tok
	case '#':
		if !number {
			return rawToken{kind: rawUnknownPrefixLifetime}
		}
	}
	return rawToken{kind: rawLifetime, startsWithNumber: number}
}

func (c *cursor) number(first rune) rawToken {
	tok := rawToken{kind: rawLiteral, lit: LitInt, base: 10, terminated: true}
	if first == '0' {
		switch c.first() {
		case 'b', 'o', 'x':
			// Binary and octal literals accept any decimal digit here, so
			// that out-of-range digits are diagnosed later as one token.
			digits := 10
			switch c.first() {
			case 'b':
				tok.base = 2
			case 'o':
				tok.base = 8
			case 'x':
				tok.base, digits = 16, 16
			}
			c.bump()
			if !c.eatDigits(digits) {
				tok.emptyInt = true
				return tok
			}
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '_':
			c.eatDigits(10)
		case '.', 'e', 'E':
		default:
			return tok
		}
	} else {
		c.eatDigits(10)
	}

	switch c.first() {
	case '.':
		if s := c.second(); s == '.' || unicodex.IsIdentStart(s) {
			return tok
		}
		c.bump()
		tok.lit = LitFloat
		if r := c.first(); r >= '0' && r <= '9' {
			c.eatDigits(10)
			if r := c.first(); r == 'e' || r == 'E' {
				c.bump()
				tok.emptyExp = !c.eatExponent()
			}
		}
	case 'e', 'E':
		c.bump()
		tok.lit = LitFloat
		tok.emptyExp = !c.eatExponent()
	}
	return tok
}

// eatDigits consumes digits and underscores, returning whether any digits
// were seen.
func (c *cursor) eatDigits(base int) bool {
	digits := false
	for {
		r := c.first()
		switch {
		case r == '_':
		case unicodex.IsDigit(r, base):
			digits = true
		default:
			return digits
		}
		c.bump()
	}
}

func (c *cursor) eatExponent() bool {
	if r := c.first(); r == '-' || r == '+' {
		c.bump()
	}
	return c.eatDigits(10)
}

// isEmoji is an approximation of the Emoji property, covering the
// pictographic blocks.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1f000 && r <= 0x1faff,
		r >= 0x2600 && r <= 0x27bf,
		r >= 0x2b00 && r <= 0x2bff,
		r == 0x00a9, r == 0x00ae, r == 0x203c, r == 0x2049, r == 0x2122:
		return true
	default:
		return false
	}
}
