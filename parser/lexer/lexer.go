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

// Package lexer splits source text into tokens.
//
// Punctuation is always lexed one character at a time; the parser glues
// compound operators back together using the joint bits computed by
// [Lexed.ToInput]. Whitespace and comments are kept as tokens so that the
// token stream covers the whole input.
package lexer

import (
	"fmt"
	"slices"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/report"
	"github.com/bufbuild/tokentree/span"
)

// Lexed is the result of lexing some text: a sequence of tokens covering it
// exactly, plus any errors found along the way.
type Lexed struct {
	text    string
	edition parser.Edition

	// Both slices carry one extra entry for the end of input, whose kind is
	// EOF and whose start is len(text).
	kinds  []parser.Kind
	starts []uint32

	errors []Error
}

// Error is a lexing error attached to a token.
type Error struct {
	Token   int
	Message string
}

// Lex lexes text using the rules of edition.
//
// Lexing never fails: ill-formed tokens are still produced, with an error
// attached to them.
func Lex(text string, edition parser.Edition) *Lexed {
	l := &Lexed{text: text, edition: edition}
	span.Offset(len(text)) // Panics if text is too large to be addressed.

	c := cursor{text: text}
	if n := shebangLen(text); n > 0 {
		l.push(parser.Shebang, 0, "")
		c.pos = n
	}

	for {
		start := c.pos
		tok := c.next()
		if tok.kind == rawEOF {
			break
		}
		kind, err := l.classify(tok, text[start:c.pos])
		l.push(kind, start, err)
	}
	l.kinds = append(l.kinds, parser.EOF)
	l.starts = append(l.starts, span.Offset(len(text)))

	l.checkDelimiters()
	return l
}

// SingleToken lexes text as exactly one token, returning its kind and error
// message, if any.
//
// Returns false if text is empty or consists of more than one token.
func SingleToken(text string, edition parser.Edition) (kind parser.Kind, err string, ok bool) {
	if text == "" {
		return parser.EOF, "", false
	}
	c := cursor{text: text}
	tok := c.next()
	if tok.len != len(text) {
		return parser.EOF, "", false
	}
	l := &Lexed{edition: edition}
	kind, err = l.classify(tok, text)
	return kind, err, true
}

func (l *Lexed) push(kind parser.Kind, start int, err string) {
	if err != "" {
		l.errors = append(l.errors, Error{Token: len(l.kinds), Message: err})
	}
	l.kinds = append(l.kinds, kind)
	l.starts = append(l.starts, span.Offset(start))
}

// classify assigns a syntax kind to a raw token, along with an error message
// if it is ill-formed.
func (l *Lexed) classify(tok rawToken, text string) (parser.Kind, string) {
	switch tok.kind {
	case rawLineComment:
		return parser.Comment, ""
	case rawBlockComment:
		if !tok.terminated {
			return parser.Comment, "Missing trailing `*/` symbols to terminate the block comment"
		}
		return parser.Comment, ""
	case rawWhitespace:
		return parser.Whitespace, ""

	case rawIdent:
		if text == "_" {
			return parser.Underscore, ""
		}
		kind, _ := parser.FromKeyword(text, l.edition)
		return kind, ""
	case rawInvalidIdent:
		return parser.Ident, "Ident contains invalid characters"
	case rawRawIdent:
		return parser.Ident, ""
	case rawUnknownPrefix:
		if l.edition >= parser.Edition2021 {
			return parser.Ident, "unknown literal prefix"
		}
		return parser.Ident, ""

	case rawLifetime:
		if tok.startsWithNumber {
			return parser.LifetimeIdent, "Lifetime name cannot start with a number"
		}
		return parser.LifetimeIdent, ""
	case rawRawLifetime:
		return parser.LifetimeIdent, ""
	case rawUnknownPrefixLifetime:
		return parser.LifetimeIdent, "Unknown lifetime prefix"

	case rawLiteral:
		return tok.lit.Kind(), literalError(tok)

	case rawPunct:
		if kind, ok := parser.FromChar(tok.char); ok {
			return kind, ""
		}
		return parser.Error, fmt.Sprintf("unknown start of token: %q", tok.char)
	default:
		return parser.Error, "unknown start of token"
	}
}

func literalError(tok rawToken) string {
	switch tok.lit {
	case LitInt:
		if tok.emptyInt {
			return "Missing digits after the integer base prefix"
		}
	case LitFloat:
		if tok.emptyExp {
			return "Missing digits after the exponent symbol"
		}
	case LitChar:
		if !tok.terminated {
			return "Missing trailing `'` symbol to terminate the character literal"
		}
	case LitByte:
		if !tok.terminated {
			return "Missing trailing `'` symbol to terminate the byte literal"
		}
	case LitStr, LitCStr:
		if !tok.terminated {
			return "Missing trailing `\"` symbol to terminate the string literal"
		}
	case LitByteStr:
		if !tok.terminated {
			return "Missing trailing `\"` symbol to terminate the byte string literal"
		}
	case LitRawStr, LitRawByteStr, LitRawCStr:
		if tok.hashes < 0 {
			return "Invalid raw string literal"
		}
	}
	return ""
}

// checkDelimiters reports unbalanced brackets.
func (l *Lexed) checkDelimiters() {
	var stack []int
	var errs []Error
	for i := range l.Len() {
		switch kind := l.kinds[i]; kind {
		case parser.LParen, parser.LCurly, parser.LBrack:
			stack = append(stack, i)
		case parser.RParen, parser.RCurly, parser.RBrack:
			if len(stack) == 0 {
				errs = append(errs, Error{i, fmt.Sprintf("unexpected closing delimiter: `%s`", kind.Text())})
				continue
			}
			open := l.kinds[stack[len(stack)-1]]
			stack = stack[:len(stack)-1]
			if closer(open) != kind {
				errs = append(errs, Error{i, fmt.Sprintf("mismatched closing delimiter: `%s`", kind.Text())})
			}
		}
	}
	for _, open := range stack {
		errs = append(errs, Error{open, "this file contains an unclosed delimiter"})
	}
	if len(errs) == 0 {
		return
	}

	l.errors = append(l.errors, errs...)
	slices.SortStableFunc(l.errors, func(a, b Error) int { return a.Token - b.Token })
}

func closer(open parser.Kind) parser.Kind {
	switch open {
	case parser.LParen:
		return parser.RParen
	case parser.LCurly:
		return parser.RCurly
	case parser.LBrack:
		return parser.RBrack
	default:
		return parser.EOF
	}
}

// Source returns the text that was lexed.
func (l *Lexed) Source() string {
	return l.text
}

// Edition returns the edition this text was lexed with.
func (l *Lexed) Edition() parser.Edition {
	return l.edition
}

// Len returns the number of tokens, not counting the end of input.
func (l *Lexed) Len() int {
	return len(l.kinds) - 1
}

// Kind returns the kind of the idx-th token. Returns [parser.EOF] if idx is
// out of range.
func (l *Lexed) Kind(idx int) parser.Kind {
	if idx < 0 || idx >= l.Len() {
		return parser.EOF
	}
	return l.kinds[idx]
}

// Range returns the byte range of the idx-th token.
//
// Panics if idx is out of range.
func (l *Lexed) Range(idx int) span.TextRange {
	if idx < 0 || idx >= l.Len() {
		panic(fmt.Sprintf("tokentree/lexer: token index out of range: %d", idx))
	}
	return span.NewRange(l.starts[idx], l.starts[idx+1])
}

// Start returns the offset at which the idx-th token starts. Start(Len())
// is the length of the text.
func (l *Lexed) Start(idx int) uint32 {
	return l.starts[idx]
}

// Text returns the text of the idx-th token.
func (l *Lexed) Text(idx int) string {
	return l.Range(idx).Slice(l.text)
}

// Errors returns every error found, ordered by token.
func (l *Lexed) Errors() []Error {
	return l.errors
}

// HasErrors returns whether any errors were found.
func (l *Lexed) HasErrors() bool {
	return len(l.errors) > 0
}

// Diagnose appends the errors found to r. The spans of the diagnostics refer
// to file, which is expected to contain the lexed text.
func (l *Lexed) Diagnose(file *report.File, r *report.Report) {
	for _, err := range l.errors {
		rng := l.Range(err.Token)
		r.Error(
			report.Message("%s", err.Message),
			report.Snippet(file.Span(int(rng.Start), int(rng.End))),
			report.Tag("lex"),
		)
	}
}
