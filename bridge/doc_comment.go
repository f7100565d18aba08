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

package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

// DocCommentDesugarMode is how doc comments are turned into `doc`
// attributes.
type DocCommentDesugarMode byte

const (
	// DesugarMbe produces a raw string literal with enough hashes to enclose
	// the comment text unchanged.
	DesugarMbe DocCommentDesugarMode = iota
	// DesugarProcMacro produces an ordinary string literal, with the comment
	// text escaped.
	DesugarProcMacro
)

// String implements [fmt.Stringer].
func (m DocCommentDesugarMode) String() string {
	switch m {
	case DesugarMbe:
		return "mbe"
	case DesugarProcMacro:
		return "proc-macro"
	default:
		return fmt.Sprintf("bridge.DocCommentDesugarMode(%d)", int(m))
	}
}

// ParseDocCommentDesugarMode parses the name of a mode, as returned by
// [DocCommentDesugarMode.String].
func ParseDocCommentDesugarMode(s string) (DocCommentDesugarMode, error) {
	switch s {
	case "mbe":
		return DesugarMbe, nil
	case "proc-macro":
		return DesugarProcMacro, nil
	default:
		return 0, fmt.Errorf("unknown doc comment mode %q", s)
	}
}

// DesugarDocCommentText converts the text of a doc comment, with its comment
// markers removed, into the symbol and kind of the literal in the equivalent
// `doc` attribute.
func DesugarDocCommentText(text string, mode DocCommentDesugarMode) (tt.Symbol, tt.LitKind) {
	if mode == DesugarProcMacro {
		return tt.Intern(escapeDebug(text)), tt.LitStr
	}

	// The literal needs one more hash than the longest run of hashes that
	// follows a quote in the text.
	var hashes, run int
	for _, r := range text {
		switch {
		case r == '"':
			run = 1
		case r == '#' && run > 0:
			run++
		default:
			run = 0
		}
		hashes = max(hashes, run)
	}
	return tt.Intern(text), tt.Raw(tt.LitStrRaw, hashCount(hashes))
}

// escapeDebug escapes text for use inside a string literal. Printable
// characters other than quotes and backslashes are kept as they are.
func escapeDebug(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if strconv.IsPrint(r) {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(&b, `\u{%x}`, r)
			}
		}
	}
	return b.String()
}

// docComment describes the parts of a doc comment token.
type docComment struct {
	inner bool
	body  string
}

// parseDocComment splits a comment token into its marker and body. Returns
// false for comments that are not doc comments.
func parseDocComment(text string) (docComment, bool) {
	switch {
	case strings.HasPrefix(text, "/**/"), strings.HasPrefix(text, "/***"),
		strings.HasPrefix(text, "////"):
		return docComment{}, false
	case strings.HasPrefix(text, "///"):
		return docComment{body: text[3:]}, true
	case strings.HasPrefix(text, "//!"):
		return docComment{inner: true, body: text[3:]}, true
	case strings.HasPrefix(text, "/**"):
		return docComment{body: strings.TrimSuffix(text[3:], "*/")}, true
	case strings.HasPrefix(text, "/*!"):
		return docComment{inner: true, body: strings.TrimSuffix(text[3:], "*/")}, true
	default:
		return docComment{}, false
	}
}

// convertDocComment appends the attribute equivalent to a doc comment, such
// as `#[doc = " text"]`, to b. Every token gets the span of the comment.
//
// Comments that are not doc comments are ignored.
func convertDocComment(text string, sp span.Span, mode DocCommentDesugarMode, b *tt.Builder) {
	doc, ok := parseDocComment(text)
	if !ok {
		return
	}

	symbol, kind := DesugarDocCommentText(doc.body, mode)
	b.Push(tt.Punct{Char: '#', Spacing: tt.Alone, Span: sp})
	if doc.inner {
		b.Push(tt.Punct{Char: '!', Spacing: tt.Alone, Span: sp})
	}
	b.Open(tt.Bracket, sp)
	b.Extend(
		tt.Ident{Symbol: tt.Intern("doc"), Span: sp},
		tt.Punct{Char: '=', Spacing: tt.Alone, Span: sp},
		tt.Literal{Symbol: symbol, Span: sp, Kind: kind},
	)
	b.Close(sp)
}
