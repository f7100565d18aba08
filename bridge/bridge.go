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

// Package bridge converts between syntax trees and token trees.
//
// Encoding turns source text, or a parsed syntax tree, into a [tt.TopSubtree]:
// trivia is dropped, doc comments become `doc` attributes, and every
// punctuation character becomes its own leaf with a spacing that remembers
// whether it was glued to the next one. Decoding runs a token tree back
// through the parser, producing a syntax tree together with a [span.Map]
// from the text of that tree to the spans of the tokens it was built from.
package bridge

import (
	"go.uber.org/zap"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/parser/lexer"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
	"github.com/bufbuild/tokentree/tt"
)

// ParseToTokenTree lexes text and converts it into a token tree whose spans
// are relative to anchor, in context ctx.
//
// Returns nil if the lexer reports any error, including unbalanced
// delimiters.
func ParseToTokenTree(edition parser.Edition, anchor span.Anchor, ctx span.SyntaxContext, text string) *tt.TopSubtree {
	lexed := lexer.Lex(text, edition)
	if rejected(lexed) {
		return nil
	}
	return ConvertTokens(NewRawConverter(lexed, anchor, ctx, DesugarProcMacro))
}

// ParseToTokenTreeStaticSpan is like [ParseToTokenTree], but gives every
// token the same span.
func ParseToTokenTreeStaticSpan(edition parser.Edition, sp span.Span, text string) *tt.TopSubtree {
	lexed := lexer.Lex(text, edition)
	if rejected(lexed) {
		return nil
	}
	return ConvertTokens(NewStaticRawConverter(lexed, sp, DesugarProcMacro))
}

func rejected(lexed *lexer.Lexed) bool {
	if !lexed.HasErrors() {
		return false
	}
	errs := lexed.Errors()
	Logger().Debug("rejecting text with lexer errors",
		zap.Int("errors", len(errs)),
		zap.String("first", errs[0].Message),
		zap.Stringer("at", lexed.Range(errs[0].Token)),
	)
	return true
}

// SyntaxNodeToTokenTree converts the tokens of a syntax tree into a token
// tree. Spans come from mapper, and the top-level delimiter gets callSite.
func SyntaxNodeToTokenTree(node *syntax.Node, mapper span.Mapper, callSite span.Span, mode DocCommentDesugarMode) *tt.TopSubtree {
	return ConvertTokens(NewNodeConverter(node, mapper, nil, nil, callSite, mode))
}

// SyntaxNodeToTokenTreeModified is like [SyntaxNodeToTokenTree], but applies
// edits while walking the tree. See [NewNodeConverter].
func SyntaxNodeToTokenTreeModified(
	node *syntax.Node,
	mapper span.Mapper,
	appendLeaves map[syntax.Element][]tt.Leaf,
	remove map[syntax.Element]struct{},
	callSite span.Span,
	mode DocCommentDesugarMode,
) *tt.TopSubtree {
	return ConvertTokens(NewNodeConverter(node, mapper, appendLeaves, remove, callSite, mode))
}
