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
	"strings"

	"go.uber.org/zap"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/syntax"
	"github.com/bufbuild/tokentree/tt"
)

// DecodeOptions configures [TokenTreeToSyntaxNode].
type DecodeOptions struct {
	// Decides whether the spans of input tokens glued into one syntax token
	// may be merged. If nil, [span.SameContext] is used.
	SameContext span.ContextEq

	// Returns the edition used to recognize keywords in identifiers from a
	// given syntax context. If nil, every identifier uses the edition passed
	// to TokenTreeToSyntaxNode.
	SpanEdition func(span.SyntaxContext) parser.Edition
}

// TokenTreeToSyntaxNode parses a token tree as the given entry point.
//
// The text of the resulting tree is rebuilt from the tokens, with a space
// after any [tt.Alone] punctuation that is followed by more punctuation; the
// returned map records, for each piece of that text, the span it came from.
// A top-level invisible delimiter is not part of the parsed input.
//
// Every `'` punctuation character in top must be followed by an identifier,
// as the encoder produces for lifetimes; otherwise this function panics.
func TokenTreeToSyntaxNode(top *tt.TopSubtree, entry parser.TopEntry, edition parser.Edition, opts DecodeOptions) (*syntax.Parse, *span.Map) {
	view := top.View().StripInvisible()

	editionOf := opts.SpanEdition
	if editionOf == nil {
		editionOf = func(span.SyntaxContext) parser.Edition { return edition }
	}
	output := entry.Parse(toParserInput(view, editionOf), edition)

	sink := &treeSink{cursor: newCursor(view), eq: opts.SameContext}
	for step := range output.Steps() {
		switch step.Kind {
		case parser.StepToken:
			sink.token(step.Node, step.N)
		case parser.StepFloatSplit:
			sink.floatSplit(step.EndsInDot)
		case parser.StepEnter:
			sink.b.StartNode(step.Node)
		case parser.StepExit:
			sink.b.FinishNode()
		case parser.StepError:
			sink.b.Error(step.Error, sink.textPos)
		}
	}

	parse := sink.b.Finish()
	if !parse.Ok() {
		Logger().Debug("token tree did not parse cleanly",
			zap.Stringer("entry", entry),
			zap.Int("errors", len(parse.Errors())),
			zap.String("first", parse.Errors()[0].Message),
		)
	}
	return parse, &sink.spans
}

// treeSink replays parser steps over the entries of a token tree, rebuilding
// source text and recording where each piece of it came from.
type treeSink struct {
	cursor  *cursor
	b       syntax.TreeBuilder
	buf     strings.Builder
	textPos uint32
	spans   span.Map
	eq      span.ContextEq

	merged    span.Span
	hasMerged bool
}

func (s *treeSink) token(kind parser.Kind, n int) {
	if kind == parser.LifetimeIdent {
		// A lifetime is a quote and an identifier.
		n = 2
	}

	// The last input token consumed, for deciding on spacing.
	last, lastEnd := -1, 0
	for range n {
		if s.cursor.eof() {
			break
		}
		last, lastEnd = -1, s.cursor.end()
		if _, closing := s.cursor.closing(); !closing {
			last = s.cursor.pos
		}
		s.consumeOne()
	}

	if !s.hasMerged {
		panic(fmt.Sprintf("tokentree/bridge: parser produced a %v token past the end of input", kind))
	}
	s.spans.Push(s.textPos, s.merged)
	s.b.Token(kind, s.buf.String())
	s.buf.Reset()
	s.hasMerged = false

	if last < 0 || last+1 >= lastEnd {
		return
	}
	curr, ok := s.cursor.trees[last].Punct()
	if !ok {
		return
	}
	next, ok := s.cursor.trees[last+1].Punct()
	if !ok {
		return
	}
	// Semicolons always end a statement, and a quote starts a lifetime, so
	// neither needs separating.
	if curr.Spacing == tt.Alone && curr.Char != ';' && next.Char != '\'' {
		s.b.Token(parser.Whitespace, " ")
		s.textPos++
		s.spans.Push(s.textPos, curr.Span)
	}
}

// consumeOne appends the text of the next input token to the buffer,
// skipping invisible delimiters.
func (s *treeSink) consumeOne() {
	for !s.cursor.eof() {
		if sub, ok := s.cursor.closing(); ok {
			s.cursor.bump()
			if sub.Delimiter.Kind == tt.Invisible {
				continue
			}
			_, c := sub.Delimiter.Kind.Chars()
			s.write(string(c), sub.Delimiter.Close)
			return
		}

		tree, _ := s.cursor.tree()
		s.cursor.bump()
		switch tree.Kind() {
		case tt.KindSubtree:
			sub, _ := tree.Subtree()
			if sub.Delimiter.Kind == tt.Invisible {
				continue
			}
			c, _ := sub.Delimiter.Kind.Chars()
			s.write(string(c), sub.Delimiter.Open)
		case tt.KindIdent:
			ident, _ := tree.Ident()
			s.write(ident.String(), ident.Span)
		case tt.KindPunct:
			punct, _ := tree.Punct()
			s.write(string(punct.Char), punct.Span)
		case tt.KindLiteral:
			lit, _ := tree.Literal()
			s.write(lit.String(), lit.Span)
		}
		return
	}
}

func (s *treeSink) write(text string, sp span.Span) {
	s.buf.WriteString(text)
	s.textPos += span.Offset(len(text))
	if s.hasMerged {
		s.merged = span.Merge(s.merged, sp, s.eq)
	} else {
		s.merged, s.hasMerged = sp, true
	}
}

// floatSplit turns a float literal like `1.2` used as a tuple field into two
// field names joined by a dot.
//
// The parser opened the outer field access before the inner one; the inner
// one is closed here, and so is the outer one unless the float ends in a
// dot.
func (s *treeSink) floatSplit(endsInDot bool) {
	tree, _ := s.cursor.tree()
	lit, ok := tree.Literal()
	if !ok || lit.Kind != tt.LitFloat {
		panic(fmt.Sprintf("tokentree/bridge: float split on a %v entry", tree.Kind()))
	}
	s.cursor.bump()

	text := lit.Symbol.String()
	start := s.textPos
	s.textPos += span.Offset(len(text))

	left, right, ok := strings.Cut(text, ".")
	if !ok {
		// Floats like 1e9 have no dot to split at.
		s.b.Error("illegal float literal", start)
		s.b.StartNode(parser.Error)
		s.b.Token(parser.FloatNumber, text)
		s.spans.Push(s.textPos, lit.Span)
		s.b.FinishNode()
		s.b.FinishNode()
		if !endsInDot {
			s.b.FinishNode()
		}
		return
	}

	s.b.StartNode(parser.NameRef)
	s.b.Token(parser.IntNumber, left)
	s.b.FinishNode()
	s.spans.Push(start+span.Offset(len(left)), lit.Span)
	s.b.FinishNode()

	s.b.Token(parser.Dot, ".")
	s.spans.Push(start+span.Offset(len(left)+1), lit.Span)

	if !endsInDot {
		s.b.StartNode(parser.NameRef)
		s.b.Token(parser.IntNumber, right)
		s.spans.Push(s.textPos, lit.Span)
		s.b.FinishNode()
		s.b.FinishNode()
	}
}

// ParseExprsWithSep splits the contents of a token tree at every top-level
// sep punctuation character and parses each piece as an expression.
//
// A trailing separator does not produce an empty expression.
func ParseExprsWithSep(top *tt.TopSubtree, sep rune, edition parser.Edition) []*syntax.Node {
	view := top.TokenTrees()
	if view.IsEmpty() {
		return nil
	}

	var chunks []tt.View
	for chunk := range view.Split(func(e tt.Element) bool {
		p, ok := e.Punct()
		return ok && p.Char == sep
	}) {
		chunks = append(chunks, chunk)
	}
	if n := len(chunks); n > 1 && chunks[n-1].IsEmpty() {
		chunks = chunks[:n-1]
	}

	exprs := make([]*syntax.Node, 0, len(chunks))
	for _, chunk := range chunks {
		sub := tt.FromTokenTrees(tt.InvisibleDelimiter(top.Delimiter().Open), chunk)
		parse, _ := TokenTreeToSyntaxNode(sub, parser.EntryExpr, edition, DecodeOptions{})
		exprs = append(exprs, parse.Root())
	}
	return exprs
}
