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

package syntax

import (
	"strings"

	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/parser/lexer"
)

// ParseText lexes and parses text as the given entry point.
//
// Whitespace and comments are attached to the tree: leading comments of items
// belong to the item they document, and everything else belongs to the
// innermost node open when it appears. Lexer errors are reported alongside
// parser errors.
func ParseText(text string, entry parser.TopEntry, edition parser.Edition) *Parse {
	lexed := lexer.Lex(text, edition)
	output := entry.Parse(lexed.ToInput(), edition)
	return BuildTree(lexed, output)
}

// BuildTree builds a tree out of lexed text and the parser output for it.
func BuildTree(lexed *lexer.Lexed, output *parser.Output) *Parse {
	s := &textSink{lexed: lexed, state: pendingEnter}
	for step := range output.Steps() {
		switch step.Kind {
		case parser.StepToken:
			s.token(step.Node, step.N)
		case parser.StepFloatSplit:
			s.floatSplit(step.EndsInDot)
		case parser.StepEnter:
			s.enter(step.Node)
		case parser.StepExit:
			s.exit()
		case parser.StepError:
			s.b.Error(step.Error, lexed.Start(s.pos))
		}
	}
	s.finish()

	for _, err := range lexed.Errors() {
		s.b.ErrorAt(err.Message, lexed.Range(err.Token))
	}
	return s.b.Finish()
}

type sinkState byte

const (
	pendingEnter sinkState = iota // No node has been entered yet.
	normal
	pendingExit // A node is waiting to be closed; trivia may still go in it.
)

// textSink replays parser steps over a stream of lexed tokens, putting back
// the trivia the parser never saw.
type textSink struct {
	lexed *lexer.Lexed
	b     TreeBuilder
	pos   int
	state sinkState
}

func (s *textSink) flush() {
	switch s.state {
	case pendingEnter:
		panic("tokentree/syntax: parser produced a token outside of any node")
	case pendingExit:
		s.b.FinishNode()
	}
	s.state = normal
}

func (s *textSink) token(kind parser.Kind, n int) {
	s.flush()
	s.eatTrivia()
	s.doToken(kind, n)
}

func (s *textSink) floatSplit(endsInDot bool) {
	s.flush()
	s.eatTrivia()

	text := s.lexed.Text(s.pos)
	s.pos++
	left, right, ok := strings.Cut(text, ".")
	if !ok {
		// A float without a dot, like 1e0, can't be a field name.
		s.b.Error("illegal float literal", s.lexed.Start(s.pos-1))
		s.b.StartNode(parser.Error)
		s.b.Token(parser.FloatNumber, text)
		s.b.FinishNode()
		s.b.FinishNode()
		if !endsInDot {
			s.state = pendingExit
		}
		return
	}

	s.b.StartNode(parser.NameRef)
	s.b.Token(parser.IntNumber, left)
	s.b.FinishNode()
	// This closes the inner field access the parser opened for the split.
	s.b.FinishNode()
	s.b.Token(parser.Dot, ".")

	if !endsInDot {
		s.b.StartNode(parser.NameRef)
		s.b.Token(parser.IntNumber, right)
		s.b.FinishNode()
		s.state = pendingExit
	}
}

func (s *textSink) enter(kind parser.Kind) {
	switch s.state {
	case pendingEnter:
		s.b.StartNode(kind)
		s.state = normal
		return
	case pendingExit:
		s.b.FinishNode()
	}
	s.state = normal

	n := 0
	for n < s.lexed.Len()-s.pos && s.lexed.Kind(s.pos+n).IsTrivia() {
		n++
	}
	attached := attachedTrivia(kind, s.lexed, s.pos, n)
	s.eatN(n - attached)
	s.b.StartNode(kind)
	s.eatN(attached)
}

func (s *textSink) exit() {
	if s.state == pendingExit {
		s.b.FinishNode()
	}
	s.state = pendingExit
}

func (s *textSink) finish() {
	switch s.state {
	case pendingEnter:
		s.b.StartNode(parser.Error)
		for s.pos < s.lexed.Len() {
			s.doToken(s.lexed.Kind(s.pos), 1)
		}
		s.b.FinishNode()
	case pendingExit:
		s.eatTrivia()
		s.b.FinishNode()
	}
	s.state = normal
}

func (s *textSink) eatTrivia() {
	for s.pos < s.lexed.Len() {
		kind := s.lexed.Kind(s.pos)
		if !kind.IsTrivia() {
			return
		}
		s.doToken(kind, 1)
	}
}

func (s *textSink) eatN(n int) {
	for range n {
		s.doToken(s.lexed.Kind(s.pos), 1)
	}
}

func (s *textSink) doToken(kind parser.Kind, n int) {
	text := s.lexed.Source()[s.lexed.Start(s.pos):s.lexed.Start(s.pos+n)]
	s.pos += n
	s.b.Token(kind, text)
}

// attachedTrivia returns how many of the n trivia tokens starting at pos
// should go inside a node of the given kind rather than before it.
//
// Items take the comments directly above them, up to a blank line or an
// inner doc comment. A blank line directly below an outer doc comment does not
// stop the search.
func attachedTrivia(kind parser.Kind, lexed *lexer.Lexed, pos, n int) int {
	switch kind {
	case parser.Const, parser.Enum, parser.Fn, parser.Impl, parser.MacroCall,
		parser.MacroRules, parser.Module, parser.RecordField,
		parser.Static, parser.Struct, parser.Trait, parser.TupleField,
		parser.TypeAlias, parser.Union, parser.Use, parser.Variant, parser.ExternCrate:
	default:
		return 0
	}

	res := 0
	// Walk backwards from the token closest to the node.
	for i := 0; i < n; i++ {
		idx := pos + n - 1 - i
		text := lexed.Text(idx)
		switch lexed.Kind(idx) {
		case parser.Whitespace:
			if !strings.Contains(text, "\n\n") {
				continue
			}
			if i+1 < n && lexed.Kind(idx-1) == parser.Comment && IsOuterDoc(lexed.Text(idx-1)) {
				continue
			}
			return res
		case parser.Comment:
			if IsInnerDoc(text) {
				return res
			}
			res = i + 1
		}
	}
	return res
}

// IsOuterDoc returns whether the text of a comment token is an outer doc
// comment, such as `/// doc`.
func IsOuterDoc(text string) bool {
	if strings.HasPrefix(text, "////") || strings.HasPrefix(text, "/***") {
		return false
	}
	return strings.HasPrefix(text, "///") || strings.HasPrefix(text, "/**")
}

// IsInnerDoc returns whether the text of a comment token is an inner doc
// comment, such as `//! doc`.
func IsInnerDoc(text string) bool {
	return strings.HasPrefix(text, "//!") || strings.HasPrefix(text, "/*!")
}
