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

package parser

import "fmt"

// stepLimit bounds the number of lookahead calls the parser may make. A parser
// that exceeds it is not making progress.
const stepLimit = 15_000_000

// parser is the state of an in-progress parse.
//
// Grammar functions are free functions taking a *parser. They record events;
// the tree is assembled afterwards by [process].
type parser struct {
	in      *Input
	pos     int
	events  []event
	steps   int
	edition Edition
}

func newParser(in *Input, edition Edition) *parser {
	return &parser{in: in, edition: edition}
}

func (p *parser) finish() []event {
	return p.events
}

// nth returns the kind of the token n positions ahead. Compound operators are
// not glued here; see [parser.nthAt].
func (p *parser) nth(n int) Kind {
	p.steps++
	if p.steps > stepLimit {
		panic("tokentree/parser: the parser seems stuck")
	}
	return p.in.Kind(p.pos + n)
}

func (p *parser) current() Kind {
	return p.nth(0)
}

// at returns whether the current token is kind, gluing compound operators.
func (p *parser) at(kind Kind) bool {
	return p.nthAt(0, kind)
}

func (p *parser) nthAt(n int, kind Kind) bool {
	switch kind {
	case MinusEq:
		return p.atComposite2(n, Minus, Eq)
	case ThinArrow:
		return p.atComposite2(n, Minus, RAngle)
	case ColonColon:
		return p.atComposite2(n, Colon, Colon)
	case Neq:
		return p.atComposite2(n, Bang, Eq)
	case DotDot:
		return p.atComposite2(n, Dot, Dot)
	case StarEq:
		return p.atComposite2(n, Star, Eq)
	case SlashEq:
		return p.atComposite2(n, Slash, Eq)
	case AmpAmp:
		return p.atComposite2(n, Amp, Amp)
	case AmpEq:
		return p.atComposite2(n, Amp, Eq)
	case PercentEq:
		return p.atComposite2(n, Percent, Eq)
	case CaretEq:
		return p.atComposite2(n, Caret, Eq)
	case PlusEq:
		return p.atComposite2(n, Plus, Eq)
	case Shl:
		return p.atComposite2(n, LAngle, LAngle)
	case LtEq:
		return p.atComposite2(n, LAngle, Eq)
	case EqEq:
		return p.atComposite2(n, Eq, Eq)
	case FatArrow:
		return p.atComposite2(n, Eq, RAngle)
	case GtEq:
		return p.atComposite2(n, RAngle, Eq)
	case Shr:
		return p.atComposite2(n, RAngle, RAngle)
	case PipeEq:
		return p.atComposite2(n, Pipe, Eq)
	case PipePipe:
		return p.atComposite2(n, Pipe, Pipe)
	case DotDotDot:
		return p.atComposite3(n, Dot, Dot, Dot)
	case DotDotEq:
		return p.atComposite3(n, Dot, Dot, Eq)
	case ShlEq:
		return p.atComposite3(n, LAngle, LAngle, Eq)
	case ShrEq:
		return p.atComposite3(n, RAngle, RAngle, Eq)
	default:
		return p.nth(n) == kind
	}
}

func (p *parser) atComposite2(n int, k1, k2 Kind) bool {
	idx := p.pos + n
	return p.nth(n) == k1 && p.nth(n+1) == k2 && p.in.IsJoint(idx)
}

func (p *parser) atComposite3(n int, k1, k2, k3 Kind) bool {
	idx := p.pos + n
	return p.nth(n) == k1 && p.nth(n+1) == k2 && p.nth(n+2) == k3 &&
		p.in.IsJoint(idx) && p.in.IsJoint(idx+1)
}

func (p *parser) atSet(ts tokenSet) bool {
	return ts.contains(p.current())
}

func (p *parser) atContextualKw(kw Kind) bool {
	return p.in.ContextualKind(p.pos) == kw
}

func (p *parser) nthAtContextualKw(n int, kw Kind) bool {
	return p.in.ContextualKind(p.pos+n) == kw
}

// rawLen returns the number of single-character tokens kind is glued from.
func rawLen(kind Kind) int {
	switch kind {
	case DotDotDot, DotDotEq, ShlEq, ShrEq:
		return 3
	case MinusEq, ThinArrow, ColonColon, Neq, DotDot, StarEq, SlashEq,
		AmpAmp, AmpEq, PercentEq, CaretEq, PlusEq, Shl, LtEq, EqEq,
		FatArrow, GtEq, Shr, PipeEq, PipePipe:
		return 2
	default:
		return 1
	}
}

// eat consumes the current token if it is kind.
func (p *parser) eat(kind Kind) bool {
	if !p.at(kind) {
		return false
	}
	p.doBump(kind, rawLen(kind))
	return true
}

// bump consumes the current token, which must be kind.
func (p *parser) bump(kind Kind) {
	if !p.eat(kind) {
		panic(fmt.Sprintf("tokentree/parser: expected %v, got %v", kind, p.current()))
	}
}

// bumpAny consumes the current token, whatever it is.
func (p *parser) bumpAny() {
	kind := p.current()
	if kind == EOF {
		return
	}
	p.doBump(kind, 1)
}

// bumpRemap consumes the current token as a token of a different kind. This
// is how contextual keywords get their keyword kind.
func (p *parser) bumpRemap(kind Kind) {
	if p.current() == EOF {
		return
	}
	p.doBump(kind, 1)
}

func (p *parser) doBump(kind Kind, n int) {
	p.pos += n
	p.events = append(p.events, event{kind: evToken, node: kind, n: n})
}

// splitFloat consumes the float literal at the cursor as a tuple field access.
// m is the marker of the field expression being parsed.
//
// If the float does not end in a dot (the `1.2` in `x.1.2`), the split yields
// two nested field expressions. m is retargeted to the inner one and the
// returned marker is the outer one.
func (p *parser) splitFloat(m marker) (bool, marker) {
	if !p.at(FloatNumber) {
		panic("tokentree/parser: splitFloat called on a non-float")
	}

	endsInDot := !p.in.IsJoint(p.pos)
	if !endsInDot {
		outer := p.start()
		ev := &p.events[m.pos]
		ev.node = FieldExpr
		ev.forwardParent = outer.pos - m.pos
		m = outer
	}

	p.pos++
	p.events = append(p.events, event{kind: evFloatSplit, endsInDot: endsInDot})
	return endsInDot, m
}

func (p *parser) error(msg string) {
	p.events = append(p.events, event{kind: evError, msg: msg})
}

func (p *parser) errorf(format string, args ...any) {
	p.error(fmt.Sprintf(format, args...))
}

// expect consumes kind, or records an error if it is absent.
func (p *parser) expect(kind Kind) bool {
	if p.eat(kind) {
		return true
	}
	p.errorf("expected %v", kind)
	return false
}

// errAndBump records an error and wraps the current token in an ERROR node.
func (p *parser) errAndBump(msg string) {
	p.errRecover(msg, tokenSet{})
}

// errRecover records an error. Unless the current token is a brace or in
// recovery, it is consumed as an ERROR node.
//
// Returns whether the token was left in place.
func (p *parser) errRecover(msg string, recovery tokenSet) bool {
	switch {
	case p.at(LCurly), p.at(RCurly), p.atSet(recovery):
		p.error(msg)
		return true
	}

	m := p.start()
	p.error(msg)
	p.bumpAny()
	m.complete(p, Error)
	return false
}

// start begins a new node. The returned marker must be completed or
// abandoned.
func (p *parser) start() marker {
	pos := uint32(len(p.events)) //nolint:gosec // Event counts are bounded by stepLimit.
	p.events = append(p.events, tombstone())
	return marker{pos: pos}
}

// marker is the start of a node whose kind is not known yet.
type marker struct {
	pos uint32
}

// complete finishes the node started at m.
func (m marker) complete(p *parser, kind Kind) completedMarker {
	p.events[m.pos].node = kind
	p.events = append(p.events, event{kind: evFinish})
	return completedMarker{pos: m.pos, kind: kind}
}

// abandon drops the node started at m. Its children become children of the
// enclosing node.
func (m marker) abandon(p *parser) {
	if int(m.pos) == len(p.events)-1 {
		p.events = p.events[:m.pos]
	}
}

type completedMarker struct {
	pos  uint32
	kind Kind
}

// precede starts a node that will become the parent of a completed one. This
// is how left-recursive constructs such as binary expressions are built.
func (cm completedMarker) precede(p *parser) marker {
	m := p.start()
	p.events[cm.pos].forwardParent = m.pos - cm.pos
	return m
}

// extendTo moves the start of cm back to m, which must be an earlier marker,
// so that everything parsed since m becomes part of cm's node.
func (cm completedMarker) extendTo(p *parser, m marker) completedMarker {
	p.events[m.pos].forwardParent = cm.pos - m.pos
	return cm
}
