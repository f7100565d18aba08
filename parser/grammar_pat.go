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

var (
	patternFirst = literalFirst.union(pathFirst).union(newTokenSet(
		BoxKw, RefKw, MutKw, LParen, LBrack, Amp, Underscore, Minus, Dot,
	))

	patTopFirst = patternFirst.union(newTokenSet(Pipe))

	patRecoverySet = newTokenSet(
		LetKw, IfKw, WhileKw, LoopKw, MatchKw, RParen, RBrack, RCurly, Comma, Eq, Amp,
	)
)

// patternTop parses a pattern that may start with a leading `|`.
func patternTop(p *parser) {
	patternTopR(p, patRecoverySet)
}

func patternTopR(p *parser, recovery tokenSet) {
	p.eat(Pipe)
	patternR(p, recovery)
}

func pattern(p *parser) {
	patternR(p, patRecoverySet)
}

// patternR parses an or-pattern: one or more single patterns separated by `|`.
func patternR(p *parser, recovery tokenSet) {
	m := p.start()
	patternSingleR(p, recovery)
	if !p.at(Pipe) {
		m.abandon(p)
		return
	}
	for p.eat(Pipe) {
		patternSingleR(p, recovery)
	}
	m.complete(p, OrPat)
}

func patternSingle(p *parser) {
	patternSingleR(p, patRecoverySet)
}

var rangeOps = [...]Kind{DotDotDot, DotDotEq, DotDot}

func patternSingleR(p *parser, recovery tokenSet) {
	// Half-open ranges and rest patterns: `..=5`, `..`.
	if p.at(DotDotEq) || p.at(DotDot) {
		m := p.start()
		if p.at(DotDotEq) {
			p.bump(DotDotEq)
			atomPat(p, recovery)
			m.complete(p, RangePat)
			return
		}
		p.bump(DotDot)
		if isLiteralPatStart(p) || isPathStart(p) {
			atomPat(p, recovery)
			m.complete(p, RangePat)
			return
		}
		m.complete(p, RestPat)
		return
	}

	lhs, ok := atomPat(p, recovery)
	if !ok {
		return
	}
	for _, op := range rangeOps {
		if !p.at(op) {
			continue
		}
		m := lhs.precede(p)
		p.bump(op)
		// The end is optional: `0..`.
		switch {
		case p.at(Eq), p.at(Comma), p.at(RParen), p.at(RBrack), p.at(Pipe), p.at(FatArrow), p.at(IfKw), p.at(EOF):
		default:
			atomPat(p, recovery)
		}
		m.complete(p, RangePat)
		return
	}
}

func isLiteralPatStart(p *parser) bool {
	return p.at(Minus) && (p.nth(1) == IntNumber || p.nth(1) == FloatNumber) ||
		p.atSet(literalFirst)
}

func atomPat(p *parser, recovery tokenSet) (completedMarker, bool) {
	switch k := p.current(); {
	case k == BoxKw:
		m := p.start()
		p.bump(BoxKw)
		patternSingle(p)
		return m.complete(p, BoxPat), true
	case k == RefKw, k == MutKw:
		return identPat(p, true), true
	case k == Ident:
		switch p.nth(1) {
		case LParen, LCurly, Bang:
			return pathOrMacroPat(p), true
		case Colon:
			if p.nthAt(1, ColonColon) {
				return pathOrMacroPat(p), true
			}
		}
		return identPat(p, true), true
	case isPathStart(p):
		return pathOrMacroPat(p), true
	case isLiteralPatStart(p):
		m := p.start()
		p.eat(Minus)
		literal(p)
		return m.complete(p, LiteralPat), true
	case k == Underscore:
		m := p.start()
		p.bump(Underscore)
		return m.complete(p, WildcardPat), true
	case k == Amp:
		m := p.start()
		p.bump(Amp)
		p.eat(MutKw)
		patternSingle(p)
		return m.complete(p, RefPat), true
	case k == LParen:
		return tuplePat(p), true
	case k == LBrack:
		m := p.start()
		p.bump(LBrack)
		patList(p, RBrack)
		p.expect(RBrack)
		return m.complete(p, SlicePat), true
	default:
		p.errRecover("expected pattern", recovery)
		return completedMarker{}, false
	}
}

func identPat(p *parser, withAt bool) completedMarker {
	m := p.start()
	p.eat(RefKw)
	p.eat(MutKw)
	name(p)
	if withAt && p.eat(At) {
		patternSingle(p)
	}
	return m.complete(p, IdentPat)
}

func pathOrMacroPat(p *parser) completedMarker {
	m := p.start()
	exprPath(p)
	switch p.current() {
	case LParen:
		p.bump(LParen)
		patList(p, RParen)
		p.expect(RParen)
		return m.complete(p, TupleStructPat)
	case LCurly:
		recordPatFieldList(p)
		return m.complete(p, RecordPat)
	case Bang:
		macroCallAfterBang(p)
		return m.complete(p, MacroCall).precede(p).complete(p, MacroPat)
	default:
		return m.complete(p, PathPat)
	}
}

func patList(p *parser, closer Kind) {
	for !p.at(EOF) && !p.at(closer) {
		patternTop(p)
		if !p.eat(Comma) {
			if !p.atSet(patTopFirst) {
				break
			}
			p.errorf("expected %v, got %v", Comma, p.current())
		}
	}
}

func tuplePat(p *parser) completedMarker {
	m := p.start()
	p.bump(LParen)
	var hasComma, hasPat, hasRest bool
	for !p.at(EOF) && !p.at(RParen) {
		hasPat = true
		if !p.atSet(patTopFirst) {
			p.error("expected a pattern")
			break
		}
		hasRest = hasRest || p.at(DotDot)
		patternTop(p)
		if !p.at(RParen) {
			hasComma = true
			p.expect(Comma)
		}
	}
	p.expect(RParen)

	if hasPat && !hasComma && !hasRest {
		return m.complete(p, ParenPat)
	}
	return m.complete(p, TuplePat)
}

func recordPatFieldList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	for !p.at(EOF) && !p.at(RCurly) {
		f := p.start()
		outerAttrs(p)
		switch {
		case p.at(DotDot):
			p.bump(DotDot)
			f.complete(p, RestPat)
		case p.at(Ident) && p.nth(1) == Colon && !p.nthAt(1, ColonColon):
			nameRef(p)
			p.bump(Colon)
			pattern(p)
			f.complete(p, RecordPatField)
		case p.at(BoxKw), p.at(RefKw), p.at(MutKw), p.at(Ident):
			p.eat(BoxKw)
			identPat(p, false)
			f.complete(p, RecordPatField)
		case p.at(LCurly):
			f.abandon(p)
			errorBlock(p, "expected ident")
		default:
			f.abandon(p)
			p.errAndBump("expected identifier")
		}
		if !p.at(RCurly) {
			p.expect(Comma)
		}
	}
	p.expect(RCurly)
	m.complete(p, RecordPatFieldList)
}
