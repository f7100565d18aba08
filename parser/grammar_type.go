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
	typeFirst = pathFirst.union(newTokenSet(
		LParen, LBrack, LAngle, Bang, Star, Amp, Underscore, FnKw, UnsafeKw,
		ExternKw, ForKw, ImplKw, DynKw, SelfTypeKw, LifetimeIdent,
	))

	typeRecoverySet = newTokenSet(RParen, RAngle, Comma, PubKw)
)

func parseType(p *parser) {
	typeWithBounds(p, true)
}

func parseTypeNoBounds(p *parser) {
	typeWithBounds(p, false)
}

func typeWithBounds(p *parser, allowBounds bool) {
	switch p.current() {
	case LParen:
		parenOrTupleType(p)
	case Bang:
		m := p.start()
		p.bump(Bang)
		m.complete(p, NeverType)
	case Star:
		ptrType(p)
	case LBrack:
		arrayOrSliceType(p)
	case Amp:
		refType(p)
	case Underscore:
		m := p.start()
		p.bump(Underscore)
		m.complete(p, InferType)
	case FnKw, UnsafeKw, ExternKw:
		fnPtrType(p)
	case ImplKw:
		m := p.start()
		p.bump(ImplKw)
		boundsWithoutColon(p)
		m.complete(p, ImplTraitType)
	case DynKw:
		m := p.start()
		p.bump(DynKw)
		boundsWithoutColon(p)
		m.complete(p, DynTraitType)
	default:
		switch {
		case p.atContextualKw(DynKw) && p.edition < Edition2018 && (pathFirst.contains(p.nth(1)) || p.nth(1) == LifetimeIdent):
			// In 2015, `dyn` is only a keyword in type position.
			m := p.start()
			p.bumpRemap(DynKw)
			boundsWithoutColon(p)
			m.complete(p, DynTraitType)
		case isPathStart(p):
			pathOrMacroType(p, allowBounds)
		case p.at(LifetimeIdent) && p.nthAt(1, Plus):
			m := p.start()
			boundsWithoutColon(p)
			m.complete(p, DynTraitType)
		default:
			p.errRecover("expected type", typeRecoverySet)
		}
	}
}

func parenOrTupleType(p *parser) {
	m := p.start()
	p.bump(LParen)
	var n int
	var trailingComma bool
	for !p.at(EOF) && !p.at(RParen) {
		n++
		parseType(p)
		if p.eat(Comma) {
			trailingComma = true
		} else {
			trailingComma = false
			break
		}
	}
	p.expect(RParen)

	if n == 1 && !trailingComma {
		m.complete(p, ParenType)
	} else {
		m.complete(p, TupleType)
	}
}

func ptrType(p *parser) {
	m := p.start()
	p.bump(Star)
	switch p.current() {
	case MutKw, ConstKw:
		p.bumpAny()
	default:
		p.error("expected mut or const in raw pointer type (use `*mut T` or `*const T` as appropriate)")
	}
	parseTypeNoBounds(p)
	m.complete(p, PtrType)
}

func arrayOrSliceType(p *parser) {
	m := p.start()
	p.bump(LBrack)
	parseType(p)
	switch p.current() {
	case RBrack:
		p.bump(RBrack)
		m.complete(p, SliceType)
	case Semicolon:
		p.bump(Semicolon)
		parseExpr(p)
		p.expect(RBrack)
		m.complete(p, ArrayType)
	default:
		p.error("expected `;` or `]`")
		m.complete(p, SliceType)
	}
}

func refType(p *parser) {
	m := p.start()
	p.bump(Amp)
	if p.at(LifetimeIdent) {
		lifetime(p)
	}
	p.eat(MutKw)
	parseTypeNoBounds(p)
	m.complete(p, RefType)
}

func fnPtrType(p *parser) {
	m := p.start()
	p.eat(UnsafeKw)
	if p.at(ExternKw) {
		abi(p)
	}
	if !p.eat(FnKw) {
		p.error("expected `fn`")
	}
	if p.at(LParen) {
		paramListFnPtr(p)
	} else {
		p.error("expected parameters")
	}
	optRetType(p)
	m.complete(p, FnPtrType)
}

func pathType(p *parser) {
	m := p.start()
	typePath(p)
	m.complete(p, PathType)
}

func pathOrMacroType(p *parser, allowBounds bool) {
	m := p.start()
	typePath(p)

	if p.at(Bang) && !p.at(Neq) {
		macroCallAfterBang(p)
		call := m.complete(p, MacroCall)
		call.precede(p).complete(p, MacroType)
		return
	}

	ty := m.complete(p, PathType)
	if allowBounds && p.at(Plus) {
		// Trait object without `dyn`: the path becomes the first bound.
		bound := ty.precede(p).complete(p, TypeBound)
		list := bound.precede(p)
		p.bump(Plus)
		boundsWithoutColonM(p, list).precede(p).complete(p, DynTraitType)
	}
}

// ascription parses `: Type`.
func ascription(p *parser) {
	p.bump(Colon)
	if p.at(Eq) {
		p.error("missing type")
		return
	}
	parseType(p)
}

func boundsWithoutColon(p *parser) {
	boundsWithoutColonM(p, p.start())
}

func boundsWithoutColonM(p *parser, m marker) completedMarker {
	for typeBound(p) {
		if !p.eat(Plus) {
			break
		}
	}
	return m.complete(p, TypeBoundList)
}

func bounds(p *parser) {
	p.bump(Colon)
	boundsWithoutColon(p)
}

func typeBound(p *parser) bool {
	m := p.start()
	hasParen := p.eat(LParen)
	switch {
	case p.at(LifetimeIdent):
		lifetime(p)
	case p.at(Question):
		p.bump(Question)
		pathType(p)
	case isPathStart(p):
		pathType(p)
	default:
		m.abandon(p)
		return false
	}
	if hasParen {
		p.expect(RParen)
	}
	m.complete(p, TypeBound)
	return true
}
