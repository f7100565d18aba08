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

type pathMode byte

const (
	pathModeType pathMode = iota
	pathModeExpr
	pathModeUse
)

// isPathStart returns whether the current token can begin a path.
func isPathStart(p *parser) bool {
	return isUsePathStart(p) || p.at(LAngle) || p.at(SelfTypeKw)
}

func isUsePathStart(p *parser) bool {
	switch p.current() {
	case Ident, SelfKw, SuperKw, CrateKw:
		return true
	case Colon:
		return p.at(ColonColon)
	default:
		return false
	}
}

func usePath(p *parser) {
	path(p, pathModeUse)
}

func typePath(p *parser) {
	path(p, pathModeType)
}

func exprPath(p *parser) {
	path(p, pathModeExpr)
}

func path(p *parser, mode pathMode) (completedMarker, bool) {
	m := p.start()
	if !pathSegment(p, mode, true) {
		m.abandon(p)
		return completedMarker{}, false
	}
	qual := m.complete(p, Path)

	for {
		// In `use a::{b, c}` and `use a::*`, the final `::` belongs to the use
		// tree, not the path.
		useTree := mode == pathModeUse && (p.nth(2) == Star || p.nth(2) == LCurly)
		if !p.at(ColonColon) || useTree {
			return qual, true
		}
		m := qual.precede(p)
		p.bump(ColonColon)
		pathSegment(p, mode, false)
		qual = m.complete(p, Path)
	}
}

func pathSegment(p *parser, mode pathMode, first bool) bool {
	m := p.start()
	if first && p.eat(LAngle) {
		// Qualified path: <T as Trait>::item.
		parseType(p)
		if p.eat(AsKw) {
			if isUsePathStart(p) {
				pathType(p)
			} else {
				p.error("expected a trait")
			}
		}
		p.expect(RAngle)
		if !p.at(ColonColon) {
			p.error("expected `::`")
		}
		m.complete(p, PathSegment)
		return true
	}

	empty := true
	if first {
		empty = !p.eat(ColonColon)
	}
	switch p.current() {
	case Ident:
		nameRef(p)
		optPathArgs(p, mode)
	case SelfKw, SuperKw, CrateKw, SelfTypeKw:
		n := p.start()
		p.bumpAny()
		n.complete(p, NameRef)
	default:
		p.errRecover("expected identifier", itemRecoverySet)
		if empty {
			m.abandon(p)
			return false
		}
	}
	m.complete(p, PathSegment)
	return true
}

func optPathArgs(p *parser, mode pathMode) {
	switch mode {
	case pathModeType:
		if p.at(ColonColon) && p.nthAt(2, LParen) {
			p.bump(ColonColon)
		}
		if p.at(LParen) {
			// Fn(A, B) -> C
			paramListFnPtr(p)
			optRetType(p)
		} else {
			optGenericArgList(p, false)
		}
	case pathModeExpr:
		optGenericArgList(p, true)
	}
}

// optGenericArgList parses `<...>` or, in expressions, `::<...>`.
func optGenericArgList(p *parser, colonColonRequired bool) {
	var m marker
	switch {
	case p.at(ColonColon) && p.nth(2) == LAngle:
		m = p.start()
		p.bump(ColonColon)
	case !colonColonRequired && p.at(LAngle) && p.nth(1) != Eq:
		m = p.start()
	default:
		return
	}

	p.bump(LAngle)
	for !p.at(EOF) && !p.at(RAngle) {
		genericArg(p)
		if !p.at(RAngle) && !p.expect(Comma) {
			break
		}
	}
	p.expect(RAngle)
	m.complete(p, GenericArgList)
}

func genericArg(p *parser) {
	m := p.start()
	switch k := p.current(); {
	case k == LifetimeIdent && !p.nthAt(1, Plus):
		lifetime(p)
		m.complete(p, LifetimeArg)
	case k == LCurly || k == Minus || literalFirst.contains(k):
		constArg(p)
		m.complete(p, ConstArg)
	case k == Ident && p.nth(1) == Eq && !p.nthAt(1, EqEq) && !p.nthAt(1, FatArrow):
		nameRef(p)
		p.bump(Eq)
		parseType(p)
		m.complete(p, AssocTypeArg)
	default:
		parseType(p)
		m.complete(p, TypeArg)
	}
}

// constArg parses a block, a literal or a negated literal.
func constArg(p *parser) {
	switch {
	case p.at(LCurly):
		blockExpr(p)
	case p.at(Minus):
		m := p.start()
		p.bump(Minus)
		literal(p)
		m.complete(p, PrefixExpr)
	default:
		literal(p)
	}
}
