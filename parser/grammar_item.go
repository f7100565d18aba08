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

// modContents parses the items of a module or file. If stopOnRCurly is set,
// the contents end at a `}`.
func modContents(p *parser, stopOnRCurly bool) {
	innerAttrs(p)
	for !p.at(EOF) && !(p.at(RCurly) && stopOnRCurly) {
		itemOrMacro(p, stopOnRCurly)
	}
}

func itemOrMacro(p *parser, stopOnRCurly bool) {
	m := p.start()
	outerAttrs(p)

	m, ok := optItem(p, m)
	if ok {
		if p.at(Semicolon) {
			p.errAndBump("expected item, found `;`\nconsider removing this semicolon")
		}
		return
	}

	if isUsePathStart(p) {
		usePath(p)
		if macroCallAfterBang(p) == blockLikeNot {
			p.expect(Semicolon)
		}
		m.complete(p, MacroCall)
		return
	}

	m.abandon(p)
	switch {
	case p.at(LCurly):
		errorBlock(p, "expected an item")
	case p.at(RCurly) && !stopOnRCurly:
		e := p.start()
		p.error("unmatched `}`")
		p.bump(RCurly)
		e.complete(p, Error)
	case p.at(EOF), p.at(RCurly):
		p.error("expected an item")
	default:
		p.errAndBump("expected an item")
	}
}

// optItem parses an item starting at m, which precedes the item's
// attributes. Returns m and false if there is no item here.
func optItem(p *parser, m marker) (marker, bool) {
	hasVisibility := optVisibility(p, false)

	if optItemWithoutModifiers(p, m) {
		return m, true
	}

	var hasMods, hasExtern bool
	if p.at(ConstKw) && p.nth(1) != LCurly {
		p.eat(ConstKw)
		hasMods = true
	}
	if p.at(AsyncKw) && p.nth(1) != LCurly && p.nth(1) != MoveKw && p.nth(1) != Pipe {
		p.eat(AsyncKw)
		hasMods = true
	}
	if p.at(UnsafeKw) && p.nth(1) != LCurly {
		p.eat(UnsafeKw)
		hasMods = true
	}
	if p.at(ExternKw) {
		hasExtern = true
		hasMods = true
		abi(p)
	}
	if p.atContextualKw(AutoKw) && p.nth(1) == TraitKw {
		p.bumpRemap(AutoKw)
		hasMods = true
	}
	if p.atContextualKw(SafeKw) && (p.nth(1) == FnKw || p.nth(1) == StaticKw) {
		p.bumpRemap(SafeKw)
		hasMods = true
	}
	if p.atContextualKw(DefaultKw) {
		switch p.nth(1) {
		case FnKw, TypeKw, ConstKw, ImplKw, UnsafeKw:
			p.bumpRemap(DefaultKw)
			hasMods = true
		}
	}

	switch {
	case p.at(FnKw):
		fn(p, m)
	case p.at(ConstKw) && p.nth(1) != LCurly:
		p.bump(ConstKw)
		constOrStatic(p, m, true)
	case p.at(StaticKw):
		p.bump(StaticKw)
		constOrStatic(p, m, false)
	case p.at(TraitKw):
		trait(p, m)
	case p.at(ImplKw):
		impl(p, m)
	case p.at(TypeKw):
		typeAlias(p, m)
	case p.at(LCurly) && hasExtern:
		l := p.start()
		p.bump(LCurly)
		modContents(p, true)
		p.expect(RCurly)
		l.complete(p, ExternItemList)
		m.complete(p, ExternBlock)
	case hasVisibility || hasMods:
		if hasMods {
			p.error("expected fn, trait or impl")
		} else {
			p.error("expected an item")
		}
		m.complete(p, Error)
	default:
		return m, false
	}
	return m, true
}

func optItemWithoutModifiers(p *parser, m marker) bool {
	la := p.nth(1)
	switch {
	case p.at(ExternKw) && la == CrateKw:
		externCrate(p, m)
	case p.at(UseKw):
		p.bump(UseKw)
		useTree(p, true)
		p.expect(Semicolon)
		m.complete(p, Use)
	case p.at(ModKw):
		module(p, m)
	case p.at(TypeKw):
		typeAlias(p, m)
	case p.at(StructKw):
		p.bump(StructKw)
		structOrUnion(p, m, true)
	case p.at(EnumKw):
		enum(p, m)
	case p.atContextualKw(UnionKw) && la == Ident:
		p.bumpRemap(UnionKw)
		structOrUnion(p, m, false)
	case p.atContextualKw(MacroRulesKw) && la == Bang:
		macroRules(p, m)
	case p.at(ConstKw) && (la == Ident || la == Underscore || la == MutKw):
		p.bump(ConstKw)
		constOrStatic(p, m, true)
	case p.at(StaticKw) && (la == Ident || la == Underscore || la == MutKw):
		p.bump(StaticKw)
		constOrStatic(p, m, false)
	default:
		return false
	}
	return true
}

func externCrate(p *parser, m marker) {
	p.bump(ExternKw)
	p.bump(CrateKw)
	if p.at(SelfKw) {
		n := p.start()
		p.bump(SelfKw)
		n.complete(p, NameRef)
	} else {
		nameRef(p)
	}
	optRename(p)
	p.expect(Semicolon)
	m.complete(p, ExternCrate)
}

func module(p *parser, m marker) {
	p.bump(ModKw)
	name(p)
	switch {
	case p.at(LCurly):
		l := p.start()
		p.bump(LCurly)
		modContents(p, true)
		p.expect(RCurly)
		l.complete(p, ItemList)
	case !p.eat(Semicolon):
		p.error("expected `;` or `{`")
	}
	m.complete(p, Module)
}

func useTree(p *parser, top bool) {
	m := p.start()
	switch {
	case p.at(Star):
		p.bump(Star)
	case p.at(ColonColon) && p.nth(2) == Star:
		p.bump(ColonColon)
		p.bump(Star)
	case p.at(LCurly):
		useTreeList(p)
	case p.at(ColonColon) && p.nth(2) == LCurly:
		p.bump(ColonColon)
		useTreeList(p)
	case isUsePathStart(p):
		usePath(p)
		switch {
		case p.at(AsKw):
			optRename(p)
		case p.at(ColonColon):
			p.bump(ColonColon)
			switch {
			case p.at(Star):
				p.bump(Star)
			case p.at(LCurly):
				useTreeList(p)
			default:
				p.error("expected `{` or `*`")
			}
		}
	default:
		m.abandon(p)
		const msg = "expected one of `*`, `::`, `{`, `self`, `super` or an identifier"
		if top {
			p.errRecover(msg, itemRecoverySet)
		} else {
			p.errAndBump(msg)
		}
		return
	}
	m.complete(p, UseTree)
}

func useTreeList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	for !p.at(EOF) && !p.at(RCurly) {
		useTree(p, false)
		if !p.at(RCurly) {
			p.expect(Comma)
		}
	}
	p.expect(RCurly)
	m.complete(p, UseTreeList)
}

func optRename(p *parser) {
	if !p.at(AsKw) {
		return
	}
	m := p.start()
	p.bump(AsKw)
	if !p.eat(Underscore) {
		name(p)
	}
	m.complete(p, Rename)
}

func typeAlias(p *parser, m marker) {
	p.bump(TypeKw)
	name(p)
	optGenericParamList(p)
	if p.at(Colon) {
		bounds(p)
	}
	optWhereClause(p)
	if p.eat(Eq) {
		parseType(p)
	}
	optWhereClause(p)
	p.expect(Semicolon)
	m.complete(p, TypeAlias)
}

func constOrStatic(p *parser, m marker, isConst bool) {
	p.eat(MutKw)
	if !isConst || !p.eat(Underscore) {
		name(p)
	}
	if p.at(Colon) {
		ascription(p)
	} else {
		p.error("missing type for `const` or `static`")
	}
	if p.eat(Eq) {
		parseExpr(p)
	}
	p.expect(Semicolon)
	if isConst {
		m.complete(p, Const)
	} else {
		m.complete(p, Static)
	}
}

func fn(p *parser, m marker) {
	p.bump(FnKw)
	nameR(p, itemRecoverySet)
	optGenericParamList(p)
	if p.at(LParen) {
		paramListFnDef(p)
	} else {
		p.error("expected function arguments")
	}
	optRetType(p)
	optWhereClause(p)
	if !p.eat(Semicolon) {
		blockExpr(p)
	}
	m.complete(p, Fn)
}

func structOrUnion(p *parser, m marker, isStruct bool) {
	nameR(p, itemRecoverySet)
	optGenericParamList(p)
	switch {
	case p.at(WhereKw):
		optWhereClause(p)
		switch {
		case p.at(Semicolon):
			p.bump(Semicolon)
		case p.at(LCurly):
			recordFieldList(p)
		default:
			p.error("expected `;` or `{`")
		}
	case p.at(LCurly):
		recordFieldList(p)
	case p.at(Semicolon) && isStruct:
		p.bump(Semicolon)
	case p.at(LParen) && isStruct:
		tupleFieldList(p)
		optWhereClause(p)
		p.expect(Semicolon)
	case isStruct:
		p.error("expected `;`, `{`, or `(`")
	default:
		p.error("expected `{`")
	}
	if isStruct {
		m.complete(p, Struct)
	} else {
		m.complete(p, Union)
	}
}

func enum(p *parser, m marker) {
	p.bump(EnumKw)
	nameR(p, itemRecoverySet)
	optGenericParamList(p)
	optWhereClause(p)
	if p.at(LCurly) {
		variantList(p)
	} else {
		p.error("expected `{`")
	}
	m.complete(p, Enum)
}

func variantList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	for !p.at(EOF) && !p.at(RCurly) {
		if p.at(LCurly) {
			errorBlock(p, "expected enum variant")
			continue
		}

		v := p.start()
		outerAttrs(p)
		if !p.at(Ident) {
			v.abandon(p)
			p.errAndBump("expected enum variant")
		} else {
			name(p)
			switch {
			case p.at(LCurly):
				recordFieldList(p)
			case p.at(LParen):
				tupleFieldList(p)
			}
			if p.eat(Eq) {
				parseExpr(p)
			}
			v.complete(p, Variant)
		}

		if !p.at(RCurly) {
			p.expect(Comma)
		}
	}
	p.expect(RCurly)
	m.complete(p, VariantList)
}

func recordFieldList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	for !p.at(EOF) && !p.at(RCurly) {
		if p.at(LCurly) {
			errorBlock(p, "expected field")
			continue
		}

		f := p.start()
		outerAttrs(p)
		optVisibility(p, false)
		if !p.at(Ident) {
			f.abandon(p)
			p.errAndBump("expected field declaration")
		} else {
			name(p)
			p.expect(Colon)
			parseType(p)
			if p.eat(Eq) {
				parseExpr(p)
			}
			f.complete(p, RecordField)
		}

		if !p.at(RCurly) {
			p.expect(Comma)
		}
	}
	p.expect(RCurly)
	m.complete(p, RecordFieldList)
}

func tupleFieldList(p *parser) {
	m := p.start()
	p.bump(LParen)
	for !p.at(EOF) && !p.at(RParen) {
		f := p.start()
		outerAttrs(p)
		optVisibility(p, true)
		if !p.atSet(typeFirst) {
			p.error("expected a type")
			f.complete(p, Error)
			break
		}
		parseType(p)
		f.complete(p, TupleField)

		if !p.at(RParen) {
			p.expect(Comma)
		}
	}
	p.expect(RParen)
	m.complete(p, TupleFieldList)
}

func trait(p *parser, m marker) {
	p.bump(TraitKw)
	nameR(p, itemRecoverySet)
	optGenericParamList(p)
	if p.at(Colon) {
		bounds(p)
	}
	optWhereClause(p)
	if p.at(LCurly) {
		assocItemList(p)
	} else {
		p.error("expected `{`")
	}
	m.complete(p, Trait)
}

func impl(p *parser, m marker) {
	p.bump(ImplKw)
	if p.at(LAngle) && notAQualifiedPath(p) {
		genericParamList(p)
	}
	p.eat(ConstKw)
	p.eat(Bang)
	implType(p)
	if p.eat(ForKw) {
		implType(p)
	}
	optWhereClause(p)
	if p.at(LCurly) {
		assocItemList(p)
	} else {
		p.error("expected `{`")
	}
	m.complete(p, Impl)
}

func implType(p *parser) {
	if p.at(ImplKw) {
		p.error("expected trait or type")
		return
	}
	parseType(p)
}

// notAQualifiedPath distinguishes `impl<T> Foo<T>` from `impl <T as Tr>::X`.
func notAQualifiedPath(p *parser) bool {
	switch p.nth(1) {
	case Pound, RAngle, ConstKw:
		return true
	case LifetimeIdent, Ident:
		switch p.nth(2) {
		case RAngle, Comma, Colon, Eq:
			return true
		}
	}
	return false
}

func assocItemList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	innerAttrs(p)
	for !p.at(EOF) && !p.at(RCurly) {
		if p.at(LCurly) {
			errorBlock(p, "expected an item")
			continue
		}
		itemOrMacro(p, true)
	}
	p.expect(RCurly)
	m.complete(p, AssocItemList)
}

func macroRules(p *parser, m marker) {
	p.bumpRemap(MacroRulesKw)
	p.expect(Bang)
	if p.at(Ident) {
		name(p)
	}
	switch p.current() {
	case LCurly:
		tokenTree(p)
	case LParen, LBrack:
		tokenTree(p)
		p.expect(Semicolon)
	default:
		p.error("expected `{`, `[`, `(`")
	}
	m.complete(p, MacroRules)
}

func optGenericParamList(p *parser) {
	if p.at(LAngle) {
		genericParamList(p)
	}
}

func genericParamList(p *parser) {
	m := p.start()
	p.bump(LAngle)
	for !p.at(EOF) && !p.at(RAngle) {
		genericParam(p)
		if !p.at(RAngle) && !p.expect(Comma) {
			break
		}
	}
	p.expect(RAngle)
	m.complete(p, GenericParamList)
}

func genericParam(p *parser) {
	m := p.start()
	outerAttrs(p)
	switch p.current() {
	case LifetimeIdent:
		lifetime(p)
		if p.at(Colon) {
			lifetimeBounds(p)
		}
		m.complete(p, LifetimeParam)
	case Ident:
		name(p)
		if p.at(Colon) {
			bounds(p)
		}
		if p.eat(Eq) {
			parseType(p)
		}
		m.complete(p, TypeParam)
	case ConstKw:
		p.bump(ConstKw)
		name(p)
		if p.at(Colon) {
			ascription(p)
		} else {
			p.error("missing type for const parameter")
		}
		if p.eat(Eq) {
			constArg(p)
		}
		m.complete(p, ConstParam)
	default:
		m.abandon(p)
		p.errAndBump("expected generic parameter")
	}
}

func lifetimeBounds(p *parser) {
	m := p.start()
	p.bump(Colon)
	for p.at(LifetimeIdent) {
		b := p.start()
		lifetime(p)
		b.complete(p, TypeBound)
		if !p.eat(Plus) {
			break
		}
	}
	m.complete(p, TypeBoundList)
}

func optWhereClause(p *parser) {
	if !p.at(WhereKw) {
		return
	}
	m := p.start()
	p.bump(WhereKw)
	for isWherePredicate(p) {
		pred := p.start()
		if p.at(LifetimeIdent) {
			lifetime(p)
			if p.at(Colon) {
				lifetimeBounds(p)
			} else {
				p.error("expected colon")
			}
		} else {
			parseType(p)
			if p.at(Colon) {
				bounds(p)
			} else {
				p.error("expected colon")
			}
		}
		pred.complete(p, WherePred)

		comma := p.eat(Comma)
		if p.at(LCurly) || p.at(Semicolon) || p.at(Eq) {
			break
		}
		if !comma {
			p.error("expected comma")
		}
	}
	m.complete(p, WhereClause)
}

func isWherePredicate(p *parser) bool {
	switch k := p.current(); k {
	case LifetimeIdent:
		return true
	case ImplKw:
		return false
	default:
		return typeFirst.contains(k)
	}
}

var paramFirst = patternFirst.union(typeFirst)

func paramListFnDef(p *parser) {
	m := p.start()
	p.bump(LParen)
	if optSelfParam(p) && !p.at(RParen) {
		p.expect(Comma)
	}
	for !p.at(EOF) && !p.at(RParen) {
		param := p.start()
		outerAttrs(p)
		if !p.atSet(paramFirst) {
			param.abandon(p)
			p.error("expected value parameter")
			break
		}
		patternSingle(p)
		if p.at(Colon) {
			ascription(p)
		} else {
			p.error("missing type for function parameter")
		}
		param.complete(p, Param)
		if !p.at(RParen) && !p.expect(Comma) {
			break
		}
	}
	p.expect(RParen)
	m.complete(p, ParamList)
}

// paramListFnPtr parses the parameters of a function pointer type or of a
// path segment like Fn(A) -> B. Parameter names are optional.
func paramListFnPtr(p *parser) {
	m := p.start()
	p.bump(LParen)
	for !p.at(EOF) && !p.at(RParen) {
		param := p.start()
		outerAttrs(p)
		if !p.atSet(typeFirst) && !p.at(Underscore) {
			param.abandon(p)
			p.error("expected value parameter")
			break
		}
		if (p.at(Ident) || p.at(Underscore)) && p.nth(1) == Colon && !p.nthAt(1, ColonColon) {
			patternSingle(p)
			ascription(p)
		} else {
			parseType(p)
		}
		param.complete(p, Param)
		if !p.at(RParen) && !p.expect(Comma) {
			break
		}
	}
	p.expect(RParen)
	m.complete(p, ParamList)
}

// optSelfParam parses self, mut self, &self, &mut self, &'a self and
// &'a mut self, each optionally with a type.
func optSelfParam(p *parser) bool {
	var n int
	switch p.current() {
	case SelfKw:
		n = 1
	case MutKw:
		if p.nth(1) == SelfKw {
			n = 2
		}
	case Amp:
		switch {
		case p.nth(1) == SelfKw:
			n = 2
		case p.nth(1) == MutKw && p.nth(2) == SelfKw:
			n = 3
		case p.nth(1) == LifetimeIdent && p.nth(2) == SelfKw:
			n = 3
		case p.nth(1) == LifetimeIdent && p.nth(2) == MutKw && p.nth(3) == SelfKw:
			n = 4
		}
	}
	if n == 0 {
		return false
	}

	m := p.start()
	p.eat(Amp)
	if p.at(LifetimeIdent) {
		lifetime(p)
	}
	p.eat(MutKw)
	s := p.start()
	p.bump(SelfKw)
	s.complete(p, Name)
	if p.at(Colon) {
		ascription(p)
	}
	m.complete(p, SelfParam)
	return true
}
