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
	literalFirst = newTokenSet(TrueKw, FalseKw, IntNumber, FloatNumber, Byte, Char, String, ByteString, CString)

	pathFirst = newTokenSet(Ident, SelfKw, SuperKw, CrateKw, SelfTypeKw, Colon, LAngle)

	itemRecoverySet = newTokenSet(
		FnKw, StructKw, EnumKw, ImplKw, TraitKw, ConstKw, StaticKw, LetKw,
		ModKw, PubKw, CrateKw, UseKw, MacroKw, Semicolon,
	)
)

func name(p *parser) {
	nameR(p, tokenSet{})
}

func nameR(p *parser, recovery tokenSet) {
	if !p.at(Ident) {
		p.errRecover("expected a name", recovery)
		return
	}
	m := p.start()
	p.bump(Ident)
	m.complete(p, Name)
}

func nameRef(p *parser) {
	if !p.at(Ident) {
		p.errAndBump("expected identifier")
		return
	}
	m := p.start()
	p.bump(Ident)
	m.complete(p, NameRef)
}

func nameRefOrIndex(p *parser) {
	m := p.start()
	p.bumpAny()
	m.complete(p, NameRef)
}

func lifetime(p *parser) {
	m := p.start()
	p.bump(LifetimeIdent)
	m.complete(p, Lifetime)
}

// optVisibility parses `pub`, `pub(crate)`, `pub(self)`, `pub(super)` and
// `pub(in path)`.
//
// In a tuple field, `pub (A, B)` may be a visibility followed by a tuple type,
// so only the restricted forms that cannot be types are consumed.
func optVisibility(p *parser, inTupleField bool) bool {
	if !p.at(PubKw) {
		return false
	}

	m := p.start()
	p.bump(PubKw)
	if p.at(LParen) {
		switch p.nth(1) {
		case CrateKw, SelfKw, SuperKw:
			if p.nth(2) == RParen && !(inTupleField && p.nth(1) == SelfKw) {
				p.bump(LParen)
				usePath(p)
				p.expect(RParen)
			}
		case InKw:
			p.bump(LParen)
			p.bump(InKw)
			usePath(p)
			p.expect(RParen)
		}
	}
	m.complete(p, Visibility)
	return true
}

func innerAttrs(p *parser) {
	for p.at(Pound) && p.nth(1) == Bang {
		attr(p, true)
	}
}

func outerAttrs(p *parser) {
	for p.at(Pound) {
		attr(p, false)
	}
}

func attr(p *parser, inner bool) {
	m := p.start()
	p.bump(Pound)
	if inner {
		p.bump(Bang)
	}
	if p.eat(LBrack) {
		meta(p)
		if !p.eat(RBrack) {
			p.error("expected `]`")
		}
	} else {
		p.error("expected `[`")
	}
	m.complete(p, Attr)
}

// meta parses the contents of an attribute: a path, optionally followed by
// `= expr` or a delimited token tree.
func meta(p *parser) {
	m := p.start()
	isUnsafe := p.eat(UnsafeKw)
	if isUnsafe {
		p.expect(LParen)
	}
	usePath(p)
	switch p.current() {
	case Eq:
		p.bump(Eq)
		if _, _, ok := parseExprBP(p, nil, restrictions{}, 1); !ok {
			p.error("expected expression")
		}
	case LParen, LBrack, LCurly:
		tokenTree(p)
	}
	if isUnsafe {
		p.expect(RParen)
	}
	m.complete(p, Meta)
}

// tokenTree parses a delimited token tree. Compound operators inside it are
// not glued: every token is consumed on its own.
func tokenTree(p *parser) {
	var closer Kind
	switch p.current() {
	case LCurly:
		closer = RCurly
	case LParen:
		closer = RParen
	case LBrack:
		closer = RBrack
	default:
		panic("tokentree/parser: tokenTree called on a non-delimiter")
	}

	m := p.start()
	p.bumpAny()
	for !p.at(EOF) && !p.at(closer) {
		switch p.current() {
		case LCurly, LParen, LBrack:
			tokenTree(p)
		case RCurly:
			p.error("unmatched `}`")
			m.complete(p, TokenTree)
			return
		case RParen, RBrack:
			p.errAndBump("unmatched brace")
		default:
			p.bumpAny()
		}
	}
	p.expect(closer)
	m.complete(p, TokenTree)
}

// macroCallAfterBang parses `!` and the delimited arguments of a macro call.
// Brace-delimited calls are block-like.
func macroCallAfterBang(p *parser) blockLike {
	p.expect(Bang)
	switch p.current() {
	case LCurly:
		tokenTree(p)
		return blockLikeBlock
	case LParen, LBrack:
		tokenTree(p)
	default:
		p.error("expected `{`, `[`, `(`")
	}
	return blockLikeNot
}

// errorBlock consumes a misplaced block as an ERROR node.
func errorBlock(p *parser, msg string) {
	m := p.start()
	p.error(msg)
	p.bump(LCurly)
	exprBlockContents(p)
	p.eat(RCurly)
	m.complete(p, Error)
}

func abi(p *parser) {
	m := p.start()
	p.bump(ExternKw)
	p.eat(String)
	m.complete(p, Abi)
}

func optRetType(p *parser) bool {
	if !p.at(ThinArrow) {
		return false
	}
	m := p.start()
	p.bump(ThinArrow)
	parseTypeNoBounds(p)
	m.complete(p, RetType)
	return true
}
