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

type restrictions struct {
	// Struct literals are not allowed, as in the condition of an `if`.
	forbidStructs bool
	// A block-like expression at the start ends the expression, as in
	// statement position.
	preferStmt bool
}

type blockLike bool

const (
	blockLikeNot   blockLike = false
	blockLikeBlock blockLike = true
)

func isBlockLike(kind Kind) blockLike {
	switch kind {
	case BlockExpr, IfExpr, WhileExpr, ForExpr, LoopExpr, MatchExpr:
		return blockLikeBlock
	default:
		return blockLikeNot
	}
}

type semicolon byte

const (
	semiRequired semicolon = iota
	semiOptional
)

var (
	atomExprFirst = literalFirst.union(pathFirst).union(newTokenSet(
		LParen, LCurly, LBrack, Pipe, AsyncKw, BreakKw, ContinueKw, ForKw,
		IfKw, LetKw, LoopKw, MatchKw, MoveKw, ReturnKw, UnsafeKw, WhileKw,
		LifetimeIdent, Pound,
	))

	exprFirst = atomExprFirst.union(newTokenSet(Amp, Star, Bang, Dot, Minus, Underscore))

	exprRecoverySet = newTokenSet(RParen, RBrack)
)

func parseExpr(p *parser) (completedMarker, bool) {
	cm, _, ok := parseExprBP(p, nil, restrictions{}, 1)
	return cm, ok
}

func parseExprNoStruct(p *parser) {
	parseExprBP(p, nil, restrictions{forbidStructs: true}, 1)
}

func literal(p *parser) (completedMarker, bool) {
	if !p.atSet(literalFirst) {
		return completedMarker{}, false
	}
	m := p.start()
	p.bumpAny()
	return m.complete(p, Literal), true
}

// stmt parses a statement. Items, `let` statements and expression statements
// are all statements; an expression at the end of a block without a trailing
// semicolon is left bare.
func stmt(p *parser, semi semicolon) {
	if p.eat(Semicolon) {
		return
	}

	m := p.start()
	outerAttrs(p)

	if p.at(LetKw) {
		letStmt(p, semi)
		m.complete(p, LetStmt)
		return
	}

	m, ok := optItem(p, m)
	if ok {
		return
	}

	if !p.atSet(exprFirst) {
		p.errAndBump("expected expression, item or let statement")
		m.abandon(p)
		return
	}

	cm, bl, ok := parseExprBP(p, &m, restrictions{preferStmt: true}, 1)
	if !ok {
		return
	}
	if p.at(RCurly) || (semi != semiRequired && p.at(EOF)) {
		// Tail expression.
		return
	}

	s := cm.precede(p)
	switch semi {
	case semiRequired:
		if bl == blockLikeBlock {
			p.eat(Semicolon)
		} else {
			p.expect(Semicolon)
		}
	case semiOptional:
		p.eat(Semicolon)
	}
	s.complete(p, ExprStmt)
}

func letStmt(p *parser, semi semicolon) {
	p.bump(LetKw)
	pattern(p)
	if p.at(Colon) {
		ascription(p)
	}
	if p.eat(Eq) {
		parseExpr(p)
	}
	if p.at(ElseKw) {
		m := p.start()
		p.bump(ElseKw)
		blockExpr(p)
		m.complete(p, LetElse)
	}
	switch semi {
	case semiRequired:
		p.expect(Semicolon)
	case semiOptional:
		p.eat(Semicolon)
	}
}

func exprBlockContents(p *parser) {
	innerAttrs(p)
	for !p.at(EOF) && !p.at(RCurly) {
		stmt(p, semiRequired)
	}
}

func blockExpr(p *parser) {
	if !p.at(LCurly) {
		p.error("expected a block")
		return
	}
	m := p.start()
	stmtList(p)
	m.complete(p, BlockExpr)
}

func stmtList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	exprBlockContents(p)
	p.expect(RCurly)
	m.complete(p, StmtList)
}

type assoc byte

const (
	assocLeft assoc = iota
	assocRight
)

// currentOp returns the binding power, kind and associativity of the binary
// operator at the cursor. The binding power is zero if there is none.
func currentOp(p *parser) (int, Kind, assoc) {
	switch p.current() {
	case Pipe:
		switch {
		case p.at(PipePipe):
			return 3, PipePipe, assocLeft
		case p.at(PipeEq):
			return 1, PipeEq, assocRight
		}
		return 6, Pipe, assocLeft
	case RAngle:
		switch {
		case p.at(ShrEq):
			return 1, ShrEq, assocRight
		case p.at(Shr):
			return 9, Shr, assocLeft
		case p.at(GtEq):
			return 5, GtEq, assocLeft
		}
		return 5, RAngle, assocLeft
	case Eq:
		switch {
		case p.at(EqEq):
			return 5, EqEq, assocLeft
		case p.at(FatArrow):
			return 0, Eq, assocLeft
		}
		return 1, Eq, assocRight
	case LAngle:
		switch {
		case p.at(LtEq):
			return 5, LtEq, assocLeft
		case p.at(ShlEq):
			return 1, ShlEq, assocRight
		case p.at(Shl):
			return 9, Shl, assocLeft
		}
		return 5, LAngle, assocLeft
	case Plus:
		if p.at(PlusEq) {
			return 1, PlusEq, assocRight
		}
		return 10, Plus, assocLeft
	case Caret:
		if p.at(CaretEq) {
			return 1, CaretEq, assocRight
		}
		return 7, Caret, assocLeft
	case Percent:
		if p.at(PercentEq) {
			return 1, PercentEq, assocRight
		}
		return 11, Percent, assocLeft
	case Amp:
		switch {
		case p.at(AmpEq):
			return 1, AmpEq, assocRight
		case p.at(AmpAmp):
			return 4, AmpAmp, assocLeft
		}
		return 8, Amp, assocLeft
	case Slash:
		if p.at(SlashEq) {
			return 1, SlashEq, assocRight
		}
		return 11, Slash, assocLeft
	case Star:
		if p.at(StarEq) {
			return 1, StarEq, assocRight
		}
		return 11, Star, assocLeft
	case Dot:
		switch {
		case p.at(DotDotEq):
			return 2, DotDotEq, assocLeft
		case p.at(DotDot):
			return 2, DotDot, assocLeft
		}
	case Bang:
		if p.at(Neq) {
			return 5, Neq, assocLeft
		}
	case Minus:
		if p.at(MinusEq) {
			return 1, MinusEq, assocRight
		}
		return 10, Minus, assocLeft
	case AsKw:
		return 12, AsKw, assocLeft
	}
	return 0, At, assocLeft
}

// parseExprBP parses an expression whose operators bind at least as tightly
// as bp, by precedence climbing.
//
// If m is not nil, it is a marker started before the outer attributes of the
// expression, which have already been parsed.
func parseExprBP(p *parser, m *marker, r restrictions, bp int) (completedMarker, blockLike, bool) {
	var start marker
	if m != nil {
		start = *m
	} else {
		start = p.start()
		outerAttrs(p)
	}

	if !p.atSet(exprFirst) {
		p.errRecover("expected expression", exprRecoverySet)
		start.abandon(p)
		return completedMarker{}, blockLikeNot, false
	}

	lhs, bl, ok := lhsExpr(p, r)
	if !ok {
		start.abandon(p)
		return completedMarker{}, blockLikeNot, false
	}
	lhs = lhs.extendTo(p, start)

	if r.preferStmt && bl == blockLikeBlock {
		return lhs, blockLikeBlock, true
	}

	for {
		isRange := p.at(DotDot) || p.at(DotDotEq)
		opBP, op, associativity := currentOp(p)
		if opBP < bp {
			break
		}

		if p.at(AsKw) {
			m := lhs.precede(p)
			p.bump(AsKw)
			parseTypeNoBounds(p)
			lhs = m.complete(p, CastExpr)
			continue
		}

		m := lhs.precede(p)
		p.bump(op)

		if isRange {
			// The end of a range is optional.
			hasEnd := p.atSet(exprFirst) && !(r.forbidStructs && p.at(LCurly))
			if !hasEnd {
				lhs = m.complete(p, RangeExpr)
				break
			}
		}

		if associativity == assocLeft {
			opBP++
		}
		parseExprBP(p, nil, restrictions{forbidStructs: r.forbidStructs}, opBP)
		if isRange {
			lhs = m.complete(p, RangeExpr)
		} else {
			lhs = m.complete(p, BinExpr)
		}
	}
	return lhs, blockLikeNot, true
}

func lhsExpr(p *parser, r restrictions) (completedMarker, blockLike, bool) {
	var m marker
	var kind Kind
	switch p.current() {
	case Amp:
		m = p.start()
		p.bump(Amp)
		if p.atContextualKw(RawKw) && (p.nth(1) == MutKw || p.nth(1) == ConstKw) {
			p.bumpRemap(RawKw)
			p.bumpAny()
		} else {
			p.eat(MutKw)
		}
		kind = RefExpr
	case Star, Bang, Minus:
		m = p.start()
		p.bumpAny()
		kind = PrefixExpr
	default:
		for _, op := range [...]Kind{DotDotEq, DotDot} {
			if !p.at(op) {
				continue
			}
			// Ranges without a start: `..`, `..5`.
			m := p.start()
			p.bump(op)
			if p.atSet(exprFirst) && !(r.forbidStructs && p.at(LCurly)) {
				parseExprBP(p, nil, r, 2)
			}
			return m.complete(p, RangeExpr), blockLikeNot, true
		}

		lhs, bl, ok := atomExpr(p, r)
		if !ok {
			return completedMarker{}, blockLikeNot, false
		}
		allowCalls := !(r.preferStmt && bl == blockLikeBlock)
		lhs, bl = postfixExpr(p, lhs, bl, allowCalls)
		return lhs, bl, true
	}

	parseExprBP(p, nil, r, 255)
	return m.complete(p, kind), blockLikeNot, true
}

func postfixExpr(p *parser, lhs completedMarker, bl blockLike, allowCalls bool) (completedMarker, blockLike) {
loop:
	for {
		switch {
		case p.at(LParen) && allowCalls:
			m := lhs.precede(p)
			argList(p)
			lhs = m.complete(p, CallExpr)
		case p.at(LBrack) && allowCalls:
			m := lhs.precede(p)
			p.bump(LBrack)
			parseExpr(p)
			p.expect(RBrack)
			lhs = m.complete(p, IndexExpr)
		case p.at(Dot):
			next, ok := postfixDotExpr(p, lhs, false)
			lhs = next
			if !ok {
				break loop
			}
		case p.at(Question):
			m := lhs.precede(p)
			p.bump(Question)
			lhs = m.complete(p, TryExpr)
		default:
			break loop
		}
		allowCalls = true
		bl = blockLikeNot
	}
	return lhs, bl
}

// postfixDotExpr parses a method call, field access or `.await` after lhs.
//
// If floatRecovery is set, the dot has already been consumed as part of a
// float literal that was split.
//
// Returns false if the dot starts a range instead.
func postfixDotExpr(p *parser, lhs completedMarker, floatRecovery bool) (completedMarker, bool) {
	n1, n2 := 1, 2
	if floatRecovery {
		n1, n2 = 0, 1
	}

	if p.nth(n1) == Ident && (p.nth(n2) == LParen || p.nthAt(n2, ColonColon)) {
		m := lhs.precede(p)
		if !floatRecovery {
			p.bump(Dot)
		}
		nameRef(p)
		optGenericArgList(p, true)
		if p.at(LParen) {
			argList(p)
		} else {
			p.error("expected argument list")
		}
		return m.complete(p, MethodCallExpr), true
	}

	if p.nth(n1) == AwaitKw {
		m := lhs.precede(p)
		if !floatRecovery {
			p.bump(Dot)
		}
		p.bump(AwaitKw)
		return m.complete(p, AwaitExpr), true
	}

	if p.at(DotDotEq) || p.at(DotDot) {
		return lhs, false
	}

	return fieldExpr(p, lhs, floatRecovery)
}

func fieldExpr(p *parser, lhs completedMarker, floatRecovery bool) (completedMarker, bool) {
	m := lhs.precede(p)
	if !floatRecovery {
		p.bump(Dot)
	}
	switch {
	case p.at(Ident), p.at(IntNumber):
		nameRefOrIndex(p)
	case p.at(FloatNumber):
		endsInDot, m := p.splitFloat(m)
		lhs := m.complete(p, FieldExpr)
		if endsInDot {
			return postfixDotExpr(p, lhs, true)
		}
		return lhs, true
	default:
		p.error("expected field name or number")
	}
	return m.complete(p, FieldExpr), true
}

func argList(p *parser) {
	m := p.start()
	p.bump(LParen)
	for !p.at(EOF) && !p.at(RParen) {
		if !p.atSet(exprFirst) {
			p.error("expected expression")
			break
		}
		parseExpr(p)
		if !p.at(RParen) && !p.expect(Comma) {
			break
		}
	}
	p.expect(RParen)
	m.complete(p, ArgList)
}

func atomExpr(p *parser, r restrictions) (completedMarker, blockLike, bool) {
	if cm, ok := literal(p); ok {
		return cm, blockLikeNot, true
	}
	if isPathStart(p) {
		cm, bl := pathExpr(p, r)
		return cm, bl, true
	}

	var done completedMarker
	la := p.nth(1)
	switch p.current() {
	case LParen:
		done = tupleExpr(p)
	case LBrack:
		done = arrayExpr(p)
	case IfKw:
		done = ifExpr(p)
	case LetKw:
		m := p.start()
		p.bump(LetKw)
		patternTop(p)
		p.expect(Eq)
		parseExprBP(p, nil, restrictions{forbidStructs: true}, 5)
		done = m.complete(p, LetExpr)
	case Underscore:
		m := p.start()
		p.bump(Underscore)
		done = m.complete(p, UnderscoreExpr)
	case LoopKw:
		done = loopExpr(p, p.start())
	case WhileKw:
		done = whileExpr(p, p.start())
	case ForKw:
		done = forExpr(p, p.start())
	case MatchKw:
		done = matchExpr(p)
	case ReturnKw:
		m := p.start()
		p.bump(ReturnKw)
		if p.atSet(exprFirst) {
			parseExpr(p)
		}
		done = m.complete(p, ReturnExpr)
	case BreakKw:
		m := p.start()
		p.bump(BreakKw)
		if p.at(LifetimeIdent) {
			lifetime(p)
		}
		if p.atSet(exprFirst) && !(r.forbidStructs && p.at(LCurly)) {
			parseExpr(p)
		}
		done = m.complete(p, BreakExpr)
	case ContinueKw:
		m := p.start()
		p.bump(ContinueKw)
		if p.at(LifetimeIdent) {
			lifetime(p)
		}
		done = m.complete(p, ContinueExpr)
	case MoveKw, Pipe:
		done = closureExpr(p)
	case AsyncKw:
		switch {
		case la == LCurly || (la == MoveKw && p.nth(2) == LCurly):
			m := p.start()
			p.bump(AsyncKw)
			p.eat(MoveKw)
			stmtList(p)
			done = m.complete(p, BlockExpr)
		case la == MoveKw || la == Pipe:
			done = closureExpr(p)
		default:
			p.errRecover("expected expression", exprRecoverySet)
			return completedMarker{}, blockLikeNot, false
		}
	case UnsafeKw:
		if la != LCurly {
			p.errRecover("expected expression", exprRecoverySet)
			return completedMarker{}, blockLikeNot, false
		}
		m := p.start()
		p.bump(UnsafeKw)
		stmtList(p)
		done = m.complete(p, BlockExpr)
	case LifetimeIdent:
		if la != Colon {
			p.errRecover("expected expression", exprRecoverySet)
			return completedMarker{}, blockLikeNot, false
		}
		m := p.start()
		l := p.start()
		lifetime(p)
		p.bump(Colon)
		l.complete(p, Label)
		switch p.current() {
		case LoopKw:
			done = loopExpr(p, m)
		case WhileKw:
			done = whileExpr(p, m)
		case ForKw:
			done = forExpr(p, m)
		case LCurly:
			stmtList(p)
			done = m.complete(p, BlockExpr)
		default:
			p.error("expected a loop or block")
			m.complete(p, Error)
			return completedMarker{}, blockLikeNot, false
		}
	case LCurly:
		m := p.start()
		stmtList(p)
		done = m.complete(p, BlockExpr)
	default:
		p.errRecover("expected expression", exprRecoverySet)
		return completedMarker{}, blockLikeNot, false
	}
	return done, isBlockLike(done.kind), true
}

func pathExpr(p *parser, r restrictions) (completedMarker, blockLike) {
	m := p.start()
	exprPath(p)
	switch {
	case p.at(LCurly) && !r.forbidStructs:
		recordExprFieldList(p)
		return m.complete(p, RecordExpr), blockLikeNot
	case p.at(Bang) && !p.at(Neq):
		bl := macroCallAfterBang(p)
		call := m.complete(p, MacroCall)
		return call.precede(p).complete(p, MacroExpr), bl
	default:
		return m.complete(p, PathExpr), blockLikeNot
	}
}

func recordExprFieldList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	for !p.at(EOF) && !p.at(RCurly) {
		f := p.start()
		outerAttrs(p)
		switch {
		case p.at(Ident) || p.at(IntNumber):
			if p.nth(1) == Colon && !p.nthAt(1, ColonColon) {
				nameRefOrIndex(p)
				p.bump(Colon)
			}
			parseExpr(p)
			f.complete(p, RecordExprField)
		case p.at(DotDot):
			f.abandon(p)
			p.bump(DotDot)
			if !p.at(RCurly) {
				parseExpr(p)
			}
		case p.at(LCurly):
			f.abandon(p)
			errorBlock(p, "expected a field")
		default:
			f.abandon(p)
			p.errAndBump("expected identifier")
		}
		if !p.at(RCurly) {
			p.expect(Comma)
		}
	}
	p.expect(RCurly)
	m.complete(p, RecordExprFieldList)
}

func tupleExpr(p *parser) completedMarker {
	m := p.start()
	p.bump(LParen)
	var sawComma, sawExpr bool
	for !p.at(EOF) && !p.at(RParen) {
		sawExpr = true
		if !p.atSet(exprFirst) {
			p.error("expected expression")
			break
		}
		parseExpr(p)
		if !p.at(RParen) {
			sawComma = true
			p.expect(Comma)
		}
	}
	p.expect(RParen)

	if sawExpr && !sawComma {
		return m.complete(p, ParenExpr)
	}
	return m.complete(p, TupleExpr)
}

func arrayExpr(p *parser) completedMarker {
	m := p.start()
	p.bump(LBrack)
	first := true
	for !p.at(EOF) && !p.at(RBrack) {
		if !p.atSet(exprFirst) {
			p.error("expected expression")
			break
		}
		parseExpr(p)
		// [x; n]
		if first && p.eat(Semicolon) {
			parseExpr(p)
			break
		}
		first = false
		if !p.at(RBrack) && !p.expect(Comma) {
			break
		}
	}
	p.expect(RBrack)
	return m.complete(p, ArrayExpr)
}

func ifExpr(p *parser) completedMarker {
	m := p.start()
	p.bump(IfKw)
	parseExprNoStruct(p)
	blockExpr(p)
	if p.eat(ElseKw) {
		if p.at(IfKw) {
			ifExpr(p)
		} else {
			blockExpr(p)
		}
	}
	return m.complete(p, IfExpr)
}

func loopExpr(p *parser, m marker) completedMarker {
	p.bump(LoopKw)
	blockExpr(p)
	return m.complete(p, LoopExpr)
}

func whileExpr(p *parser, m marker) completedMarker {
	p.bump(WhileKw)
	parseExprNoStruct(p)
	blockExpr(p)
	return m.complete(p, WhileExpr)
}

func forExpr(p *parser, m marker) completedMarker {
	p.bump(ForKw)
	patternTop(p)
	p.expect(InKw)
	parseExprNoStruct(p)
	blockExpr(p)
	return m.complete(p, ForExpr)
}

func matchExpr(p *parser) completedMarker {
	m := p.start()
	p.bump(MatchKw)
	parseExprNoStruct(p)
	if p.at(LCurly) {
		matchArmList(p)
	} else {
		p.error("expected `{`")
	}
	return m.complete(p, MatchExpr)
}

func matchArmList(p *parser) {
	m := p.start()
	p.bump(LCurly)
	innerAttrs(p)
	for !p.at(EOF) && !p.at(RCurly) {
		if p.at(LCurly) {
			errorBlock(p, "expected match arm")
			continue
		}
		matchArm(p)
	}
	p.expect(RCurly)
	m.complete(p, MatchArmList)
}

func matchArm(p *parser) {
	m := p.start()
	outerAttrs(p)
	patternTopR(p, tokenSet{})
	if p.at(IfKw) {
		g := p.start()
		p.bump(IfKw)
		parseExpr(p)
		g.complete(p, MatchGuard)
	}
	p.expect(FatArrow)

	bl := blockLikeNot
	if _, b, ok := parseExprBP(p, nil, restrictions{preferStmt: true}, 1); ok {
		bl = b
	}
	if !p.eat(Comma) && bl != blockLikeBlock && !p.at(RCurly) {
		p.error("expected `,`")
	}
	m.complete(p, MatchArm)
}

func closureExpr(p *parser) completedMarker {
	m := p.start()
	p.eat(AsyncKw)
	p.eat(MoveKw)

	if !p.at(Pipe) {
		p.error("expected `|`")
		return m.complete(p, ClosureExpr)
	}

	params := p.start()
	p.bump(Pipe)
	for !p.at(EOF) && !p.at(Pipe) {
		param := p.start()
		outerAttrs(p)
		if !p.atSet(patternFirst) {
			param.abandon(p)
			p.error("expected value parameter")
			break
		}
		patternSingle(p)
		if p.at(Colon) {
			ascription(p)
		}
		param.complete(p, Param)
		if !p.at(Pipe) && !p.expect(Comma) {
			break
		}
	}
	p.expect(Pipe)
	params.complete(p, ParamList)

	switch {
	case p.at(ThinArrow):
		optRetType(p)
		blockExpr(p)
	case p.atSet(exprFirst):
		parseExpr(p)
	default:
		p.error("expected expression")
	}
	return m.complete(p, ClosureExpr)
}
