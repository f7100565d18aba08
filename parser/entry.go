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

// TopEntry is a grammar entry point that parses an entire input.
//
// All entry points except the item and statement ones parse one construct.
// If tokens are left over, the whole input is wrapped in an ERROR node.
type TopEntry byte

const (
	EntrySourceFile TopEntry = iota
	EntryMacroStmts
	EntryMacroItems
	EntryPattern
	EntryType
	EntryExpr
	EntryMetaItem
)

// String implements [fmt.Stringer].
func (e TopEntry) String() string {
	switch e {
	case EntrySourceFile:
		return "SourceFile"
	case EntryMacroStmts:
		return "MacroStmts"
	case EntryMacroItems:
		return "MacroItems"
	case EntryPattern:
		return "Pattern"
	case EntryType:
		return "Type"
	case EntryExpr:
		return "Expr"
	case EntryMetaItem:
		return "MetaItem"
	default:
		return fmt.Sprintf("parser.TopEntry(%d)", int(e))
	}
}

// ParseEntry parses the name of an entry point, as accepted on command lines:
// one of file, stmts, items, pattern, type, expr or meta.
func ParseEntry(s string) (TopEntry, error) {
	switch s {
	case "file":
		return EntrySourceFile, nil
	case "stmts":
		return EntryMacroStmts, nil
	case "items":
		return EntryMacroItems, nil
	case "pattern", "pat":
		return EntryPattern, nil
	case "type", "ty":
		return EntryType, nil
	case "expr":
		return EntryExpr, nil
	case "meta":
		return EntryMetaItem, nil
	default:
		return 0, fmt.Errorf("unknown entry point %q", s)
	}
}

// Parse parses in, starting at this entry point.
func (e TopEntry) Parse(in *Input, edition Edition) *Output {
	p := newParser(in, edition)
	switch e {
	case EntrySourceFile:
		sourceFile(p)
	case EntryMacroStmts:
		macroStmts(p)
	case EntryMacroItems:
		macroItems(p)
	case EntryPattern:
		single(p, patternTop)
	case EntryType:
		single(p, parseType)
	case EntryExpr:
		single(p, func(p *parser) { parseExpr(p) })
	case EntryMetaItem:
		single(p, meta)
	default:
		panic(fmt.Sprintf("tokentree/parser: unknown entry point %v", e))
	}
	return process(p.finish())
}

func sourceFile(p *parser) {
	m := p.start()
	p.eat(Shebang)
	modContents(p, false)
	m.complete(p, SourceFile)
}

func macroItems(p *parser) {
	m := p.start()
	modContents(p, false)
	m.complete(p, MacroItems)
}

func macroStmts(p *parser) {
	m := p.start()
	for !p.at(EOF) {
		if p.at(RCurly) {
			e := p.start()
			p.error("unmatched `}`")
			p.bump(RCurly)
			e.complete(p, Error)
			continue
		}
		stmt(p, semiOptional)
	}
	m.complete(p, MacroStmts)
}

// single parses one construct with parse. Trailing tokens are an error.
func single(p *parser, parse func(*parser)) {
	m := p.start()
	parse(p)
	if p.at(EOF) {
		m.abandon(p)
		return
	}
	p.error("unexpected trailing tokens")
	for !p.at(EOF) {
		p.bumpAny()
	}
	m.complete(p, Error)
}
