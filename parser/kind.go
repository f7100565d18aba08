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

type kindClass byte

const (
	classOther kindClass = iota
	classPunct
	classStrictKw
	classEditionKw
	classContextualKw
	classLiteral
	classToken
	classNode
)

type kindInfo struct {
	name  string
	text  string
	class kindClass
}

// The first edition in which each edition-dependent keyword is reserved.
var keywordEditions = map[Kind]Edition{
	AsyncKw: Edition2018,
	AwaitKw: Edition2018,
	DynKw:   Edition2018,
	GenKw:   Edition2024,
	TryKw:   Edition2018,
}

var (
	keywords   = make(map[string]Kind)
	contextual = make(map[string]Kind)
	chars      = make(map[rune]Kind)
)

func init() {
	for k := range kindCount {
		info := kinds[k]
		switch info.class {
		case classStrictKw, classEditionKw:
			keywords[info.text] = k
		case classContextualKw:
			contextual[info.text] = k
		case classPunct:
			if r := []rune(info.text); len(r) == 1 {
				chars[r[0]] = k
			}
		}
	}
}

// String implements [fmt.Stringer].
//
// This returns the name of the kind in SCREAMING_CASE, as it appears in
// syntax tree dumps.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("parser.Kind(%d)", int(k))
	}
	return kinds[k].name
}

// Text returns the fixed text of a punctuation or keyword kind, or "" for
// kinds whose text varies.
func (k Kind) Text() string {
	if k >= kindCount {
		return ""
	}
	return kinds[k].text
}

// IsTrivia returns whether this is a kind of token the parser never sees.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment || k == Shebang
}

// IsPunct returns whether this is a punctuation kind, including compound
// operators.
func (k Kind) IsPunct() bool {
	return k < kindCount && kinds[k].class == classPunct
}

// IsLiteral returns whether this is a literal token kind. The keywords true
// and false are not literal kinds.
func (k Kind) IsLiteral() bool {
	return k < kindCount && kinds[k].class == classLiteral
}

// IsNode returns whether this kind names a node rather than a token.
func (k Kind) IsNode() bool {
	return k < kindCount && kinds[k].class == classNode
}

// IsKeyword returns whether this kind is a keyword in the given edition.
// Contextual keywords are never keywords.
func (k Kind) IsKeyword(edition Edition) bool {
	if k >= kindCount {
		return false
	}
	switch kinds[k].class {
	case classStrictKw:
		return true
	case classEditionKw:
		return edition >= keywordEditions[k]
	default:
		return false
	}
}

// IsAnyKeyword returns whether this kind is a keyword in some edition, or a
// contextual keyword.
func (k Kind) IsAnyKeyword() bool {
	if k >= kindCount {
		return false
	}
	switch kinds[k].class {
	case classStrictKw, classEditionKw, classContextualKw:
		return true
	default:
		return false
	}
}

// FromKeyword returns the keyword kind for an identifier, if it is a keyword
// in edition.
func FromKeyword(text string, edition Edition) (Kind, bool) {
	k, ok := keywords[text]
	if !ok || !k.IsKeyword(edition) {
		return Ident, false
	}
	return k, true
}

// FromContextualKeyword returns the contextual keyword kind for an
// identifier, if it is one in edition.
//
// Keywords that only become reserved in a later edition act as contextual
// keywords in earlier ones.
func FromContextualKeyword(text string, edition Edition) (Kind, bool) {
	if k, ok := contextual[text]; ok {
		return k, true
	}
	if k, ok := keywords[text]; ok && kinds[k].class == classEditionKw && !k.IsKeyword(edition) {
		return k, true
	}
	return Ident, false
}

// FromChar returns the kind of a single-character punctuation token.
func FromChar(c rune) (Kind, bool) {
	k, ok := chars[c]
	return k, ok
}
