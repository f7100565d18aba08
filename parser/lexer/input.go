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

package lexer

import (
	"strings"

	"github.com/bufbuild/tokentree/parser"
)

// ToInput converts these tokens into parser input.
//
// Trivia is dropped. A token is marked joint with the next one if no trivia
// separates them. A float literal with a fractional part, such as 1.2, is
// always marked joint, which tells the parser to split it if it appears in
// a field access.
func (l *Lexed) ToInput() *parser.Input {
	in := new(parser.Input)
	var wasJoint bool
	for i := range l.Len() {
		kind := l.Kind(i)
		switch {
		case kind.IsTrivia():
			wasJoint = false
		case kind == parser.Ident:
			ctx, ok := parser.FromContextualKeyword(l.Text(i), l.edition)
			if !ok {
				ctx = parser.EOF
			}
			in.PushIdent(ctx)
		default:
			if wasJoint {
				in.WasJoint()
			}
			in.Push(kind)
			wasJoint = true
			if kind == parser.FloatNumber {
				if strings.HasSuffix(l.Text(i), ".") {
					wasJoint = false
				} else {
					in.WasJoint()
				}
			}
		}
	}
	return in
}
