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

// Input is the token stream the parser consumes: a sequence of non-trivia
// token kinds, with a joint bit on each token that is immediately followed by
// the next one, and a contextual keyword kind for identifiers.
//
// The parser glues compound operators out of joint single-character tokens,
// so that, e.g., `<` `<` is treated as `<<` only if there is no space between
// them.
type Input struct {
	kinds      []Kind
	joint      []uint64
	contextual []Kind
}

// Push appends a token of the given kind.
func (in *Input) Push(kind Kind) {
	in.push(kind, EOF)
}

// PushIdent appends an identifier, which may be the contextual keyword
// contextual. Pass [EOF] if the identifier is not a contextual keyword.
func (in *Input) PushIdent(contextual Kind) {
	in.push(Ident, contextual)
}

func (in *Input) push(kind, contextual Kind) {
	idx := len(in.kinds)
	if idx%64 == 0 {
		in.joint = append(in.joint, 0)
	}
	in.kinds = append(in.kinds, kind)
	in.contextual = append(in.contextual, contextual)
}

// WasJoint marks the last pushed token as joint with the next one.
//
// Panics if nothing has been pushed yet.
func (in *Input) WasJoint() {
	n := len(in.kinds)
	if n == 0 {
		panic("tokentree/parser: WasJoint called on empty input")
	}
	idx := n - 1
	in.joint[idx/64] |= 1 << (idx % 64)
}

// Len returns the number of tokens in this input.
func (in *Input) Len() int {
	return len(in.kinds)
}

// Kind returns the kind of the idx-th token, or [EOF] if idx is out of range.
func (in *Input) Kind(idx int) Kind {
	if idx < 0 || idx >= len(in.kinds) {
		return EOF
	}
	return in.kinds[idx]
}

// ContextualKind returns the contextual keyword kind of the idx-th token, or
// [EOF] if it has none.
func (in *Input) ContextualKind(idx int) Kind {
	if idx < 0 || idx >= len(in.contextual) {
		return EOF
	}
	return in.contextual[idx]
}

// IsJoint returns whether the idx-th token is immediately followed by the next
// one.
func (in *Input) IsJoint(idx int) bool {
	if idx < 0 || idx >= len(in.kinds) {
		return false
	}
	return in.joint[idx/64]&(1<<(idx%64)) != 0
}
