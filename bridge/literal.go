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

package bridge

import (
	"fortio.org/safecast"

	"github.com/bufbuild/tokentree/parser/lexer"
	"github.com/bufbuild/tokentree/span"
	"github.com/bufbuild/tokentree/tt"
)

// TokenToLiteral converts the text of a single literal token into a
// [tt.Literal] with the given span.
//
// The literal's symbol holds its contents with quotes, prefixes and hashes
// removed. A suffix of "" or "_" counts as no suffix. If text is not exactly
// one literal, or if a non-numeric literal carries a suffix, the result is a
// [tt.LitErr] literal whose symbol is all of text.
func TokenToLiteral(text string, sp span.Span) tt.Literal {
	lit, ok := lexer.ScanLiteral(text)
	if !ok {
		return errLiteral(text, sp)
	}

	var kind tt.LitKind
	switch lit.Kind {
	case lexer.LitInt:
		kind = tt.LitInteger
	case lexer.LitFloat:
		kind = tt.LitFloat
	case lexer.LitChar:
		kind = tt.LitChar
	case lexer.LitByte:
		kind = tt.LitByte
	case lexer.LitStr:
		kind = tt.LitStr
	case lexer.LitByteStr:
		kind = tt.LitByteStr
	case lexer.LitCStr:
		kind = tt.LitCStr
	case lexer.LitRawStr:
		kind = tt.Raw(tt.LitStrRaw, hashCount(lit.Hashes))
	case lexer.LitRawByteStr:
		kind = tt.Raw(tt.LitByteStrRaw, hashCount(lit.Hashes))
	case lexer.LitRawCStr:
		kind = tt.Raw(tt.LitCStrRaw, hashCount(lit.Hashes))
	default:
		return errLiteral(text, sp)
	}

	contents, suffix := lit.Split(text)
	out := tt.Literal{Symbol: tt.Intern(contents), Span: sp, Kind: kind}
	switch {
	case suffix == "" || suffix == "_":
	case !kind.IsNumeric():
		return errLiteral(text, sp)
	default:
		out.Suffix = tt.Intern(suffix)
	}
	return out
}

func errLiteral(text string, sp span.Span) tt.Literal {
	return tt.Literal{Symbol: tt.Intern(text), Span: sp, Kind: tt.LitErr}
}

// hashCount converts a scanned hash count to the form raw literal kinds
// carry. Ill-formed raw strings count as having no hashes.
func hashCount(n int) uint8 {
	v, err := safecast.Conv[uint8](n)
	if err != nil {
		return 0
	}
	return v
}
