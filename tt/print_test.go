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

package tt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/tokentree/tt"
)

func TestLiteralString(t *testing.T) {
	t.Parallel()

	lit := func(sym string, kind tt.LitKind, suffix string) tt.Literal {
		return tt.Literal{Symbol: tt.Intern(sym), Kind: kind, Suffix: tt.Intern(suffix)}
	}

	tests := []struct {
		lit  tt.Literal
		want string
	}{
		{lit("1", tt.LitInteger, "u8"), "1u8"},
		{lit("1.", tt.LitFloat, ""), "1."},
		{lit("a", tt.LitChar, ""), "'a'"},
		{lit("a", tt.LitByte, ""), "b'a'"},
		{lit(`a\n`, tt.LitStr, ""), `"a\n"`},
		{lit("abc", tt.LitByteStr, ""), `b"abc"`},
		{lit("abc", tt.LitCStr, ""), `c"abc"`},
		{lit("abc", tt.Raw(tt.LitStrRaw, 1), ""), `r#"abc"#`},
		{lit("abc", tt.Raw(tt.LitByteStrRaw, 0), ""), `br"abc"`},
		{lit("abc", tt.Raw(tt.LitCStrRaw, 2), ""), `cr##"abc"##`},
		{lit(`"x"bad`, tt.LitErr, ""), `"x"bad`},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.lit.String())
	}
}

func TestLitKind(t *testing.T) {
	t.Parallel()

	raw := tt.Raw(tt.LitStrRaw, 3)
	assert.Equal(t, tt.LitStrRaw, raw.Base())
	assert.Equal(t, uint8(3), raw.Hashes())
	assert.True(t, raw.IsRaw())
	assert.Equal(t, "StrRaw(3)", raw.String())
	assert.Equal(t, "Integer", tt.LitInteger.String())
	assert.True(t, tt.LitFloat.IsNumeric())
	assert.False(t, tt.LitStr.IsNumeric())
	assert.Panics(t, func() { tt.Raw(tt.LitStr, 1) })
}

func TestDebug(t *testing.T) {
	t.Parallel()

	want := strings.Join([]string{
		"SUBTREE $$ 0:0@0..0#0 0:0@0..0#0",
		"  IDENT   foo 0:0@0..3#0",
		"  SUBTREE () 0:0@3..4#0 0:0@8..9#0",
		"    LITERAL Integer 1 0:0@4..5#0",
		"    PUNCT   , [alone] 0:0@5..6#0",
		"    LITERAL Integer 2 0:0@7..8#0",
	}, "\n")
	assert.Equal(t, want, fooCall().Debug())
}
