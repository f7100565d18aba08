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

package intern_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/internal/intern"
)

func TestTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		inline bool
	}{
		{text: ""},
		{text: "x", inline: true},
		{text: "u8", inline: true},
		{text: "self", inline: true},
		{text: "_", inline: true},
		{text: "1.5", inline: true},
		{text: "f64_x", inline: true},
		{text: "1.", inline: false},
		{text: "doc", inline: true},
		{text: "macro", inline: true},
		{text: "macro_rules", inline: false},
		{text: "r#fn", inline: false},
		{text: " a \"b\"", inline: false},
		{text: "ünï", inline: false},
	}

	var table intern.Table
	for _, test := range tests {
		sym := table.Intern(test.text)
		assert.Equal(t, test.text, table.Value(sym), "%#v", sym)
		assert.Equal(t, test.inline, sym.IsInlined(), "%q", test.text)
		assert.Equal(t, test.text == "", sym.IsEmpty(), "%q", test.text)

		again, ok := table.Query(test.text)
		require.True(t, ok, "%q", test.text)
		assert.Equal(t, sym, again, "%q", test.text)
	}
	assert.Equal(t, 5, table.Len())

	_, ok := table.Query("never interned")
	assert.False(t, ok)
}

func TestConcurrentIntern(t *testing.T) {
	t.Parallel()

	words := []string{"identifier", "lifetime", "punctuation", "literal"}

	var table intern.Table
	syms := make([][]intern.Symbol, 8)
	var wg sync.WaitGroup
	for i := range syms {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				syms[i] = append(syms[i], table.Intern(w))
			}
		}()
	}
	wg.Wait()

	for _, got := range syms {
		assert.Equal(t, syms[0], got)
	}
	for i, w := range words {
		assert.Equal(t, w, table.Value(syms[0][i]))
	}
	assert.Equal(t, len(words), table.Len())
}

func TestGlobal(t *testing.T) {
	t.Parallel()

	sym := intern.Intern("a rather long identifier")
	assert.Equal(t, sym, intern.Intern("a rather long identifier"))
	assert.Equal(t, "a rather long identifier", sym.String())
	assert.Equal(t, `intern.Symbol("a rather long identifier")`, sym.GoString())
	assert.True(t, intern.Intern("").IsEmpty())
}
