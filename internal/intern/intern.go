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

// Package intern provides the process-wide symbol table used for identifier
// and literal text in token trees.
package intern

import (
	"fmt"
	"strings"
	"sync"
)

// Symbol is an interned string.
//
// Symbols compare cheaply. The zero value is the empty string.
//
// # Representation
//
// If the sign bit is cleared, the symbol is an index into the global table.
// Otherwise, it holds up to five bytes drawn from the char6 alphabet (see
// char6.go) inline, so short identifiers like "x", "self" or "u8" never touch
// the table at all.
type Symbol int32

// Intern interns s into the global table.
//
// This function may be called by multiple goroutines concurrently.
func Intern(s string) Symbol {
	return global.Intern(s)
}

// String returns the text of this symbol.
func (s Symbol) String() string {
	return global.Value(s)
}

// GoString implements [fmt.GoStringer].
func (s Symbol) GoString() string {
	return fmt.Sprintf("intern.Symbol(%q)", s.String())
}

// IsEmpty returns whether this is the empty symbol.
func (s Symbol) IsEmpty() bool {
	return s == 0
}

// IsInlined returns whether this symbol's text is stored inside the Symbol
// itself.
func (s Symbol) IsInlined() bool {
	return s < 0
}

var global Table

// Table is an interning table. The zero value is empty and ready to use.
type Table struct {
	mu    sync.RWMutex
	index map[string]Symbol
	table []string
}

// Intern interns s into this table.
//
// This function may be called by multiple goroutines concurrently.
func (t *Table) Intern(s string) Symbol {
	if sym, ok := t.Query(s); ok {
		return sym
	}
	return t.internSlow(s)
}

// Query returns the symbol for s, if s has already been interned.
//
// Strings short enough to be inlined are always considered interned.
func (t *Table) Query(s string) (Symbol, bool) {
	if sym, ok := encodeChar6(s); ok {
		return sym, true
	}

	t.mu.RLock()
	sym, ok := t.index[s]
	t.mu.RUnlock()
	return sym, ok
}

// Value converts sym back into its text.
//
// If sym came from a different table, the result is unspecified.
func (t *Table) Value(sym Symbol) string {
	switch {
	case sym == 0:
		return ""
	case sym < 0:
		return decodeChar6(sym)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table[int(sym)-1]
}

// Len returns the number of strings stored in this table, not counting
// inlined ones.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.table)
}

func (t *Table) internSlow(s string) Symbol {
	// Don't keep alive whatever larger buffer s may point into.
	s = strings.Clone(s)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Someone may have raced us between RUnlock and Lock.
	if sym, ok := t.index[s]; ok {
		return sym
	}

	t.table = append(t.table, s)
	sym := Symbol(len(t.table))
	if sym < 0 {
		panic(fmt.Sprintf("tokentree/intern: %d symbols exhausted", len(t.table)))
	}

	if t.index == nil {
		t.index = make(map[string]Symbol)
	}
	t.index[s] = sym
	return sym
}
