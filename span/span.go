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

package span

import "fmt"

// FileID identifies a source file. The meaning of the value is up to the
// caller; this package never interprets it.
type FileID uint32

// AstID identifies a syntax node within a file that spans are relative to.
// RootAstID refers to the whole file.
type AstID uint32

// RootAstID is the [AstID] of a file's root node.
const RootAstID AstID = 0

// SyntaxContext is an opaque hygiene context. Two spans with the same anchor
// but different contexts are considered to come from different expansions.
type SyntaxContext uint32

// RootContext is the context of code that was not produced by an expansion.
const RootContext SyntaxContext = 0

// Anchor is what the range of a [Span] is relative to.
type Anchor struct {
	File FileID
	Ast  AstID
}

// String implements [fmt.Stringer].
func (a Anchor) String() string {
	return fmt.Sprintf("%d:%d", a.File, a.Ast)
}

// Spanner is any type with a [Span].
type Spanner interface {
	Span() Span
}

// Span is the source-position provenance attached to every token tree leaf and
// every delimiter.
//
// Spans are plain values: they are comparable and cheap to copy.
type Span struct {
	// The range of this span, relative to Anchor.
	Range TextRange
	// What the range is relative to.
	Anchor Anchor
	// The hygiene context this span was produced in.
	Ctx SyntaxContext
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// IsZero returns whether this is the zero span.
func (s Span) IsZero() bool {
	return s == Span{}
}

// WithRange returns a copy of s with a different range.
func (s Span) WithRange(r TextRange) Span {
	s.Range = r
	return s
}

// WithCtx returns a copy of s with a different syntax context.
func (s Span) WithCtx(ctx SyntaxContext) Span {
	s.Ctx = ctx
	return s
}

// String implements [fmt.Stringer].
//
// The format is file:ast@start..end#ctx.
func (s Span) String() string {
	return fmt.Sprintf("%v@%v#%d", s.Anchor, s.Range, s.Ctx)
}

// ContextEq is a predicate that decides whether two spans come from "the same
// syntax context", i.e., whether they may be merged into one.
type ContextEq func(a, b Span) bool

// SameContext is the default [ContextEq]: it compares anchors and contexts.
func SameContext(a, b Span) bool {
	return a.Anchor == b.Anchor && a.Ctx == b.Ctx
}

// Merge merges b into a. If eq reports that both come from the same context,
// the result covers both ranges; otherwise a is returned unchanged.
//
// If eq is nil, [SameContext] is used.
func Merge(a, b Span, eq ContextEq) Span {
	if eq == nil {
		eq = SameContext
	}
	if !eq(a, b) {
		return a
	}
	a.Range = a.Range.Cover(b.Range)
	return a
}
