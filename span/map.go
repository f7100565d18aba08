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

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
)

// Mapper maps ranges of some text to the spans they originated from.
type Mapper interface {
	SpanFor(TextRange) Span
}

// Map maps offsets of generated text back onto the [Span]s the text was
// produced from.
//
// The map is a sequence of contiguous intervals: each entry covers the bytes
// from the end of the previous entry up to (but not including) its own end.
// Keys in the underlying tree are interval ends, so that the interval
// containing an offset is the least key strictly greater than it.
//
// The zero value is empty and ready to use.
type Map struct {
	tree btree.Map[uint32, Span]
	last uint32
}

var _ Mapper = (*Map)(nil)

// Push records that the text ending at end (exclusive) and starting at the
// end of the previous entry came from span.
//
// Panics if end is less than the end of the last pushed entry. Pushing the
// same end twice replaces the earlier span.
func (m *Map) Push(end uint32, span Span) {
	if m.tree.Len() > 0 && end < m.last {
		panic(fmt.Sprintf("tokentree/span: pushed end offset %d before previous end %d", end, m.last))
	}
	m.tree.Set(end, span)
	m.last = end
}

// Len returns the number of entries in this map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.tree.Len()
}

// End returns the end offset of the last entry, or zero if the map is empty.
func (m *Map) End() uint32 {
	if m.Len() == 0 {
		return 0
	}
	return m.last
}

// SpanAt returns the span for the byte at offset.
//
// Returns false if offset lies past the last entry.
func (m *Map) SpanAt(offset uint32) (Span, bool) {
	if m.Len() == 0 {
		return Span{}, false
	}

	it := m.tree.Iter()
	if !it.Seek(offset + 1) {
		return Span{}, false
	}
	return it.Value(), true
}

// SpanFor implements [Mapper].
//
// This returns the span of the entry containing the start of r. If r starts
// past the last entry, the span of the last entry is returned.
func (m *Map) SpanFor(r TextRange) Span {
	if span, ok := m.SpanAt(r.Start); ok {
		return span
	}
	if m.Len() == 0 {
		return Span{}
	}
	_, span, _ := m.tree.Max()
	return span
}

// SpansForRange returns an iterator over every entry intersecting r, along
// with the range of text that entry covers.
func (m *Map) SpansForRange(r TextRange) iter.Seq2[TextRange, Span] {
	return func(yield func(TextRange, Span) bool) {
		if m.Len() == 0 {
			return
		}

		start := uint32(0)
		if prev, ok := m.prevEnd(r.Start); ok {
			start = prev
		}

		it := m.tree.Iter()
		for more := it.Seek(r.Start + 1); more; more = it.Next() {
			if !yield(TextRange{Start: start, End: it.Key()}, it.Value()) {
				return
			}
			start = it.Key()
			if start >= r.End {
				return
			}
		}
	}
}

// All returns an iterator over every entry of this map, in offset order.
func (m *Map) All() iter.Seq2[TextRange, Span] {
	return func(yield func(TextRange, Span) bool) {
		if m == nil {
			return
		}

		var start uint32
		m.tree.Scan(func(end uint32, span Span) bool {
			ok := yield(TextRange{Start: start, End: end}, span)
			start = end
			return ok
		})
	}
}

// prevEnd returns the greatest key that is less than or equal to offset.
func (m *Map) prevEnd(offset uint32) (uint32, bool) {
	var found uint32
	var ok bool
	m.tree.Descend(offset, func(end uint32, _ Span) bool {
		found, ok = end, true
		return false
	})
	return found, ok
}

// Fixed is a [Mapper] that maps every range onto the same span.
type Fixed Span

// SpanFor implements [Mapper].
func (f Fixed) SpanFor(TextRange) Span {
	return Span(f)
}

// RealMapper is a [Mapper] for text that was read directly out of a file: every
// range maps onto itself, anchored at the file's root with the root context.
type RealMapper struct {
	File FileID
}

// SpanFor implements [Mapper].
func (m RealMapper) SpanFor(r TextRange) Span {
	return Span{
		Range:  r,
		Anchor: Anchor{File: m.File, Ast: RootAstID},
		Ctx:    RootContext,
	}
}
