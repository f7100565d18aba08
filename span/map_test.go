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

package span_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/tokentree/span"
)

func mk(start, end uint32) span.Span {
	return span.Span{Range: span.NewRange(start, end), Anchor: span.Anchor{File: 1}}
}

func TestMapSpanAt(t *testing.T) {
	t.Parallel()

	var m span.Map
	m.Push(3, mk(10, 13))
	m.Push(4, mk(20, 21))
	m.Push(9, mk(30, 35))

	cases := []struct {
		offset uint32
		want   span.Span
		ok     bool
	}{
		{0, mk(10, 13), true},
		{2, mk(10, 13), true},
		{3, mk(20, 21), true},
		{4, mk(30, 35), true},
		{8, mk(30, 35), true},
		{9, span.Span{}, false},
	}
	for _, c := range cases {
		got, ok := m.SpanAt(c.offset)
		assert.Equal(t, c.ok, ok, "offset %d", c.offset)
		assert.Equal(t, c.want, got, "offset %d", c.offset)
	}

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, uint32(9), m.End())
	assert.Equal(t, mk(30, 35), m.SpanFor(span.NewRange(100, 101)))
}

func TestMapSpansForRange(t *testing.T) {
	t.Parallel()

	var m span.Map
	m.Push(3, mk(10, 13))
	m.Push(4, mk(20, 21))
	m.Push(9, mk(30, 35))

	type entry struct {
		Range span.TextRange
		Span  span.Span
	}
	collect := func(r span.TextRange) []entry {
		var out []entry
		for r, s := range m.SpansForRange(r) {
			out = append(out, entry{r, s})
		}
		return out
	}

	want := []entry{
		{span.NewRange(0, 3), mk(10, 13)},
		{span.NewRange(3, 4), mk(20, 21)},
	}
	if diff := cmp.Diff(want, collect(span.NewRange(1, 4))); diff != "" {
		t.Errorf("SpansForRange(1..4) mismatch (-want +got):\n%s", diff)
	}

	want = []entry{{span.NewRange(4, 9), mk(30, 35)}}
	if diff := cmp.Diff(want, collect(span.Empty(5))); diff != "" {
		t.Errorf("SpansForRange(5..5) mismatch (-want +got):\n%s", diff)
	}

	var all []entry
	for r, s := range m.All() {
		all = append(all, entry{r, s})
	}
	assert.Len(t, all, 3)
	assert.Equal(t, span.NewRange(4, 9), all[2].Range)
}

func TestMapPushOutOfOrder(t *testing.T) {
	t.Parallel()

	var m span.Map
	m.Push(5, mk(0, 5))
	m.Push(5, mk(1, 5))
	got, _ := m.SpanAt(0)
	assert.Equal(t, mk(1, 5), got)

	assert.Panics(t, func() { m.Push(4, mk(0, 1)) })
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := mk(0, 2)
	b := mk(5, 7)
	assert.Equal(t, mk(0, 7), span.Merge(a, b, nil))

	c := b.WithCtx(3)
	assert.Equal(t, a, span.Merge(a, c, nil))

	always := func(span.Span, span.Span) bool { return true }
	assert.Equal(t, span.NewRange(0, 7), span.Merge(a, c, always).Range)
}

func TestMappers(t *testing.T) {
	t.Parallel()

	fixed := span.Fixed(mk(1, 2))
	assert.Equal(t, mk(1, 2), fixed.SpanFor(span.NewRange(40, 50)))

	rm := span.RealMapper{File: 7}
	got := rm.SpanFor(span.NewRange(3, 4))
	assert.Equal(t, span.FileID(7), got.Anchor.File)
	assert.Equal(t, span.NewRange(3, 4), got.Range)
	assert.Equal(t, span.RootContext, got.Ctx)
	assert.Equal(t, "7:0@3..4#0", got.String())
}
