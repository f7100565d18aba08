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

	"fortio.org/safecast"
)

// TextRange is a half-open range of byte offsets, [Start, End).
type TextRange struct {
	Start, End uint32
}

// NewRange returns the range [start, end).
//
// Panics if start > end.
func NewRange(start, end uint32) TextRange {
	if start > end {
		panic(fmt.Sprintf("tokentree/span: invalid range: %d > %d", start, end))
	}
	return TextRange{Start: start, End: end}
}

// At returns the range of length n starting at offset.
func At(offset, n uint32) TextRange {
	return NewRange(offset, offset+n)
}

// Empty returns the empty range at offset.
func Empty(offset uint32) TextRange {
	return TextRange{Start: offset, End: offset}
}

// RangeOf returns the byte range [start, end) given as ints.
//
// Panics if either offset does not fit in a uint32.
func RangeOf(start, end int) TextRange {
	return NewRange(Offset(start), Offset(end))
}

// Offset converts an int offset into the representation used by [TextRange].
//
// Panics if n is negative or does not fit in a uint32.
func Offset(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Sprintf("tokentree/span: offset out of range: %d", n))
	}
	return v
}

// Len returns the length of this range, in bytes.
func (r TextRange) Len() uint32 {
	return r.End - r.Start
}

// IsEmpty returns whether this range contains no bytes.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns whether offset lies inside this range. The end offset is
// not contained.
func (r TextRange) Contains(offset uint32) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsInclusive is like [TextRange.Contains], but also accepts the end
// offset.
func (r TextRange) ContainsInclusive(offset uint32) bool {
	return r.Start <= offset && offset <= r.End
}

// ContainsRange returns whether other lies entirely inside this range.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Cover returns the smallest range containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	return TextRange{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Intersect returns the intersection of r and other, if they overlap or touch.
func (r TextRange) Intersect(other TextRange) (TextRange, bool) {
	start, end := max(r.Start, other.Start), min(r.End, other.End)
	if start > end {
		return TextRange{}, false
	}
	return TextRange{Start: start, End: end}, true
}

// Shift returns this range moved right by n bytes.
func (r TextRange) Shift(n uint32) TextRange {
	return TextRange{Start: r.Start + n, End: r.End + n}
}

// Slice returns the text this range refers to within text.
func (r TextRange) Slice(text string) string {
	return text[r.Start:r.End]
}

// String implements [fmt.Stringer].
func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
