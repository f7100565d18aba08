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

package report

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bufbuild/tokentree/span"
)

// Spanner is any type that has a [Span].
type Spanner interface {
	Span() Span
}

// Location is a user-displayable location within a source file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed. Columns are measured
	// in runes.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int
}

// File is a source file involved in a diagnostic.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path, text string

	once sync.Once
	// The offset of the start of each line. The last entry is the offset just
	// past the final newline, which may be len(text).
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path. It does not need to be a real path.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Span returns the span [start, end) of this file.
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{File: f, Start: start, End: end}
}

// SpanOf returns the span of this file covered by r.
func (f *File) SpanOf(r span.TextRange) Span {
	return f.Span(int(r.Start), int(r.End))
}

// Location computes the location of a byte offset.
//
// This operation is O(log n) in the number of lines.
func (f *File) Location(offset int) Location {
	if f == nil {
		return Location{Offset: offset, Line: 1, Column: 1}
	}

	lines := f.lines()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}
	var column int
	for range f.text[lines[line]:offset] {
		column++
	}
	return Location{Offset: offset, Line: line + 1, Column: column + 1}
}

// Line returns the text of the given 1-indexed line, without its trailing
// newline.
func (f *File) Line(line int) string {
	lines := f.lines()
	start := lines[line-1]
	end := len(f.text)
	if line < len(lines) {
		end = lines[line]
	}
	return strings.TrimSuffix(f.text[start:end], "\n")
}

// LineCount returns the number of lines in this file.
func (f *File) LineCount() int {
	return len(f.lines())
}

func (f *File) lines() []int {
	f.once.Do(func() {
		f.lineIndex = append(f.lineIndex, 0)
		text := f.text
		next := 0
		for {
			nl := strings.IndexByte(text, '\n') + 1
			if nl == 0 {
				break
			}
			text = text[nl:]
			next += nl
			f.lineIndex = append(f.lineIndex, next)
		}
	})
	return f.lineIndex
}

// Span is a range of a [File].
type Span struct {
	File       *File
	Start, End int
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// IsZero returns whether this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// Text returns the text this span covers.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// StartLoc returns the location of the start of this span.
func (s Span) StartLoc() Location {
	return s.File.Location(s.Start)
}

// EndLoc returns the location of the end of this span.
func (s Span) EndLoc() Location {
	return s.File.Location(s.End)
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	start, end := s.StartLoc(), s.EndLoc()
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.File.Path(), start.Line, start.Column, end.Line, end.Column)
}
