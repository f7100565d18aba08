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

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/tokentree/span"
)

func TestTextRange(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	r := span.NewRange(2, 6)
	assert.Equal(uint32(4), r.Len())
	assert.True(r.Contains(2))
	assert.False(r.Contains(6))
	assert.True(r.ContainsInclusive(6))
	assert.True(r.ContainsRange(span.NewRange(3, 5)))
	assert.False(r.ContainsRange(span.NewRange(3, 7)))
	assert.Equal(span.NewRange(1, 6), r.Cover(span.At(1, 2)))
	assert.Equal(span.NewRange(5, 9), span.At(1, 4).Shift(4))
	assert.Equal("cdef", r.Slice("abcdefgh"))
	assert.Equal("2..6", r.String())

	x, ok := r.Intersect(span.NewRange(5, 10))
	assert.True(ok)
	assert.Equal(span.NewRange(5, 6), x)
	_, ok = r.Intersect(span.NewRange(7, 10))
	assert.False(ok)

	assert.True(span.Empty(3).IsEmpty())
	assert.Panics(func() { span.NewRange(3, 2) })
	assert.Panics(func() { span.Offset(-1) })
}
