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

package slicesx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/tokentree/internal/ext/slicesx"
)

func TestStack(t *testing.T) {
	t.Parallel()

	s := []int{1, 2, 3}
	v, ok := slicesx.Last(s)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	*slicesx.LastPointer(s) = 4
	v, ok = slicesx.Pop(&s)
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, []int{1, 2}, s)

	_, ok = slicesx.Get(s, 2)
	assert.False(t, ok)
	_, ok = slicesx.Get(s, -1)
	assert.False(t, ok)

	var empty []int
	_, ok = slicesx.Pop(&empty)
	assert.False(t, ok)
	assert.Nil(t, slicesx.LastPointer(empty))

	assert.True(t, slicesx.Among('x', 'a', 'x'))
	assert.False(t, slicesx.Among('y', 'a', 'x'))
}
