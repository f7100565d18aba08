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

package parser

// tokenSet is a set of token kinds.
type tokenSet [4]uint64

// Kinds must fit in a tokenSet.
var _ [256 - kindCount]struct{}

func newTokenSet(kinds ...Kind) tokenSet {
	var ts tokenSet
	for _, k := range kinds {
		ts[k/64] |= 1 << (k % 64)
	}
	return ts
}

func (ts tokenSet) union(that tokenSet) tokenSet {
	for i := range ts {
		ts[i] |= that[i]
	}
	return ts
}

func (ts tokenSet) contains(k Kind) bool {
	return ts[k/64]&(1<<(k%64)) != 0
}
