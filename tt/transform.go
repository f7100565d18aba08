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

package tt

import (
	"fmt"
	"slices"
)

// Action is what a [Transform] callback wants done with the entry it was
// shown.
type Action struct {
	replace bool
	with    View
}

// Keep leaves the current entry in place. If it is a subtree, the transform
// descends into it.
func Keep() Action {
	return Action{}
}

// ReplaceWith replaces the current entry, including all of its descendants if
// it is a subtree, with the contents of view. The replacement is not visited.
func ReplaceWith(view View) Action {
	return Action{replace: true, with: view}
}

// Transform visits every entry of top in order, starting with the top
// subtree's own header, and applies the action f returns for it.
//
// f is shown a view of the current entry: a single leaf, or a subtree and all
// of its descendants. Replacing an entry keeps the lengths of all enclosing
// subtrees consistent.
//
// Panics if the result no longer starts with a subtree that covers the whole
// tree, which can only happen by replacing the top subtree itself.
func Transform(top *TopSubtree, f func(View) Action) {
	trees := top.trees
	top.trees = nil

	// Indices of the subtrees enclosing position i.
	var ancestors []int
	for i := 0; i < len(trees); {
		for len(ancestors) > 0 {
			idx := ancestors[len(ancestors)-1]
			if i < idx+1+trees[idx].length() {
				break
			}
			ancestors = ancestors[:len(ancestors)-1]
		}

		oldLen := 1 + trees[i].length()
		action := f(View{trees: trees[i : i+oldLen]})
		if !action.replace {
			if trees[i].IsSubtree() {
				ancestors = append(ancestors, i)
			}
			i++
			continue
		}

		// The replacement may alias trees, so it must be copied before
		// splicing.
		with := slices.Clone(action.with.trees)
		trees = slices.Replace(trees, i, i+oldLen, with...)
		i += len(with)

		delta := len(with) - oldLen
		for _, idx := range ancestors {
			trees[idx] = trees[idx].withLen(toLen(trees[idx].length() + delta))
		}
	}

	top.trees = trees
	if err := validate(trees); err != nil {
		panic(fmt.Sprintf("tokentree/tt: transform broke the token tree: %v", err))
	}
}
