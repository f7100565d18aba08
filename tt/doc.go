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

// Package tt provides a flat, delimiter-aware token tree.
//
// # Flat Encoding
//
// A token tree is not stored as a tree of pointers. Instead, every leaf and
// every delimited group is one [TokenTree] entry of a single slice. A group is
// recorded as a [Subtree] header followed by all of its descendants, and the
// header records how many entries follow it:
//
//	foo(1, 2)
//
//	0: SUBTREE $$ len=5
//	1:   IDENT foo
//	2:   SUBTREE () len=3
//	3:     LITERAL 1
//	4:     PUNCT ,
//	5:     LITERAL 2
//
// For every subtree at index i with length n, indices [i+1, i+1+n) hold exactly
// its descendants. This makes slicing out a group, or splicing in a
// replacement, a pair of slice operations. A [TopSubtree] is such a slice whose
// first entry covers all the others.
//
// # Building And Reading
//
// Token trees are built incrementally with a [Builder], read through borrowed
// [View]s and [SubtreeView]s, and walked one nesting level at a time with an
// [Iter]. [Transform] performs an in-place visit-and-replace rewrite.
//
// # Invariants
//
// Violating the flat encoding (closing a group that was never opened, building
// with groups still open, slicing through the middle of a group) is a
// programming error and panics.
package tt
