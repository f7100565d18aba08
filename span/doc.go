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

// Package span provides the source-position provenance used by token trees:
// [Span], [TextRange], and [Map], which maps offsets of decoded text back onto
// the spans they came from.
//
// Spans are opaque to the rest of tokentree. The only operation other packages
// perform on them is a "same syntax context" check, which is always injected
// as a [ContextEq] rather than assumed.
package span
