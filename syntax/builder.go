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

package syntax

import (
	"fmt"
	"strings"

	"github.com/bufbuild/tokentree/internal/ext/slicesx"
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/report"
	"github.com/bufbuild/tokentree/span"
)

// Error is a syntax error, positioned within the text of a tree.
type Error struct {
	Message string
	Range   span.TextRange
}

// String implements [fmt.Stringer].
func (e Error) String() string {
	return fmt.Sprintf("error %v: %s", e.Range, e.Message)
}

// TreeBuilder builds a tree out of a sequence of start, token, and finish
// calls.
//
// The zero value is ready to use.
type TreeBuilder struct {
	stack  []*Node
	root   *Node
	offset uint32
	errors []Error
}

// StartNode opens a new node of the given kind as a child of the current
// node.
//
// Panics if the root has already been finished.
func (b *TreeBuilder) StartNode(kind parser.Kind) {
	if b.root != nil {
		panic("tokentree/syntax: started a node after the root was finished")
	}
	node := &Node{kind: kind, offset: b.offset}
	if parent, ok := slicesx.Last(b.stack); ok {
		node.parent = parent
		node.index = len(parent.children)
		parent.children = append(parent.children, node.Element())
	}
	b.stack = append(b.stack, node)
}

// Token appends a token to the current node.
//
// Panics if no node is open.
func (b *TreeBuilder) Token(kind parser.Kind, text string) {
	parent, ok := slicesx.Last(b.stack)
	if !ok {
		panic("tokentree/syntax: token outside of any node")
	}
	tok := &Token{
		kind:   kind,
		parent: parent,
		index:  len(parent.children),
		offset: b.offset,
		text:   text,
	}
	parent.children = append(parent.children, tok.Element())
	b.offset += span.Offset(len(text))
}

// FinishNode closes the current node.
//
// Panics if no node is open.
func (b *TreeBuilder) FinishNode() {
	node, ok := slicesx.Pop(&b.stack)
	if !ok {
		panic("tokentree/syntax: finished more nodes than were started")
	}
	node.len = b.offset - node.offset
	if len(b.stack) == 0 {
		b.root = node
	}
}

// Error records a syntax error at the given text offset.
func (b *TreeBuilder) Error(message string, offset uint32) {
	b.ErrorAt(message, span.Empty(offset))
}

// ErrorAt records a syntax error covering the given range.
func (b *TreeBuilder) ErrorAt(message string, r span.TextRange) {
	b.errors = append(b.errors, Error{Message: message, Range: r})
}

// Offset returns the length of the text appended so far.
func (b *TreeBuilder) Offset() uint32 {
	return b.offset
}

// Depth returns the number of nodes that are currently open.
func (b *TreeBuilder) Depth() int {
	return len(b.stack)
}

// Finish completes the tree.
//
// Panics if a node is still open. If no node was ever started, the result is
// an empty [parser.Error] node.
func (b *TreeBuilder) Finish() *Parse {
	if len(b.stack) > 0 {
		panic(fmt.Sprintf("tokentree/syntax: finished tree with %d unclosed nodes", len(b.stack)))
	}
	root := b.root
	if root == nil {
		root = &Node{kind: parser.Error}
	}
	parse := &Parse{root: root, errors: b.errors}
	*b = TreeBuilder{}
	return parse
}

// Parse is a finished syntax tree plus the errors found while producing it.
type Parse struct {
	root   *Node
	errors []Error
}

// Root returns the root of the tree.
func (p *Parse) Root() *Node {
	return p.root
}

// Errors returns every error recorded while building the tree, in the order
// they were found.
func (p *Parse) Errors() []Error {
	return p.errors
}

// Ok returns whether the tree is free of errors.
func (p *Parse) Ok() bool {
	return len(p.errors) == 0
}

// Diagnose appends an error diagnostic to r for each syntax error. Ranges are
// interpreted relative to file.
func (p *Parse) Diagnose(file *report.File, r *report.Report) {
	for _, err := range p.errors {
		r.Error(
			report.Message("%s", err.Message),
			report.Snippet(file.SpanOf(err.Range)),
			report.Tag("parse"),
		)
	}
}

// Debug returns a dump of the tree followed by its errors, for use in tests.
func (p *Parse) Debug() string {
	var b strings.Builder
	b.WriteString(p.root.Debug())
	for _, err := range p.errors {
		b.WriteString(err.String())
		b.WriteByte('\n')
	}
	return b.String()
}
