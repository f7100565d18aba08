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

import "iter"

// WalkEvent is an event produced by a [Preorder] walk.
type WalkEvent struct {
	// Whether this is entering or leaving Element. Tokens are both entered
	// and left.
	Enter   bool
	Element Element
}

// Preorder walks a subtree, producing an event when entering and when leaving
// each element.
//
// Unlike a plain iterator, a Preorder can be told to skip the children of the
// node it just entered, via [Preorder.SkipSubtree].
type Preorder struct {
	root Element
	next WalkEvent
	done bool
}

// Preorder returns a walk over this node and everything beneath it.
func (n *Node) Preorder() *Preorder {
	return &Preorder{
		root: n.Element(),
		next: WalkEvent{Enter: true, Element: n.Element()},
	}
}

// Next returns the next event.
func (p *Preorder) Next() (WalkEvent, bool) {
	if p.done {
		return WalkEvent{}, false
	}

	ev := p.next
	el := ev.Element
	switch {
	case ev.Enter && el.node != nil:
		if len(el.node.children) > 0 {
			p.next = WalkEvent{Enter: true, Element: el.node.children[0]}
		} else {
			p.next = WalkEvent{Element: el}
		}
	case ev.Enter:
		p.next = WalkEvent{Element: el}
	case el == p.root:
		p.done = true
	default:
		if sib, ok := el.NextSibling(); ok {
			p.next = WalkEvent{Enter: true, Element: sib}
		} else {
			p.next = WalkEvent{Element: el.Parent().Element()}
		}
	}
	return ev, true
}

// SkipSubtree skips the rest of the innermost node that is currently open:
// the next event will be leaving it.
func (p *Preorder) SkipSubtree() {
	if p.done || !p.next.Enter {
		return
	}
	if parent := p.next.Element.Parent(); parent != nil && p.next.Element != p.root {
		p.next = WalkEvent{Element: parent.Element()}
	}
}

// All returns an iterator over the remaining events.
//
// Calling SkipSubtree from inside the loop is permitted.
func (p *Preorder) All() iter.Seq[WalkEvent] {
	return func(yield func(WalkEvent) bool) {
		for {
			ev, ok := p.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}
