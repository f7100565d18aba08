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

type eventKind byte

const (
	evStart eventKind = iota
	evFinish
	evToken
	evFloatSplit
	evError
)

// event is a parser event. A start event with kind Tombstone and no forward
// parent is a no-op; this is what an abandoned or not-yet-completed marker
// looks like.
//
// forwardParent is the offset of the start event of the parent node, for
// nodes whose parent was created after them with [completedMarker.precede].
type event struct {
	kind          eventKind
	node          Kind
	forwardParent uint32
	n             int
	endsInDot     bool
	msg           string
}

func tombstone() event {
	return event{kind: evStart, node: Tombstone}
}

// process flattens parser events into an [Output], resolving forward parents
// and dropping tombstones.
func process(events []event) *Output {
	out := new(Output)
	var parents []Kind

	for i := 0; i < len(events); i++ {
		ev := events[i]
		switch ev.kind {
		case evStart:
			// A node and all of its forward parents start at this point,
			// outermost first.
			parents = append(parents[:0], ev.node)
			idx, fp := i, ev.forwardParent
			for fp != 0 {
				idx += int(fp)
				parent := events[idx]
				events[idx] = tombstone()
				parents = append(parents, parent.node)
				fp = parent.forwardParent
			}
			for j := len(parents) - 1; j >= 0; j-- {
				if parents[j] != Tombstone {
					out.enter(parents[j])
				}
			}
		case evFinish:
			out.exit()
		case evToken:
			out.token(ev.node, ev.n)
		case evFloatSplit:
			out.floatSplit(ev.endsInDot)
			// The finish event of the node around the float is emitted by
			// whoever consumes the split.
			if i+1 >= len(events) || events[i+1].kind != evFinish {
				panic("tokentree/parser: float split not followed by a finish event")
			}
			events[i+1] = tombstone()
		case evError:
			out.error(ev.msg)
		}
	}

	return out
}
