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

import (
	"fmt"
	"iter"
)

// StepKind is the kind of a [Step].
type StepKind byte

const (
	StepToken      StepKind = iota // Consume input tokens as one token.
	StepEnter                      // Start a node.
	StepExit                       // Finish the innermost node.
	StepFloatSplit                 // Split a float literal into a field access.
	StepError                      // Record a syntax error.
)

// String implements [fmt.Stringer].
func (k StepKind) String() string {
	switch k {
	case StepToken:
		return "Token"
	case StepEnter:
		return "Enter"
	case StepExit:
		return "Exit"
	case StepFloatSplit:
		return "FloatSplit"
	case StepError:
		return "Error"
	default:
		return fmt.Sprintf("parser.StepKind(%d)", int(k))
	}
}

// Step is a single instruction for building a syntax tree out of a parser's
// [Input].
type Step struct {
	Kind StepKind

	// For StepToken, the kind of the produced token. N is the number of input
	// tokens it consumes; it is greater than one for glued operators.
	//
	// For StepEnter, the kind of the node.
	Node Kind
	N    int

	// For StepFloatSplit. If set, the float ends in a dot (`1.`), so that
	// splitting it yields only a field name and a dot.
	EndsInDot bool

	// For StepError.
	Error string
}

// Output is the flat result of parsing: a sequence of [Step]s. The steps are
// balanced, except that a float split step leaves one extra node open for
// the consumer to close.
type Output struct {
	steps []Step
}

func (o *Output) token(kind Kind, n int) {
	o.steps = append(o.steps, Step{Kind: StepToken, Node: kind, N: n})
}

func (o *Output) enter(kind Kind) {
	o.steps = append(o.steps, Step{Kind: StepEnter, Node: kind})
}

func (o *Output) exit() {
	o.steps = append(o.steps, Step{Kind: StepExit})
}

func (o *Output) floatSplit(endsInDot bool) {
	o.steps = append(o.steps, Step{Kind: StepFloatSplit, EndsInDot: endsInDot})
}

func (o *Output) error(msg string) {
	o.steps = append(o.steps, Step{Kind: StepError, Error: msg})
}

// Len returns the number of steps.
func (o *Output) Len() int {
	return len(o.steps)
}

// Step returns the idx-th step.
func (o *Output) Step(idx int) Step {
	return o.steps[idx]
}

// Steps returns an iterator over all steps, in order.
func (o *Output) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for _, s := range o.steps {
			if !yield(s) {
				return
			}
		}
	}
}

// Errors returns the error messages recorded in this output.
func (o *Output) Errors() []string {
	var errs []string
	for _, s := range o.steps {
		if s.Kind == StepError {
			errs = append(errs, s.Error)
		}
	}
	return errs
}
