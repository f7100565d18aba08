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

// Package report provides a diagnostics framework: a [Report] collects
// [Diagnostic]s about some input, and a [Renderer] prints them in the style of
// the Rust compiler.
package report

import (
	"cmp"
	"runtime/debug"
	"slices"
)

// Report is a collection of diagnostics.
//
// The zero value is empty and ready to use.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(options ...DiagnosticOption) *Diagnostic {
	return r.push(Error).With(options...)
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(options ...DiagnosticOption) *Diagnostic {
	return r.push(Warning).With(options...)
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(options ...DiagnosticOption) *Diagnostic {
	return r.push(Remark).With(options...)
}

// Errorf is shorthand for an error with the given [Message].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.Error(Message(format, args...))
}

// Warnf is shorthand for a warning with the given [Message].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.Warn(Message(format, args...))
}

// Remarkf is shorthand for a remark with the given [Message].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.Remark(Message(format, args...))
}

func (r *Report) push(level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{level: level})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

// Len returns the number of diagnostics in this report.
func (r *Report) Len() int {
	return len(r.Diagnostics)
}

// HasErrors returns whether this report contains an error or an ICE.
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool {
		return d.level == Error || d.level == ICE
	})
}

// Append appends the diagnostics of other to r.
func (r *Report) Append(other *Report) {
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Sort sorts the diagnostics in this report by file and position. Diagnostics
// without a span sort first, in their original order.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		pa, pb := a.Primary(), b.Primary()
		return cmp.Or(
			cmp.Compare(pa.File.Path(), pb.File.Path()),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
		)
	})
}

// CatchICE runs cb, converting a panic into an ICE diagnostic.
//
// If resume is set, the panic resumes after the diagnostic is recorded.
func (r *Report) CatchICE(resume bool, cb func()) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}

		r.push(ICE).With(
			Message("unexpected panic; this is a bug"),
			Note("%v", v),
			Debug("%s", debug.Stack()),
		)
		if resume {
			panic(v)
		}
	}()
	cb()
}
