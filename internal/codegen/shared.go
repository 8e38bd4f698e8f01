// Copyright 2024 The uplc2aiken Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

import (
	"fmt"

	"github.com/will-break-it/uplc2aiken/internal/stdlib"
)

// HoistInfo records how a self-recursive binding was hoisted to a
// module-level function.
type HoistInfo struct {
	FnName    string
	Captured  []string
	Arity     int
}

// SharedState is the module-level state threaded through one generation
// run: the set of used builtins (for import computation), the hoisted
// recursive-function counter and table, and the list of emitted hoisted
// function bodies.
//
// Per spec.md sections 5 and 9 ("Mutable module-level globals"), this must
// never be a package-level variable: it is allocated fresh by
// NewSharedState for every call to decompile.Decompile and discarded
// afterwards, so concurrent external runs never interfere with each
// other.
type SharedState struct {
	UsedBuiltins     map[string]bool
	hoistCounter     int
	SelfRecursive    map[string]HoistInfo // self-binding-name -> hoist info
	HoistedFunctions []string             // emitted `fn rec_k(...) {...}` texts, in emission order

	// KeepValues holds the rendered value expression for every
	// CategoryKeep binding encountered so far during one generation walk,
	// keyed by binding name. Discovery order for emission is tracked
	// per-scope by Context.PendingKeepBindings (see preamble.go), not
	// here: a name can be discovered once but emitted in more than one
	// isolated scope (e.g. once in a hoisted function, once outside it).
	KeepValues map[string]string

	// Stdlib is the builtin rendering table this run uses. Its zero value
	// is the package default table, so a run that never configured an
	// override (NewSharedState) behaves exactly as before.
	Stdlib stdlib.Table
}

// NewSharedState allocates a fresh, empty SharedState for one generation
// run, using the package default stdlib table.
func NewSharedState() *SharedState {
	return NewSharedStateWithStdlib(stdlib.DefaultTable())
}

// NewSharedStateWithStdlib allocates a fresh, empty SharedState whose
// builtin rendering goes through tbl instead of the package default (see
// decompile.Config.Stdlib, GenerateWithOptions).
func NewSharedStateWithStdlib(tbl stdlib.Table) *SharedState {
	return &SharedState{
		UsedBuiltins:  map[string]bool{},
		SelfRecursive: map[string]HoistInfo{},
		KeepValues:    map[string]string{},
		Stdlib:        tbl,
	}
}

// RecordKeepValue registers the rendered value expression for a
// CategoryKeep binding the first time it is encountered; later
// re-encounters (a binding referenced from more than one branch) are
// no-ops, since the value expression is invariant under where it's
// referenced from.
func (s *SharedState) RecordKeepValue(name, valueExpr string) {
	if _, ok := s.KeepValues[name]; ok {
		return
	}
	s.KeepValues[name] = valueExpr
}

// HasKeepValue reports whether name has already been recorded.
func (s *SharedState) HasKeepValue(name string) bool {
	_, ok := s.KeepValues[name]
	return ok
}

// NextHoistName allocates the next rec_{k} name.
func (s *SharedState) NextHoistName() string {
	name := fmt.Sprintf("rec_%d", s.hoistCounter)
	s.hoistCounter++
	return name
}

// MarkBuiltinUsed records that builtin name was rendered, for later
// required-imports computation.
func (s *SharedState) MarkBuiltinUsed(name string) {
	s.UsedBuiltins[name] = true
}

// UsedBuiltinNames returns the builtin names recorded so far.
func (s *SharedState) UsedBuiltinNames() []string {
	out := make([]string, 0, len(s.UsedBuiltins))
	for k := range s.UsedBuiltins {
		out = append(out, k)
	}
	return out
}
