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

// Package codegen converts an annotated UPLC term into an Aiken source
// expression (spec.md section 4.6): the core emitter, recursion hoisting,
// aggressive inlining, and stdlib mapping.
package codegen // import "github.com/will-break-it/uplc2aiken/internal/codegen"

import (
	"github.com/will-break-it/uplc2aiken/internal/binding"
)

// MaxDepth is the hard recursion-depth cap on term-to-expression
// conversion (spec.md sections 5 and 7): beyond it, the emitter produces
// the placeholder "???" and continues rather than recursing further.
const MaxDepth = 1000

// Context carries everything term-to-expression conversion needs at a
// given point in the tree. A Context value is cheap to copy; derivation
// methods (Deeper, WithExtraParams, WithIsolatedEmitted) always return a
// new value rather than mutating the receiver, so a caller can freely
// branch into sibling sub-terms without one branch's scope leaking into
// another's.
type Context struct {
	// Params are the names currently in lexical scope (lambda
	// parameters bound on the path from the root to here).
	Params map[string]bool

	// Depth is the current recursion bound; see MaxDepth.
	Depth int

	// Env resolves free-variable references against analyzed bindings.
	Env *binding.Environment

	// EmittedBindings is the set of `keep`-category names already
	// let-bound in the current preamble scope.
	EmittedBindings map[string]bool

	// FailBindings maps names whose value reduced to `fail` (optionally
	// prefixed with a trace) to their fail expression text; references to
	// such names inline the fail instead of emitting a let.
	FailBindings map[string]string

	// InliningStack guards aggressive inlining against cycles between
	// mutually-referencing renamed bindings. It is per-call-chain, not
	// global: Deeper/WithExtraParams copy it by value semantics (a fresh
	// map each push) so parallel branches never see each other's guard
	// state.
	InliningStack map[string]bool

	// PendingKeepBindings names scheduled for emission at the current
	// preamble, in discovery order. It is a pointer so every Context
	// derived from the same preamble scope (Deeper, WithExtraParams)
	// appends to the one backing slice; WithIsolatedEmitted points it at a
	// fresh slice so a hoisted function body's own lets don't leak into
	// the caller's preamble.
	PendingKeepBindings *[]string

	// Shared is the module-level state for this generation run (used
	// builtins, hoisted-function table). It is intentionally a pointer:
	// unlike the rest of Context, it must be visible across sibling
	// branches (two branches emitting the same builtin should both
	// contribute to one shared import set), but it is still owned by a
	// single decompile.Decompile invocation and never package-global
	// (spec.md section 9).
	Shared *SharedState

	// TxParam is the name of the validator's transaction-context
	// parameter, if one was detected; tx-field accesses against this name
	// render as tx.{field} rather than a raw get_field_N call.
	TxParam string

	// Utilities maps a Shape-B utility-binding parameter name to the
	// target it shortcuts to (a semantic name like "constr_tag" or a raw
	// builtin name); see package entry's UtilityRef.
	Utilities map[string]string

	// ParamAlias maps an original UPLC parameter name to the canonical
	// handler parameter name it is emitted under (e.g. the script's own
	// "d" to catalogue.HandlerParams's "datum"), so the emitted validator
	// body reads naturally regardless of what the original bytecode named
	// its parameters.
	ParamAlias map[string]string

	// DepthLimit overrides MaxDepth for this run when positive (see
	// decompile.Config.MaxRecursionDepth, GenerateWithOptions). Zero means
	// "use the package default MaxDepth".
	DepthLimit int
}

// NewContext builds the root Context for a generation run.
func NewContext(env *binding.Environment, shared *SharedState) *Context {
	pending := []string{}
	return &Context{
		Params:              map[string]bool{},
		Depth:               0,
		Env:                 env,
		EmittedBindings:     map[string]bool{},
		FailBindings:        map[string]string{},
		InliningStack:       map[string]bool{},
		PendingKeepBindings: &pending,
		Shared:              shared,
		Utilities:           map[string]string{},
		ParamAlias:          map[string]string{},
	}
}

// Deeper returns a Context with Depth incremented by one; everything else
// is shared by reference with the receiver except InliningStack, which is
// forked so cycle-guard entries pushed in the child don't leak to
// siblings reached after the child returns.
func (c *Context) Deeper() *Context {
	next := *c
	next.Depth = c.Depth + 1
	next.InliningStack = cloneSet(c.InliningStack)
	return &next
}

// WithExtraParams returns a Context with extra added to Params and Depth
// incremented, for entering a lambda body.
func (c *Context) WithExtraParams(extra ...string) *Context {
	next := *c
	next.Depth = c.Depth + 1
	params := make(map[string]bool, len(c.Params)+len(extra))
	for k := range c.Params {
		params[k] = true
	}
	for _, p := range extra {
		params[p] = true
	}
	next.Params = params
	next.InliningStack = cloneSet(c.InliningStack)
	return &next
}

// WithIsolatedEmitted returns a Context whose EmittedBindings and
// PendingKeepBindings start empty, used inside a hoisted function body so
// that let-bindings emitted there do not leak into the outer scope's
// dedup/preamble state.
func (c *Context) WithIsolatedEmitted() *Context {
	next := *c
	next.EmittedBindings = map[string]bool{}
	pending := []string{}
	next.PendingKeepBindings = &pending
	return &next
}

// pushInlining returns a Context with name added to the inlining cycle
// guard, and reports whether name was already present (a cycle).
func (c *Context) pushInlining(name string) (*Context, bool) {
	if c.InliningStack[name] {
		return c, true
	}
	next := *c
	next.InliningStack = cloneSet(c.InliningStack)
	next.InliningStack[name] = true
	return &next, false
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// atDepthCap reports whether Depth has reached MaxDepth, in which case
// the caller should emit the "???" placeholder instead of recursing.
func (c *Context) atDepthCap() bool {
	limit := MaxDepth
	if c.DepthLimit > 0 {
		limit = c.DepthLimit
	}
	return c.Depth >= limit
}
