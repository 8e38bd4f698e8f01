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
	"sort"
	"strings"

	"github.com/will-break-it/uplc2aiken/internal/term"
)

// hoistSelfRecursive turns a self-recursive lambda value bound to name
// (the Z/omega-combinator-style encoding recognized by
// term.IsSelfRecursiveLambda) into a module-level `fn rec_k(...)`
// function, per spec.md section 4.6 "Self-recursive hoisting":
//
//  1. allocate a fresh rec_k name and register it in ctx.Shared.SelfRecursive
//     before rendering the body, so self-calls inside the body resolve to
//     it (step 1 of variable resolution, see resolveVar);
//  2. compute the free variables of the inner body not already bound by
//     the function's own parameter, excluding names that shortcut to a
//     utility binding (those are available at every call site, not a
//     captured closure value);
//  3. render the body under an isolated context (WithIsolatedEmitted) so
//     the hoisted function's own let-bindings don't leak into the caller's
//     preamble;
//  4. emit `fn rec_k(captured..., param) { body }` to HoistedFunctions.
//
// Call sites rewrite through the ordinary var-resolution path: a
// reference to name resolves to the rec_k symbol, and apply.go supplies
// the captured arguments ahead of the user-supplied ones, eta-expanding
// when a call site does not supply every declared parameter.
func hoistSelfRecursive(ctx *Context, name string, value term.Term) {
	if _, ok := ctx.Shared.SelfRecursive[name]; ok {
		return
	}
	outer := value.(*term.Lam) // guarded by term.IsSelfRecursiveLambda before calling
	inner := outer.Body.(*term.Lam)

	// A recursive lambda Lam(self, Lam(a_1, ... Lam(a_k, body))) has arity
	// k: every binder after self is a real hoisted-function parameter, not
	// just the first one, so the whole chain is flattened here rather than
	// only peeling inner.
	innerParams, body := term.FlattenLambdaChain(inner, 0)

	fnName := ctx.Shared.NextHoistName()
	captured := capturedNames(ctx, body, append([]string{outer.Param}, innerParams...)...)

	info := HoistInfo{FnName: fnName, Captured: captured, Arity: len(captured) + len(innerParams)}
	ctx.Shared.SelfRecursive[name] = info
	// The body itself refers to the recursive value through the
	// Z-combinator's own self-parameter, not through the outer let name;
	// register it under that name too so self-calls inside the body (see
	// renderCall's *term.Var case) also get the captured arguments
	// prepended.
	ctx.Shared.SelfRecursive[outer.Param] = info

	params := append(append([]string{}, captured...), innerParams...)
	bodyCtx := ctx.WithIsolatedEmitted().WithExtraParams(params...)

	bodyExpr := ToExpression(bodyCtx, body)
	bodyExpr = AssemblePreamble(bodyCtx, bodyExpr)
	text := fmt.Sprintf("fn %s(%s) {\n  %s\n}", fnName, strings.Join(params, ", "), bodyExpr)
	ctx.Shared.HoistedFunctions = append(ctx.Shared.HoistedFunctions, text)
}

// capturedNames returns the free variables of body (excluding the
// function's own bound names: self plus every parameter in its arity
// chain) that resolve to an outer-in-scope parameter or keep-binding —
// the values a hoisted function must receive as leading arguments since
// it can no longer close over them lexically once lifted to module
// scope. Utility-binding shortcuts are excluded: they resolve identically
// regardless of lexical position, so they need not be captured.
func capturedNames(ctx *Context, body term.Term, bound ...string) []string {
	boundSet := make(map[string]bool, len(bound))
	for _, b := range bound {
		boundSet[b] = true
	}
	free := term.CollectFreeVars(body, boundSet)
	var names []string
	for n := range free {
		if _, isUtility := ctx.Utilities[n]; isUtility {
			continue
		}
		if _, isSelfRec := ctx.Shared.SelfRecursive[n]; isSelfRec {
			continue
		}
		if !ctx.Params[n] {
			if _, known := ctx.Env.Lookup(n); !known {
				continue
			}
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
