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
	"strings"

	"github.com/will-break-it/uplc2aiken/internal/binding"
	"github.com/will-break-it/uplc2aiken/internal/pattern"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

// ToExpression converts a UPLC term to an Aiken expression string (spec.md
// section 4.6). It never panics: unrecognized or over-deep terms fall back
// to the "???" placeholder so one bad sub-tree never aborts the whole
// generation run (spec.md section 5, "best-effort error handling").
func ToExpression(ctx *Context, t term.Term) string {
	if ctx.atDepthCap() {
		return "???"
	}
	switch x := t.(type) {
	case nil:
		return "???"
	case *term.Const:
		return RenderConst(x)
	case *term.Var:
		return resolveVar(ctx, x.Name)
	case *term.Builtin:
		return renderBareBuiltin(ctx, x.Name)
	case *term.Force:
		return ToExpression(ctx.Deeper(), x.Inner)
	case *term.Delay:
		return ToExpression(ctx.Deeper(), x.Inner)
	case *term.Error:
		return "fail"
	case *term.Lam:
		return renderLambda(ctx, x)
	case *term.App:
		return ApplyExpr(ctx, x)
	case *term.Constr:
		return renderConstr(ctx, x)
	case *term.Case:
		return renderCase(ctx, x)
	}
	return "???"
}

// resolveVar implements the six-step variable-resolution order of spec.md
// section 4.6.
func resolveVar(ctx *Context, name string) string {
	// 1. hoisted self-recursive function symbol
	if info, ok := ctx.Shared.SelfRecursive[name]; ok {
		return info.FnName
	}
	// 2. in-scope lambda parameter (renamed to its canonical handler name
	// when one was assigned at the validator entry point)
	if ctx.Params[name] {
		if alias, ok := ctx.ParamAlias[name]; ok {
			return alias
		}
		return name
	}
	// 3. fail-binding
	if expr, ok := ctx.FailBindings[name]; ok {
		return expr
	}
	// 4. binding-environment resolution
	if r, ok := ctx.Env.Lookup(name); ok {
		switch r.Category {
		case binding.CategoryInline:
			return r.InlineValue
		case binding.CategoryRename:
			return r.SemanticName
		case binding.CategoryKeep:
			return name
		}
	}
	// 5. utility-binding shortcut
	if target, ok := ctx.Utilities[name]; ok {
		return target
	}
	// 6. raw name
	return name
}

// renderBareBuiltin renders a builtin referenced without any application
// (e.g. passed around as a value): it is wrapped in a lambda binding its
// full arity, per spec.md section 4.6.
func renderBareBuiltin(ctx *Context, name string) string {
	ctx.Shared.MarkBuiltinUsed(name)
	e, ok := ctx.Shared.Stdlib.Lookup(name)
	if !ok || e.Arity == 0 {
		return stdlibAliasName(ctx, name)
	}
	params := make([]string, e.Arity)
	for i := range params {
		params[i] = fmt.Sprintf("_p%d", i)
	}
	return fmt.Sprintf("fn(%s) { %s }", strings.Join(params, ", "), ctx.Shared.Stdlib.Render(name, params))
}

func stdlibAliasName(ctx *Context, name string) string {
	if e, ok := ctx.Shared.Stdlib.Lookup(name); ok && e.Rename != "" {
		return e.Rename
	}
	return name
}

// renderLambda renders a bare (non-applied) lambda chain as an Aiken
// anonymous function, stripping phantom Force-polymorphism wrapper layers
// where the body is itself a builtin reference expecting to be fully
// saturated by the surrounding call.
func renderLambda(ctx *Context, lam *term.Lam) string {
	if name, ok := pattern.DetectPhantomWrapper(lam); ok {
		return renderBareBuiltin(ctx, name)
	}
	params, body := term.FlattenLambdaChain(lam, 0)
	next := ctx.WithExtraParams(params...)
	return fmt.Sprintf("fn(%s) { %s }", strings.Join(params, ", "), ToExpression(next, body))
}

func renderConstr(ctx *Context, c *term.Constr) string {
	fields := make([]string, len(c.Args))
	for i, a := range c.Args {
		if _, isLam := a.(*term.Lam); isLam {
			// An unsaturated lambda-valued field has no Aiken Data
			// representation; emit an empty field list placeholder rather
			// than aborting the whole render.
			fields[i] = "[]"
			continue
		}
		rendered := ToExpression(ctx.Deeper(), a)
		switch rendered {
		case "True":
			rendered = "builtin.constr_data(1, [])"
		case "False":
			rendered = "builtin.constr_data(0, [])"
		}
		fields[i] = rendered
	}
	return fmt.Sprintf("builtin.constr_data(%d, [%s])", c.Index, strings.Join(fields, ", "))
}

func renderCase(ctx *Context, c *term.Case) string {
	scrutinee := ToExpression(ctx.Deeper(), c.Scrutinee)
	var b strings.Builder
	fmt.Fprintf(&b, "when %s is {\n", scrutinee)
	for i, branch := range c.Branches {
		fmt.Fprintf(&b, "  %d -> %s\n", i, ToExpression(ctx.Deeper(), branch))
	}
	b.WriteString("}")
	return b.String()
}
