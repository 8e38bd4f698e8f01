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
	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/pattern"
	"github.com/will-break-it/uplc2aiken/internal/stdlib"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

// ApplyExpr renders a UPLC application, per the numbered steps of spec.md
// section 4.6: let-binding recognition first (it changes nothing about
// the expression rendered, only what gets scheduled for the preamble),
// then the higher-level idiom detectors from package pattern, then a
// plain call.
func ApplyExpr(ctx *Context, app *term.App) string {
	if lam, ok := term.UnwrapForceDelay(app.Func).(*term.Lam); ok {
		return applyLet(ctx, lam, app.Arg)
	}

	if ctx.TxParam != "" {
		if acc, ok := pattern.DetectTxFieldAccess(app, ctx.TxParam); ok {
			if field, ok := catalogue.TxFieldName(acc.Index); ok {
				// Detection matches against the original UPLC parameter name
				// (ctx.TxParam); the emitted accessor uses its canonical
				// handler-facing alias, if one was assigned at Generate time.
				txName := ctx.TxParam
				if alias, ok := ctx.ParamAlias[ctx.TxParam]; ok {
					txName = alias
				}
				return fmt.Sprintf("%s.%s", txName, field)
			}
		}
	}
	if acc, ok := pattern.DetectDataFieldAccess(app); ok {
		return fmt.Sprintf("%s.%s", ToExpression(ctx.Deeper(), acc.Scrutinee), acc.Accessor)
	}
	if m, ok := pattern.DetectConstrMatch(app); ok {
		return renderConstrMatch(ctx, m)
	}
	if bc, ok := pattern.DetectBooleanChain(app); ok {
		return renderBooleanChain(ctx, bc)
	}
	if pc, ok := pattern.DetectPartialConstrCheck(app); ok {
		scrut := ToExpression(ctx.Deeper(), pc.Scrutinee)
		return fmt.Sprintf("builtin.un_constr_data(%s).1st == %d", scrut, pc.Index)
	}

	spine := term.FlattenApp(app)
	return renderCall(ctx, spine[0], spine[1:])
}

// applyLet handles the UPLC let-binding shape App(Lam(x, body), arg). The
// binding was already classified once by package binding during the
// up-front Build pass; codegen's only job here is to decide what, if
// anything, needs scheduling before recursing into body. Inline and
// Rename categories need nothing: every reference to x resolves through
// resolveVar without ever naming x directly. Only CategoryKeep bindings
// need a `let` statement — unless the value is itself a self-recursive
// lambda, in which case it gets hoisted to a module-level function
// instead of a let (spec.md section 4.6, "Self-recursive hoisting").
func applyLet(ctx *Context, lam *term.Lam, arg term.Term) string {
	r, ok := ctx.Env.Lookup(lam.Param)
	if !ok {
		r = binding.Resolved{Category: binding.CategoryKeep}
	}
	if r.Category == binding.CategoryKeep {
		if term.IsSelfRecursiveLambda(arg) {
			hoistSelfRecursive(ctx, lam.Param, arg)
		} else if !ctx.Shared.HasKeepValue(lam.Param) {
			valueExpr := ToExpression(ctx.Deeper(), arg)
			scheduleKeepBinding(ctx, lam.Param, valueExpr)
		} else if !ctx.EmittedBindings[lam.Param] {
			ctx.EmittedBindings[lam.Param] = true
			*ctx.PendingKeepBindings = append(*ctx.PendingKeepBindings, lam.Param)
		}
	}
	return ToExpression(ctx, lam.Body)
}

func renderConstrMatch(ctx *Context, m pattern.ConstrMatch) string {
	scrutinee := ToExpression(ctx.Deeper(), m.Scrutinee)
	var b strings.Builder
	fmt.Fprintf(&b, "when %s is {\n", scrutinee)
	for _, branch := range m.Branches {
		fmt.Fprintf(&b, "  %d -> %s\n", branch.Index, ToExpression(ctx.Deeper(), branch.Body))
	}
	if m.Default != nil {
		fmt.Fprintf(&b, "  _ -> %s\n", ToExpression(ctx.Deeper(), m.Default))
	} else {
		b.WriteString("  _ -> fail\n")
	}
	b.WriteString("}")
	return b.String()
}

func renderBooleanChain(ctx *Context, bc pattern.BooleanChain) string {
	op := " && "
	if bc.Kind == pattern.ChainOr {
		op = " || "
	}
	parts := make([]string, len(bc.Operands))
	for i, o := range bc.Operands {
		parts[i] = ToExpression(ctx.Deeper(), o)
	}
	return "(" + strings.Join(parts, op) + ")"
}

// renderCall renders a fully-flattened application spine: head applied to
// args, all already-identified higher-level idioms having been ruled out
// by ApplyExpr.
func renderCall(ctx *Context, head term.Term, args []term.Term) string {
	switch h := head.(type) {
	case *term.Builtin:
		ctx.Shared.MarkBuiltinUsed(h.Name)
		rendered := renderArgs(ctx, dropPhantomArgs(h.Name, args))
		return ctx.Shared.Stdlib.Render(h.Name, rendered)
	case *term.Var:
		if info, ok := ctx.Shared.SelfRecursive[h.Name]; ok {
			captured := make([]string, len(info.Captured))
			for i, c := range info.Captured {
				captured[i] = resolveVar(ctx, c)
			}
			all := append(captured, renderArgs(ctx, args)...)
			if missing := info.Arity - len(all); missing > 0 {
				etas := make([]string, missing)
				for i := range etas {
					etas[i] = fmt.Sprintf("_eta_%d", i)
				}
				all = append(all, etas...)
				return fmt.Sprintf("fn(%s) { %s(%s) }", strings.Join(etas, ", "), info.FnName, strings.Join(all, ", "))
			}
			return fmt.Sprintf("%s(%s)", info.FnName, strings.Join(all, ", "))
		}
		if r, ok := ctx.Env.Lookup(h.Name); ok {
			if rendered, handled := renderPatternCall(ctx, r, args); handled {
				return rendered
			}
		}
		name := resolveVar(ctx, h.Name)
		return fmt.Sprintf("%s(%s)", name, strings.Join(renderArgs(ctx, args), ", "))
	default:
		fn := ToExpression(ctx.Deeper(), head)
		return fmt.Sprintf("%s(%s)", fn, strings.Join(renderArgs(ctx, args), ", "))
	}
}

// renderPatternCall renders a call whose head var resolved to one of the
// binding analyzer's known patterns (spec.md section 4.6, "Application
// emission" step 6): the raw call-site arguments are spliced into the
// pattern's canonical Aiken shape instead of naming the binding itself,
// since most of these patterns have no function actually defined under
// their semantic or inline name. ok is false for any pattern this call
// site doesn't know how to splice (arity mismatch, or a pattern handled
// some other way), leaving the caller to fall back to a plain name(args)
// call.
func renderPatternCall(ctx *Context, r binding.Resolved, args []term.Term) (string, bool) {
	switch r.Pattern {
	case binding.PatternPartialBuiltin:
		full := append(append([]string{}, r.PartialArgs...), renderArgs(ctx, args)...)
		ctx.Shared.MarkBuiltinUsed(r.PartialBuiltin)
		return ctx.Shared.Stdlib.Render(r.PartialBuiltin, full), true
	case binding.PatternIsConstrN:
		if len(args) != 1 {
			return "", false
		}
		ctx.Shared.MarkBuiltinUsed("fstPair")
		ctx.Shared.MarkBuiltinUsed("unConstrData")
		arg := ToExpression(ctx.Deeper(), args[0])
		return fmt.Sprintf("builtin.fst_pair(builtin.un_constr_data(%s)) == %d", arg, r.ConstrIndex), true
	case binding.PatternBooleanAnd:
		if len(args) != 2 {
			return "", false
		}
		rendered := renderArgs(ctx, args)
		return fmt.Sprintf("(%s && %s)", rendered[0], rendered[1]), true
	case binding.PatternBooleanOr:
		if len(args) != 2 {
			return "", false
		}
		rendered := renderArgs(ctx, args)
		return fmt.Sprintf("(%s || %s)", rendered[0], rendered[1]), true
	case binding.PatternIdentity:
		if len(args) != 1 {
			return "", false
		}
		return renderArgs(ctx, args)[0], true
	case binding.PatternApply:
		if len(args) != 2 {
			return "", false
		}
		rendered := renderArgs(ctx, args)
		return fmt.Sprintf("%s(%s)", rendered[0], rendered[1]), true
	default:
		return "", false
	}
}

// dropPhantomArgs strips the leading run of raw lambda-valued arguments a
// force-polymorphic builtin (spec.md section 6) receives as
// type-instantiation placeholders instead of the usual Force layers
// (spec.md section 4.6, "Application emission" step 7), so arity counting
// and rendering only ever see the real value arguments.
func dropPhantomArgs(name string, args []term.Term) []term.Term {
	if _, ok := stdlib.ForcePolymorphic[name]; !ok {
		return args
	}
	i := 0
	for i < len(args) {
		if _, isLam := args[i].(*term.Lam); !isLam {
			break
		}
		i++
	}
	return args[i:]
}

func renderArgs(ctx *Context, args []term.Term) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = ToExpression(ctx.Deeper(), a)
	}
	return out
}
