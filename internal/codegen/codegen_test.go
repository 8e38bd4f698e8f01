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

package codegen_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/binding"
	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/codegen"
	"github.com/will-break-it/uplc2aiken/internal/contract"
	"github.com/will-break-it/uplc2aiken/internal/stdlib"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

func ite(cond, then, els term.Term) term.Term {
	return &term.App{
		Func: &term.App{
			Func: &term.App{Func: &term.Builtin{Name: "ifThenElse"}, Arg: cond},
			Arg:  then,
		},
		Arg: els,
	}
}

func TestRenderConstLiterals(t *testing.T) {
	qt.Assert(t, qt.Equals(codegen.RenderConst(term.NewInt(42)), "42"))
	qt.Assert(t, qt.Equals(codegen.RenderConst(term.NewBool(true)), "True"))
	qt.Assert(t, qt.Equals(codegen.RenderConst(term.NewBool(false)), "False"))
	qt.Assert(t, qt.Equals(codegen.RenderConst(term.NewUnit()), "Void"))
	qt.Assert(t, qt.Equals(codegen.RenderConst(term.NewBytes([]byte{0xde, 0xad})), `#"dead"`))
	qt.Assert(t, qt.Equals(codegen.RenderConst(&term.Const{Kind: term.KindString, String: "hi"}), `"hi"`))
}

func TestRenderConstList(t *testing.T) {
	l := &term.Const{Kind: term.KindList, List: []term.Term{term.NewInt(1), term.NewInt(2)}}
	qt.Assert(t, qt.Equals(codegen.RenderConst(l), "[1, 2]"))
	empty := &term.Const{Kind: term.KindList}
	qt.Assert(t, qt.Equals(codegen.RenderConst(empty), "[]"))
}

func TestRenderDataConstr(t *testing.T) {
	d := term.DataConstr{Index: 0, Args: []term.Data{term.DataI{Value: new(apd.Decimal).SetInt64(5)}}}
	got := codegen.RenderData(d)
	qt.Assert(t, qt.Equals(got, "builtin.constr_data(0, [5])"))
}

func TestToExpressionBuiltinCall(t *testing.T) {
	ctx := codegen.NewContext(binding.NewEnvironment(), codegen.NewSharedState())
	app := &term.App{Func: &term.App{Func: &term.Builtin{Name: "addInteger"}, Arg: term.NewInt(1)}, Arg: term.NewInt(2)}
	got := codegen.ToExpression(ctx, app)
	qt.Assert(t, qt.Equals(got, "1 + 2"))
}

func TestToExpressionTxFieldAccess(t *testing.T) {
	ctx := codegen.NewContext(binding.NewEnvironment(), codegen.NewSharedState())
	ctx.TxParam = "tx"
	ctx.Params = map[string]bool{"tx": true}

	unConstr := &term.App{Func: &term.Builtin{Name: "unConstrData"}, Arg: &term.Var{Name: "tx"}}
	snd := &term.App{Func: &term.Builtin{Name: "sndPair"}, Arg: unConstr}
	tail := &term.App{Func: &term.Builtin{Name: "tailList"}, Arg: snd}
	head := &term.App{Func: &term.Builtin{Name: "headList"}, Arg: tail}

	got := codegen.ToExpression(ctx, head)
	qt.Assert(t, qt.Equals(got, "tx.reference_inputs"))
}

func TestToExpressionBooleanAndChain(t *testing.T) {
	ctx := codegen.NewContext(binding.NewEnvironment(), codegen.NewSharedState())
	ctx.Params = map[string]bool{"a": true, "b": true}

	inner := ite(&term.Var{Name: "b"}, term.NewBool(true), term.NewBool(false))
	outer := ite(&term.Var{Name: "a"}, inner, term.NewBool(false))

	got := codegen.ToExpression(ctx, outer)
	qt.Assert(t, qt.Equals(got, "(a && b && True)"))
}

func TestGenerateAlwaysTrueSpend(t *testing.T) {
	root := &term.Lam{Param: "d", Body: &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}}
	structure := contract.Analyze(root, codegen.RenderConst)
	gen := codegen.Generate(structure)

	qt.Assert(t, qt.Equals(gen.Purpose, catalogue.PurposeSpend))
	qt.Assert(t, qt.DeepEquals(gen.HandlerParams, []string{"datum", "redeemer", "own_ref", "tx"}))
	qt.Assert(t, qt.Equals(gen.Body, "Void"))

	rendered := gen.Render()
	qt.Assert(t, qt.IsTrue(strings.Contains(rendered, "validator spend_contract {")))
	qt.Assert(t, qt.IsTrue(strings.Contains(rendered, "spend(datum, redeemer, own_ref, tx)")))
}

func TestGenerateWithOptionsMatchesGenerateAtZeroValue(t *testing.T) {
	root := &term.Lam{Param: "d", Body: &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}}
	structure := contract.Analyze(root, codegen.RenderConst)
	qt.Assert(t, qt.Equals(codegen.GenerateWithOptions(structure, codegen.GenerateOptions{}).Render(), codegen.Generate(structure).Render()))
}

func TestGenerateWithOptionsRecursionDepthCap(t *testing.T) {
	// A chain of 5 nested addInteger applications; a MaxRecursionDepth of 2
	// forces the inner calls to hit the "???" placeholder instead of
	// rendering in full.
	inner := term.NewInt(1)
	for i := 0; i < 5; i++ {
		inner = &term.App{Func: &term.App{Func: &term.Builtin{Name: "addInteger"}, Arg: inner}, Arg: term.NewInt(1)}
	}
	root := &term.Lam{Param: "d", Body: &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: inner}}}
	structure := contract.Analyze(root, codegen.RenderConst)

	gen := codegen.GenerateWithOptions(structure, codegen.GenerateOptions{MaxRecursionDepth: 2})
	qt.Assert(t, qt.IsTrue(strings.Contains(gen.Body, "???")))
}

func TestGenerateWithOptionsStdlibOverride(t *testing.T) {
	root := &term.Lam{Param: "d", Body: &term.Lam{Param: "r", Body: &term.Lam{
		Param: "c",
		Body:  &term.App{Func: &term.App{Func: &term.Builtin{Name: "addInteger"}, Arg: term.NewInt(1)}, Arg: term.NewInt(2)},
	}}}
	structure := contract.Analyze(root, codegen.RenderConst)

	overrides := stdlib.Extend(stdlib.Default(), map[string]stdlib.Entry{
		"addInteger": {Module: "aiken/math", Rename: "add", Arity: 2},
	})
	gen := codegen.GenerateWithOptions(structure, codegen.GenerateOptions{Stdlib: stdlib.NewTable(overrides)})
	qt.Assert(t, qt.Equals(gen.Body, "math.add(1, 2)"))
	qt.Assert(t, qt.DeepEquals(gen.RequiredImports, []string{"aiken/math"}))
}

func TestIsConstrNCallSite(t *testing.T) {
	// let acc = \x. equalsInteger(fstPair(unConstrData(x)), 0) in acc(d)
	unConstr := &term.App{Func: &term.Builtin{Name: "unConstrData"}, Arg: &term.Var{Name: "x"}}
	fst := &term.App{Func: &term.Builtin{Name: "fstPair"}, Arg: unConstr}
	eq := &term.App{
		Func: &term.App{Func: &term.Builtin{Name: "equalsInteger"}, Arg: fst},
		Arg:  term.NewInt(0),
	}
	helper := &term.Lam{Param: "x", Body: eq}
	root := &term.App{
		Func: &term.Lam{Param: "acc", Body: &term.App{Func: &term.Var{Name: "acc"}, Arg: &term.Var{Name: "d"}}},
		Arg:  helper,
	}

	env := binding.Build(root, codegen.RenderConst)
	ctx := codegen.NewContext(env, codegen.NewSharedState())
	ctx.Params = map[string]bool{"d": true}

	got := codegen.ToExpression(ctx, root)
	qt.Assert(t, qt.Equals(got, "builtin.fst_pair(builtin.un_constr_data(d)) == 0"))
}

func TestBooleanAndCallSite(t *testing.T) {
	// let acc = \a. \b. ifThenElse(a, b, False) in acc(x, y)
	helper := &term.Lam{Param: "a", Body: &term.Lam{Param: "b", Body: ite(&term.Var{Name: "a"}, &term.Var{Name: "b"}, term.NewBool(false))}}
	call := &term.App{Func: &term.App{Func: &term.Var{Name: "acc"}, Arg: &term.Var{Name: "x"}}, Arg: &term.Var{Name: "y"}}
	root := &term.App{Func: &term.Lam{Param: "acc", Body: call}, Arg: helper}

	env := binding.Build(root, codegen.RenderConst)
	ctx := codegen.NewContext(env, codegen.NewSharedState())
	ctx.Params = map[string]bool{"x": true, "y": true}

	got := codegen.ToExpression(ctx, root)
	qt.Assert(t, qt.Equals(got, "(x && y)"))
}

func TestIdentityAndApplyCallSites(t *testing.T) {
	// let id = \x. x in id(n)
	idHelper := &term.Lam{Param: "x", Body: &term.Var{Name: "x"}}
	idCall := &term.App{Func: &term.Lam{Param: "id", Body: &term.App{Func: &term.Var{Name: "id"}, Arg: term.NewInt(7)}}, Arg: idHelper}

	env := binding.Build(idCall, codegen.RenderConst)
	ctx := codegen.NewContext(env, codegen.NewSharedState())
	qt.Assert(t, qt.Equals(codegen.ToExpression(ctx, idCall), "7"))

	// let apply = \f. \x. f(x) in apply(g, n)
	applyHelper := &term.Lam{Param: "f", Body: &term.Lam{Param: "x", Body: &term.App{Func: &term.Var{Name: "f"}, Arg: &term.Var{Name: "x"}}}}
	applyCall := &term.App{
		Func: &term.App{Func: &term.Var{Name: "apply"}, Arg: &term.Var{Name: "g"}},
		Arg:  term.NewInt(9),
	}
	root := &term.App{Func: &term.Lam{Param: "apply", Body: applyCall}, Arg: applyHelper}

	env2 := binding.Build(root, codegen.RenderConst)
	ctx2 := codegen.NewContext(env2, codegen.NewSharedState())
	ctx2.Params = map[string]bool{"g": true}
	qt.Assert(t, qt.Equals(codegen.ToExpression(ctx2, root), "g(9)"))
}

func TestPhantomWrapperStripped(t *testing.T) {
	// \x. ((fstPair<force><force>)(phantom_a))(x) -- a force-polymorphic
	// builtin wrapped by its two type-instantiation phantom lambdas,
	// followed by the real argument.
	phantomA := &term.Lam{Param: "_", Body: term.NewUnit()}
	phantomB := &term.Lam{Param: "_", Body: term.NewUnit()}
	forced := &term.Force{Inner: &term.Force{Inner: &term.Builtin{Name: "fstPair"}}}
	body := &term.App{
		Func: &term.App{Func: forced, Arg: phantomA},
		Arg:  phantomB,
	}
	body = &term.App{Func: body, Arg: &term.Var{Name: "x"}}
	lam := &term.Lam{Param: "x", Body: body}

	ctx := codegen.NewContext(binding.NewEnvironment(), codegen.NewSharedState())
	got := codegen.ToExpression(ctx, lam)
	qt.Assert(t, qt.Equals(got, "fn(_p0) { _p0.1st }"))
}

func TestAssemblePreambleTopologicalOrder(t *testing.T) {
	ctx := codegen.NewContext(binding.NewEnvironment(), codegen.NewSharedState())
	ctx.Shared.RecordKeepValue("b", "a + 1")
	ctx.Shared.RecordKeepValue("a", "1")
	// Scheduled out of dependency order: b (which uses a) before a itself.
	*ctx.PendingKeepBindings = []string{"b", "a"}

	got := codegen.AssemblePreamble(ctx, "b")
	want := "let a = 1\nlet b = a + 1\nb"
	qt.Assert(t, qt.Equals(got, want))
}

func TestSelfRecursiveHoisting(t *testing.T) {
	// let x = (\self. \y. self(self)) in x(0)
	selfCall := &term.App{Func: &term.Var{Name: "self"}, Arg: &term.Var{Name: "self"}}
	zTerm := &term.Lam{Param: "self", Body: &term.Lam{Param: "y", Body: selfCall}}
	root := &term.App{
		Func: &term.Lam{Param: "x", Body: &term.App{Func: &term.Var{Name: "x"}, Arg: term.NewInt(0)}},
		Arg:  zTerm,
	}

	env := binding.Build(root, codegen.RenderConst)
	shared := codegen.NewSharedState()
	ctx := codegen.NewContext(env, shared)

	got := codegen.ToExpression(ctx, root)

	qt.Assert(t, qt.HasLen(shared.HoistedFunctions, 1))
	qt.Assert(t, qt.IsTrue(strings.Contains(shared.HoistedFunctions[0], "fn rec_0(y)")))
	qt.Assert(t, qt.Equals(got, "rec_0(0)"))
}

func TestSelfRecursiveHoistingMultiArg(t *testing.T) {
	// let x = (\self. \a. \b. self(self, a, b)) in x(1, 2) -- arity-2
	// recursion must lift both a and b as hoisted-function parameters,
	// not leave b behind as a nested fn inside rec_0's body.
	selfCall := &term.App{
		Func: &term.App{
			Func: &term.App{Func: &term.Var{Name: "self"}, Arg: &term.Var{Name: "self"}},
			Arg:  &term.Var{Name: "a"},
		},
		Arg: &term.Var{Name: "b"},
	}
	zTerm := &term.Lam{Param: "self", Body: &term.Lam{Param: "a", Body: &term.Lam{Param: "b", Body: selfCall}}}
	root := &term.App{
		Func: &term.Lam{Param: "x", Body: &term.App{
			Func: &term.App{Func: &term.Var{Name: "x"}, Arg: term.NewInt(1)},
			Arg:  term.NewInt(2),
		}},
		Arg: zTerm,
	}

	env := binding.Build(root, codegen.RenderConst)
	shared := codegen.NewSharedState()
	ctx := codegen.NewContext(env, shared)

	got := codegen.ToExpression(ctx, root)

	qt.Assert(t, qt.HasLen(shared.HoistedFunctions, 1))
	qt.Assert(t, qt.IsTrue(strings.Contains(shared.HoistedFunctions[0], "fn rec_0(a, b)")))
	qt.Assert(t, qt.Equals(got, "rec_0(1, 2)"))
}

