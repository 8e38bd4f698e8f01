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

// Package binding classifies every let-bound value in a UPLC program and
// assigns it semantic meaning (spec.md section 4.3), and maintains the
// BindingEnvironment that later stages consult to resolve references.
package binding // import "github.com/will-break-it/uplc2aiken/internal/binding"

import (
	"fmt"

	"github.com/will-break-it/uplc2aiken/internal/stdlib"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

// Category controls how the generator treats references to a binding.
type Category int

const (
	CategoryInline Category = iota
	CategoryRename
	CategoryKeep
)

// Pattern is the recognized structural shape of a binding's value.
type Pattern int

const (
	PatternConstantInt Pattern = iota
	PatternConstantBool
	PatternConstantUnit
	PatternConstantBytes
	PatternConstantString
	PatternConstantData
	PatternConstantList
	PatternConstantPair
	PatternIdentity
	PatternApply
	PatternCompose
	PatternBuiltinWrapper
	PatternPartialBuiltin
	PatternIsConstrN
	PatternExpectConstrN
	PatternFieldAccessor
	PatternBooleanAnd
	PatternBooleanOr
	PatternListFold
	PatternZCombinator
	PatternUnknown
)

// Resolved is the result of analyzing one let-binding.
type Resolved struct {
	Name         string
	Value        term.Term
	Category     Category
	SemanticName string // set when Category == CategoryRename
	InlineValue  string // set when Category == CategoryInline
	Pattern      Pattern

	// ConstrIndex carries the N for IsConstrN/ExpectConstrN/FieldAccessor
	// (field index) patterns.
	ConstrIndex int

	// PartialArgs carries the already-bound leading argument expressions
	// for PatternPartialBuiltin, in application order.
	PartialArgs []string
	// PartialBuiltin is the underlying builtin name for PatternPartialBuiltin.
	PartialBuiltin string
}

// Analyze classifies a single `name = value` let-binding per spec.md
// section 4.3. renderConst renders a constant term to its Aiken literal
// form (see package codegen for the concrete implementation); it is
// injected to avoid a dependency cycle between binding and codegen.
func Analyze(name string, value term.Term, renderConst func(term.Term) string) Resolved {
	peeled := term.UnwrapForceDelay(value)

	switch v := peeled.(type) {
	case *term.Const:
		return analyzeConst(name, value, v, renderConst)
	case *term.Builtin:
		alias := stdlibAlias(v.Name)
		return Resolved{Name: name, Value: value, Category: CategoryRename, SemanticName: alias, Pattern: PatternBuiltinWrapper}
	case *term.Lam:
		if r, ok := analyzeLambda(name, value, v); ok {
			return r
		}
	case *term.App:
		if r, ok := analyzeApp(name, value, v); ok {
			return r
		}
	}
	return Resolved{Name: name, Value: value, Category: CategoryKeep, Pattern: PatternUnknown}
}

func analyzeConst(name string, original term.Term, c *term.Const, renderConst func(term.Term) string) Resolved {
	r := Resolved{Name: name, Value: original, Category: CategoryInline, InlineValue: renderConst(original)}
	switch c.Kind {
	case term.KindInteger:
		r.Pattern = PatternConstantInt
	case term.KindBool:
		r.Pattern = PatternConstantBool
	case term.KindUnit:
		r.Pattern = PatternConstantUnit
	case term.KindByteString:
		r.Pattern = PatternConstantBytes
	case term.KindString:
		r.Pattern = PatternConstantString
	case term.KindData:
		r.Pattern = PatternConstantData
	case term.KindList:
		r.Pattern = PatternConstantList
	case term.KindPair:
		r.Pattern = PatternConstantPair
	}
	return r
}

// analyzeLambda tries the lambda patterns of spec.md section 4.3 step 4, in
// order.
func analyzeLambda(name string, original term.Term, lam *term.Lam) (Resolved, bool) {
	// (a) Lam(x, Var(x)) -> identity
	if v, ok := lam.Body.(*term.Var); ok && v.Name == lam.Param {
		return Resolved{Name: name, Value: original, Category: CategoryInline, InlineValue: lam.Param, Pattern: PatternIdentity}, true
	}

	// (b) Lam(x, App(Builtin(b), Var(x))) -> builtin_wrapper
	if app, ok := lam.Body.(*term.App); ok {
		if b, ok := app.Func.(*term.Builtin); ok {
			if v, ok := app.Arg.(*term.Var); ok && v.Name == lam.Param {
				alias := stdlibAlias(b.Name)
				return Resolved{Name: name, Value: original, Category: CategoryRename, SemanticName: alias, Pattern: PatternBuiltinWrapper}, true
			}
		}
	}

	// (c) is_constr_n: body flattens to equalsInteger(fstPair(unConstrData(x)), N)
	if idx, scrut, ok := matchIsConstrN(lam.Body); ok {
		if v, ok := scrut.(*term.Var); ok && v.Name == lam.Param {
			name2 := fmt.Sprintf("is_constr_%d", idx)
			return Resolved{Name: name, Value: original, Category: CategoryRename, SemanticName: name2, Pattern: PatternIsConstrN, ConstrIndex: idx}, true
		}
	}

	// (d) field_accessor: body is headList(tailList^k(sndPair(unConstrData(x))))
	if k, scrut, ok := matchFieldAccessor(lam.Body); ok {
		if v, ok := scrut.(*term.Var); ok && v.Name == lam.Param {
			name2 := fmt.Sprintf("get_field_%d", k)
			return Resolved{Name: name, Value: original, Category: CategoryRename, SemanticName: name2, Pattern: PatternFieldAccessor, ConstrIndex: k}, true
		}
	}

	// (e) two-parameter patterns: Lam(a, Lam(b, ...))
	if inner, ok := lam.Body.(*term.Lam); ok {
		a, b := lam.Param, inner.Param

		// a(b) -> apply
		if app, ok := inner.Body.(*term.App); ok {
			if fv, ok := app.Func.(*term.Var); ok && fv.Name == a {
				if av, ok := app.Arg.(*term.Var); ok && av.Name == b {
					return Resolved{Name: name, Value: original, Category: CategoryInline,
						InlineValue: fmt.Sprintf("%s(%s)", a, b), Pattern: PatternApply}, true
				}
			}
		}

		if spine, ok := flattenIfThenElse(inner.Body); ok {
			cond, then, els := spine[0], spine[1], spine[2]
			if isVar(cond, a) && isConstFalse(els) && isVar(then, b) {
				return Resolved{Name: name, Value: original, Category: CategoryRename, SemanticName: "and", Pattern: PatternBooleanAnd}, true
			}
			if isVar(cond, a) && isConstTrue(then) && isVar(els, b) {
				return Resolved{Name: name, Value: original, Category: CategoryRename, SemanticName: "or", Pattern: PatternBooleanOr}, true
			}
		}
	}

	return Resolved{}, false
}

// analyzeApp handles spec.md section 4.3 step 5: App-shaped values.
func analyzeApp(name string, original term.Term, app *term.App) (Resolved, bool) {
	spine := term.FlattenApp(app)
	head := spine[0]
	args := spine[1:]

	if b, ok := head.(*term.Builtin); ok {
		entry, known := stdlib.Lookup(b.Name)
		if known && len(args) < entry.Arity {
			semName := partialBuiltinName(b.Name, args)
			rendered := make([]string, len(args))
			for i, a := range args {
				rendered[i] = constLiteral(a)
			}
			return Resolved{
				Name: name, Value: original, Category: CategoryRename,
				SemanticName: semName, Pattern: PatternPartialBuiltin,
				PartialArgs: rendered, PartialBuiltin: b.Name,
			}, true
		}
	}

	// recursion-like shape: head is a Var (tentatively unknown binding),
	// second component is a Lam.
	if v, ok := head.(*term.Var); ok && len(args) >= 2 {
		if _, ok := args[1].(*term.Lam); ok {
			_ = v
			return Resolved{Name: name, Value: original, Category: CategoryKeep, Pattern: PatternListFold}, true
		}
	}

	return Resolved{}, false
}

// partialBuiltinName derives a specialized semantic name for a partially
// applied builtin when the bound argument is a small integer constant.
func partialBuiltinName(builtin string, args []term.Term) string {
	if len(args) == 1 {
		if c, ok := args[0].(*term.Const); ok && c.Kind == term.KindInteger {
			n, ok := c.Integer.Int64()
			if ok == nil {
				switch builtin {
				case "equalsInteger":
					return fmt.Sprintf("eq_%d", n)
				case "addInteger":
					if n >= 0 {
						return fmt.Sprintf("add_%d", n)
					}
					return fmt.Sprintf("sub_%d", -n)
				case "subtractInteger":
					if n >= 0 {
						return fmt.Sprintf("sub_%d", n)
					}
					return fmt.Sprintf("add_%d", -n)
				}
			}
		}
	}
	return stdlibAlias(builtin) + "_partial"
}

func constLiteral(t term.Term) string {
	c, ok := term.UnwrapForceDelay(t).(*term.Const)
	if !ok {
		return "?"
	}
	switch c.Kind {
	case term.KindInteger:
		return c.Integer.Text('f')
	case term.KindBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case term.KindByteString:
		return fmt.Sprintf("#\"%x\"", c.ByteString)
	case term.KindString:
		return fmt.Sprintf("%q", c.String)
	}
	return "?"
}

func stdlibAlias(builtin string) string {
	if e, ok := stdlib.Lookup(builtin); ok {
		if e.Rename != "" {
			return e.Rename
		}
	}
	return builtin
}

// --- structural matchers -----------------------------------------------

func isVar(t term.Term, name string) bool {
	v, ok := term.UnwrapForceDelay(t).(*term.Var)
	return ok && v.Name == name
}

func isConstFalse(t term.Term) bool {
	c, ok := term.UnwrapForceDelay(t).(*term.Const)
	return ok && c.Kind == term.KindBool && !c.Bool
}

func isConstTrue(t term.Term) bool {
	c, ok := term.UnwrapForceDelay(t).(*term.Const)
	return ok && c.Kind == term.KindBool && c.Bool
}

// flattenIfThenElse recognizes ifThenElse(cond, then, else) (possibly
// Force-wrapped, possibly with Delay-wrapped branches) and returns
// [cond, then, else].
func flattenIfThenElse(t term.Term) ([3]term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 4 {
		return [3]term.Term{}, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "ifThenElse" {
		return [3]term.Term{}, false
	}
	then := term.UnwrapForceDelay(spine[2])
	els := term.UnwrapForceDelay(spine[3])
	return [3]term.Term{spine[1], then, els}, true
}

// matchIsConstrN recognizes equalsInteger(fstPair(unConstrData(x)), N).
func matchIsConstrN(t term.Term) (int, term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 3 {
		return 0, nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "equalsInteger" {
		return 0, nil, false
	}
	scrut, ok := matchFstUnConstr(spine[1])
	if !ok {
		return 0, nil, false
	}
	c, ok := term.UnwrapForceDelay(spine[2]).(*term.Const)
	if !ok || c.Kind != term.KindInteger {
		return 0, nil, false
	}
	n, err := c.Integer.Int64()
	if err != nil {
		return 0, nil, false
	}
	return int(n), scrut, true
}

func matchFstUnConstr(t term.Term) (term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 2 {
		return nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "fstPair" {
		return nil, false
	}
	return matchUnConstr(spine[1])
}

func matchUnConstr(t term.Term) (term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 2 {
		return nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "unConstrData" {
		return nil, false
	}
	return spine[1], true
}

// matchFieldAccessor recognizes headList(tailList^k(sndPair(unConstrData(x)))).
func matchFieldAccessor(t term.Term) (int, term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 2 {
		return 0, nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "headList" {
		return 0, nil, false
	}
	k, inner, ok := peelTails(spine[1])
	if !ok {
		return 0, nil, false
	}
	scrut, ok := matchSndUnConstr(inner)
	if !ok {
		return 0, nil, false
	}
	return k, scrut, true
}

func peelTails(t term.Term) (int, term.Term, bool) {
	k := 0
	cur := t
	for {
		spine := term.FlattenApp(cur)
		if len(spine) == 2 {
			if b, ok := spine[0].(*term.Builtin); ok && b.Name == "tailList" {
				k++
				cur = spine[1]
				continue
			}
		}
		break
	}
	return k, cur, true
}

func matchSndUnConstr(t term.Term) (term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 2 {
		return nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "sndPair" {
		return nil, false
	}
	return matchUnConstr(spine[1])
}
