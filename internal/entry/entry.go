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

// Package entry recognizes the validator's entry shape: pre-applied
// script parameters (Shape A), the V3 Aiken utility-binding pattern
// (Shape B), and plain lambda-chain purpose inference (Shape C) —
// spec.md section 4.5.
package entry // import "github.com/will-break-it/uplc2aiken/internal/entry"

import (
	"fmt"
	"strings"

	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

// ScriptParameter is a pre-applied constant baked into the bytecode at
// deployment time.
type ScriptParameter struct {
	Name  string
	Value term.Term
	// Rendered is a slot for the pretty-printed Aiken literal for Value.
	// Neither Detect nor the contract analyzer fills it in; codegen renders
	// Value itself with RenderConst when it emits the constant declaration.
	Rendered string
}

// UtilityRef names the builtin a Shape-B utility parameter shortcuts to.
type UtilityRef struct {
	Param string
	Name  string // e.g. "constr_tag", "constr_fields", or a stdlib alias
}

// Shape is the result of validator-entry detection.
type Shape struct {
	ScriptParams     []ScriptParameter
	UtilityBindings  map[string]UtilityRef
	Params           []string // real runtime parameters, in order
	Body             term.Term
	Purpose          catalogue.ScriptPurpose
	// Rewrapped is the body the generator renders; Detect sets it to Body
	// unchanged. Helper applications that unwrapScriptParams stops at stay
	// in it in their App(Lam(p, body), arg) form, which the generator sees
	// as ordinary let-bindings. Non-builtin Shape B utilities are not
	// re-wrapped: their parameters are listed in Params instead.
	Rewrapped term.Term
}

// Detect unwraps parameter applications (Shape A), then tries the Shape B
// V3 pattern, falling back to the Shape C simple lambda-chain heuristic.
func Detect(root term.Term) Shape {
	params, body := unwrapScriptParams(root)

	if shapeB, ok := detectShapeB(body); ok {
		shapeB.ScriptParams = params
		return shapeB
	}

	return detectShapeC(params, body)
}

// unwrapScriptParams peels outer App(body, const) applications where the
// argument is a constant (bytestring, integer, or Data), naming each a
// ScriptParameter per the byte-length heuristic. A non-constant argument
// (a helper lambda) ends the peeling: it is not a script parameter but an
// internal helper binding, and it stays applied in the returned body.
func unwrapScriptParams(root term.Term) ([]ScriptParameter, term.Term) {
	type applied struct {
		value term.Term
	}
	var stack []applied
	cur := root
	for {
		app, ok := cur.(*term.App)
		if !ok {
			break
		}
		if _, ok := term.UnwrapForceDelay(app.Arg).(*term.Const); !ok {
			break
		}
		stack = append(stack, applied{value: app.Arg})
		cur = app.Func
	}
	// stack was collected innermost-applied-last; the outermost
	// application corresponds to the last constant bound (closest to the
	// body), so reverse to get deployment order.
	params := make([]ScriptParameter, len(stack))
	for i := range stack {
		v := stack[len(stack)-1-i].value
		params[i] = ScriptParameter{Name: nameForConst(v, i), Value: v}
	}
	return params, cur
}

func nameForConst(v term.Term, i int) string {
	c, ok := term.UnwrapForceDelay(v).(*term.Const)
	if !ok {
		return fmt.Sprintf("param_%d", i)
	}
	switch c.Kind {
	case term.KindByteString:
		switch len(c.ByteString) {
		case 28:
			return fmt.Sprintf("script_hash_%d", i)
		case 32:
			return fmt.Sprintf("policy_id_%d", i)
		}
	}
	return fmt.Sprintf("param_%d", i)
}

// detectShapeB recognizes: the outer lambda binds the script context; its
// body is Case(Constr(0, util_0, ..., util_k), Lam(a_0, ... Lam(a_k, body))).
func detectShapeB(body term.Term) (Shape, bool) {
	lam, ok := body.(*term.Lam)
	if !ok {
		return Shape{}, false
	}
	c, ok := lam.Body.(*term.Case)
	if !ok {
		return Shape{}, false
	}
	constr, ok := c.Scrutinee.(*term.Constr)
	if !ok || constr.Index != 0 {
		return Shape{}, false
	}
	if len(c.Branches) != 1 {
		return Shape{}, false
	}
	innerParams, innerBody := term.FlattenLambdaChain(c.Branches[0], len(constr.Args))
	if len(innerParams) != len(constr.Args) {
		return Shape{}, false
	}

	utilities := map[string]UtilityRef{}
	var realParams []string
	for i, u := range constr.Args {
		peeled := term.UnwrapForceDelay(u)
		if name, ok := compoundUtilityName(peeled); ok {
			utilities[innerParams[i]] = UtilityRef{Param: innerParams[i], Name: name}
			continue
		}
		if b, ok := peeled.(*term.Builtin); ok {
			utilities[innerParams[i]] = UtilityRef{Param: innerParams[i], Name: b.Name}
			continue
		}
		realParams = append(realParams, innerParams[i])
	}

	purpose := inferPurpose(realParams, innerBody)
	return Shape{
		UtilityBindings: utilities,
		Params:          realParams,
		Body:            innerBody,
		Purpose:         purpose,
		Rewrapped:       innerBody,
	}, true
}

// compoundUtilityName recognizes the two named compound utility shapes
// from spec.md section 4.5: fstPair∘unConstrData -> constr_tag and
// sndPair∘unConstrData -> constr_fields. It expects a Lam(x, ...) wrapper
// since utility bindings are values applied as Case branches in Shape B,
// themselves closures over the constructor field.
func compoundUtilityName(t term.Term) (string, bool) {
	lam, ok := t.(*term.Lam)
	if !ok {
		return "", false
	}
	spine := term.FlattenApp(lam.Body)
	if len(spine) != 2 {
		return "", false
	}
	outer, ok := spine[0].(*term.Builtin)
	if !ok {
		return "", false
	}
	inner := term.FlattenApp(spine[1])
	if len(inner) != 2 {
		return "", false
	}
	innerB, ok := inner[0].(*term.Builtin)
	if !ok || innerB.Name != "unConstrData" {
		return "", false
	}
	switch outer.Name {
	case "fstPair":
		return "constr_tag", true
	case "sndPair":
		return "constr_fields", true
	}
	return "", false
}

// detectShapeC recognizes an N-ary lambda prefix (N in 1..4) and infers
// purpose from arity plus parameter-name hints.
func detectShapeC(scriptParams []ScriptParameter, body term.Term) Shape {
	names, inner := term.FlattenLambdaChain(body, 4)
	purpose := purposeFromArity(len(names))
	if len(names) > 0 {
		if hinted, ok := purposeFromNameHints(names[0]); ok {
			purpose = hinted
		}
		if p := purposeFromFirstParamUsage(names[0], inner); p != catalogue.PurposeUnknown {
			purpose = p
		}
	}
	return Shape{
		ScriptParams: scriptParams,
		Params:       names,
		Body:         inner,
		Purpose:      purpose,
		Rewrapped:    inner,
	}
}

func purposeFromArity(n int) catalogue.ScriptPurpose {
	switch {
	case n >= 3:
		return catalogue.PurposeSpend
	case n == 2:
		return catalogue.PurposeMint
	case n == 1:
		return catalogue.PurposeMint
	default:
		return catalogue.PurposeUnknown
	}
}

func purposeFromNameHints(name string) (catalogue.ScriptPurpose, bool) {
	lower := strings.ToLower(name)
	for _, hint := range catalogue.NamingHints {
		if strings.Contains(lower, hint.Substring) {
			return hint.Purpose, true
		}
	}
	return "", false
}

// purposeFromFirstParamUsage inspects the first parameter's usage: a
// following unConstrData then headList/sndPair indicates spend.
func purposeFromFirstParamUsage(param string, body term.Term) catalogue.ScriptPurpose {
	found := catalogue.PurposeUnknown
	var walk func(term.Term)
	walk = func(t term.Term) {
		if found != catalogue.PurposeUnknown {
			return
		}
		switch x := t.(type) {
		case nil:
			return
		case *term.App:
			spine := term.FlattenApp(x)
			if b, ok := spine[0].(*term.Builtin); ok && b.Name == "unConstrData" && len(spine) == 2 {
				if v, ok := spine[1].(*term.Var); ok && v.Name == param {
					found = catalogue.PurposeSpend
					return
				}
			}
			walk(x.Func)
			walk(x.Arg)
		case *term.Lam:
			walk(x.Body)
		case *term.Force:
			walk(x.Inner)
		case *term.Delay:
			walk(x.Inner)
		case *term.Constr:
			for _, a := range x.Args {
				walk(a)
			}
		case *term.Case:
			walk(x.Scrutinee)
			for _, b := range x.Branches {
				walk(b)
			}
		}
	}
	walk(body)
	return found
}

func inferPurpose(params []string, body term.Term) catalogue.ScriptPurpose {
	if len(params) > 0 {
		if hinted, ok := purposeFromNameHints(params[0]); ok {
			return hinted
		}
		if p := purposeFromFirstParamUsage(params[0], body); p != catalogue.PurposeUnknown {
			return p
		}
	}
	return purposeFromArity(len(params))
}
