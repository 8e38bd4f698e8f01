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

// Package contract assembles the independently-computed entry shape,
// binding environment and validation-check scan into one ContractStructure
// describing a validator (spec.md section 3).
package contract // import "github.com/will-break-it/uplc2aiken/internal/contract"

import (
	"github.com/will-break-it/uplc2aiken/internal/binding"
	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/entry"
	"github.com/will-break-it/uplc2aiken/internal/pattern"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

// CheckKind tags the semantic role of a detected validation check.
type CheckKind int

const (
	CheckSignature CheckKind = iota
	CheckDeadline
	CheckValue
	CheckEquality
	CheckComparison
	CheckOther
)

// ValidationCheck is one semantic tag attached to a detected boolean
// sub-expression of the validator body.
type ValidationCheck struct {
	Kind CheckKind
	Expr term.Term
}

// DatumUsage describes how the validator's datum parameter is used.
type DatumUsage struct {
	IsUsed bool
	Fields []int
}

// RedeemerUsage describes the validator's redeemer parameter.
type RedeemerUsage struct {
	Variants     []int
	MatchPattern *pattern.ConstrMatch
}

// Structure is the analyzed shape of a validator, gluing together entry
// detection, binding analysis and pattern detection (spec.md section 3,
// "ContractStructure").
type Structure struct {
	Type              catalogue.ScriptPurpose
	Params            []string
	ScriptParams       []entry.ScriptParameter
	UtilityBindings    map[string]entry.UtilityRef
	Datum              DatumUsage
	Redeemer           RedeemerUsage
	Checks             []ValidationCheck
	RawBody            term.Term
	BodyWithBindings   term.Term
	FullAST            term.Term
	Env                *binding.Environment
	HoistedFunctions   []string
}

// Analyze runs entry detection, builds the binding environment, and
// scans the validator body for datum/redeemer usage and validation
// checks. renderConst renders constant terms to Aiken literal syntax (see
// package codegen); it is threaded through to avoid a dependency cycle.
func Analyze(root term.Term, renderConst func(term.Term) string) *Structure {
	shape := entry.Detect(root)
	env := binding.Build(shape.Body, renderConst)

	s := &Structure{
		Type:            shape.Purpose,
		Params:          shape.Params,
		ScriptParams:    shape.ScriptParams,
		UtilityBindings: shape.UtilityBindings,
		RawBody:         shape.Body,
		BodyWithBindings: shape.Rewrapped,
		FullAST:         root,
		Env:             env,
	}

	s.Datum = analyzeDatum(shape)
	s.Redeemer = analyzeRedeemer(shape)
	s.Checks = scanChecks(shape.Body)
	return s
}

func analyzeDatum(shape entry.Shape) DatumUsage {
	if shape.Purpose != catalogue.PurposeSpend {
		return DatumUsage{}
	}
	var datumParam string
	for _, p := range shape.Params {
		if p == "datum" || containsHint(p, "datum") {
			datumParam = p
			break
		}
	}
	if datumParam == "" && len(shape.Params) > 0 {
		datumParam = shape.Params[0]
	}
	if datumParam == "" {
		return DatumUsage{}
	}
	used := false
	var fields []int
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch x := t.(type) {
		case nil:
			return
		case *term.App:
			if acc, ok := pattern.DetectDataFieldAccess(x); ok {
				if v, ok := acc.Scrutinee.(*term.Var); ok && v.Name == datumParam {
					used = true
					fields = append(fields, acc.Index)
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
	walk(shape.Body)
	return DatumUsage{IsUsed: used, Fields: fields}
}

func containsHint(name, hint string) bool {
	if len(name) < len(hint) {
		return false
	}
	for i := 0; i+len(hint) <= len(name); i++ {
		if name[i:i+len(hint)] == hint {
			return true
		}
	}
	return false
}

func analyzeRedeemer(shape entry.Shape) RedeemerUsage {
	var redeemerParam string
	for _, p := range shape.Params {
		if p == "redeemer" || containsHint(p, "redeemer") {
			redeemerParam = p
			break
		}
	}
	if redeemerParam == "" {
		if shape.Purpose == catalogue.PurposeSpend && len(shape.Params) > 1 {
			redeemerParam = shape.Params[1]
		} else if len(shape.Params) > 0 {
			redeemerParam = shape.Params[0]
		}
	}
	if redeemerParam == "" {
		return RedeemerUsage{}
	}
	match, ok := findConstrMatchOn(shape.Body, redeemerParam)
	if !ok {
		return RedeemerUsage{}
	}
	variants := make([]int, len(match.Branches))
	for i, b := range match.Branches {
		variants[i] = b.Index
	}
	return RedeemerUsage{Variants: variants, MatchPattern: &match}
}

func findConstrMatchOn(t term.Term, scrutineeName string) (pattern.ConstrMatch, bool) {
	var found pattern.ConstrMatch
	ok := false
	var walk func(term.Term)
	walk = func(t term.Term) {
		if ok {
			return
		}
		if m, matched := pattern.DetectConstrMatch(t); matched {
			if v, isVar := m.Scrutinee.(*term.Var); isVar && v.Name == scrutineeName {
				found, ok = m, true
				return
			}
		}
		switch x := t.(type) {
		case nil:
			return
		case *term.App:
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
	walk(t)
	return found, ok
}

// scanChecks walks the body and tags every application whose head is a
// signature-verification, integer-comparison, equality or integer
// arithmetic builtin with a semantic role. This is a best-effort
// heuristic classification, not a formal proof of validator intent.
func scanChecks(body term.Term) []ValidationCheck {
	var checks []ValidationCheck
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch x := t.(type) {
		case nil:
			return
		case *term.App:
			if name, ok := term.GetBuiltinHead(x); ok {
				if kind, tagged := checkKindForBuiltin(name); tagged {
					checks = append(checks, ValidationCheck{Kind: kind, Expr: x})
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
	return checks
}

func checkKindForBuiltin(name string) (CheckKind, bool) {
	switch name {
	case "verifyEd25519Signature", "verifyEcdsaSecp256k1Signature", "verifySchnorrSecp256k1Signature":
		return CheckSignature, true
	case "lessThanInteger", "lessThanEqualsInteger":
		return CheckDeadline, true
	case "equalsInteger", "equalsByteString", "equalsString", "equalsData":
		return CheckEquality, true
	case "addInteger", "subtractInteger", "multiplyInteger":
		return CheckValue, true
	}
	return CheckOther, false
}
