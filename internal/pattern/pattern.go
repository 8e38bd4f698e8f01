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

// Package pattern recognizes high-level idioms — transaction-field
// access, constructor matches, boolean chains, and field accessors —
// inside an application spine of low-level builtins (spec.md section
// 4.4). Every detector is purely syntactic: none evaluates a term, and
// none mutates its input.
package pattern // import "github.com/will-break-it/uplc2aiken/internal/pattern"

import (
	"github.com/will-break-it/uplc2aiken/internal/stdlib"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

// TxFieldAccess is the result of the transaction-field-access detector.
type TxFieldAccess struct {
	Scrutinee term.Term
	Index     int
}

// DataFieldAccess is the result of the data-field-access detector: the
// same accessor shape, but over an arbitrary (non-tx) scrutinee.
type DataFieldAccess struct {
	Scrutinee term.Term
	Index     int
	Accessor  string
}

// ConstrBranch is one arm of a detected constructor-match chain.
type ConstrBranch struct {
	Index int
	Body  term.Term
}

// ConstrMatch is the result of the constructor-match detector.
type ConstrMatch struct {
	Scrutinee term.Term
	Branches  []ConstrBranch
	// Default is nil when the chain's final else is Error (no default).
	Default term.Term
}

// BooleanChainKind distinguishes AND- from OR-chains.
type BooleanChainKind int

const (
	ChainAnd BooleanChainKind = iota
	ChainOr
)

// BooleanChain is the result of the boolean-chain detector.
type BooleanChain struct {
	Kind     BooleanChainKind
	Operands []term.Term
}

// PartialConstrCheck is the result of the partial-constr-check detector.
type PartialConstrCheck struct {
	Scrutinee term.Term
	Index     int
}

// accessorChain recognizes headList(tailList^k(sndPair(unConstrData(scrutinee))))
// and returns (k, scrutinee, ok).
func accessorChain(t term.Term) (int, term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 2 {
		return 0, nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "headList" {
		return 0, nil, false
	}
	k := 0
	cur := spine[1]
	for {
		s := term.FlattenApp(cur)
		if len(s) == 2 {
			if bb, ok := s[0].(*term.Builtin); ok && bb.Name == "tailList" {
				k++
				cur = s[1]
				continue
			}
		}
		break
	}
	s := term.FlattenApp(cur)
	if len(s) != 2 {
		return 0, nil, false
	}
	b2, ok := s[0].(*term.Builtin)
	if !ok || b2.Name != "sndPair" {
		return 0, nil, false
	}
	s3 := term.FlattenApp(s[1])
	if len(s3) != 2 {
		return 0, nil, false
	}
	b3, ok := s3[0].(*term.Builtin)
	if !ok || b3.Name != "unConstrData" {
		return 0, nil, false
	}
	return k, s3[1], true
}

// DetectTxFieldAccess recognizes the shape
// headList(tailList^k(sndPair(unConstrData(Var(txName))))), restricted to
// a scrutinee that is exactly Var(txName).
func DetectTxFieldAccess(t term.Term, txName string) (TxFieldAccess, bool) {
	k, scrut, ok := accessorChain(t)
	if !ok {
		return TxFieldAccess{}, false
	}
	v, ok := scrut.(*term.Var)
	if !ok || v.Name != txName {
		return TxFieldAccess{}, false
	}
	return TxFieldAccess{Scrutinee: scrut, Index: k}, true
}

// DetectDataFieldAccess recognizes the same shape for an arbitrary
// scrutinee, returning a generic accessor string get_field_{k}.
func DetectDataFieldAccess(t term.Term) (DataFieldAccess, bool) {
	k, scrut, ok := accessorChain(t)
	if !ok {
		return DataFieldAccess{}, false
	}
	return DataFieldAccess{Scrutinee: scrut, Index: k, Accessor: fieldAccessorName(k)}, true
}

func fieldAccessorName(k int) string {
	return "get_field_" + itoa(k)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// DetectConstrMatch recognizes a chain of
// ifThenElse(equalsInteger(fstPair(unConstrData(s)), n), then_n, else)
// all sharing the same scrutinee s, and returns the ordered branches plus
// an optional default (absent when the final else is Error).
//
// AND and OR chains (see DetectBooleanChain) must not be mixed into this
// detector's result: a chain only counts as a constructor match while
// every condition is an equalsInteger-over-fstPair-over-unConstrData test
// against the same scrutinee.
func DetectConstrMatch(t term.Term) (ConstrMatch, bool) {
	var branches []ConstrBranch
	var scrutinee term.Term
	cur := t
	for {
		spine := term.FlattenApp(cur)
		if len(spine) != 4 {
			break
		}
		b, ok := spine[0].(*term.Builtin)
		if !ok || b.Name != "ifThenElse" {
			break
		}
		idx, scrut, ok := matchEqFstUnConstr(spine[1])
		if !ok {
			break
		}
		if scrutinee == nil {
			scrutinee = scrut
		} else if !sameVar(scrutinee, scrut) {
			break
		}
		then := term.UnwrapForceDelay(spine[2])
		branches = append(branches, ConstrBranch{Index: idx, Body: then})
		cur = term.UnwrapForceDelay(spine[3])
	}
	if len(branches) == 0 {
		return ConstrMatch{}, false
	}
	if _, isErr := cur.(*term.Error); isErr {
		return ConstrMatch{Scrutinee: scrutinee, Branches: branches, Default: nil}, true
	}
	return ConstrMatch{Scrutinee: scrutinee, Branches: branches, Default: cur}, true
}

func sameVar(a, b term.Term) bool {
	av, aok := a.(*term.Var)
	bv, bok := b.(*term.Var)
	return aok && bok && av.Name == bv.Name
}

func matchEqFstUnConstr(t term.Term) (int, term.Term, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 3 {
		return 0, nil, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "equalsInteger" {
		return 0, nil, false
	}
	s2 := term.FlattenApp(spine[1])
	if len(s2) != 2 {
		return 0, nil, false
	}
	b2, ok := s2[0].(*term.Builtin)
	if !ok || b2.Name != "fstPair" {
		return 0, nil, false
	}
	s3 := term.FlattenApp(s2[1])
	if len(s3) != 2 {
		return 0, nil, false
	}
	b3, ok := s3[0].(*term.Builtin)
	if !ok || b3.Name != "unConstrData" {
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
	return int(n), s3[1], true
}

// DetectPartialConstrCheck recognizes a bare
// equalsInteger(fstPair(unConstrData(x)), N) not embedded in an
// ifThenElse — the check on its own, e.g. as a boolean-valued binding
// body.
func DetectPartialConstrCheck(t term.Term) (PartialConstrCheck, bool) {
	idx, scrut, ok := matchEqFstUnConstr(t)
	if !ok {
		return PartialConstrCheck{}, false
	}
	return PartialConstrCheck{Scrutinee: scrut, Index: idx}, true
}

// DetectBooleanChain recognizes a chain of ifThenElse(cond, then, else)
// where one branch is a constant (False for AND, True for OR), peeling
// delay wrappers from both branches. The first step's kind is fixed for
// the whole chain: AND and OR are never mixed within one result.
func DetectBooleanChain(t term.Term) (BooleanChain, bool) {
	spine := term.FlattenApp(t)
	if len(spine) != 4 {
		return BooleanChain{}, false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok || b.Name != "ifThenElse" {
		return BooleanChain{}, false
	}
	then := term.UnwrapForceDelay(spine[2])
	els := term.UnwrapForceDelay(spine[3])

	switch {
	case isBoolConst(els, false):
		return collectChain(ChainAnd, spine[1], then, func(t term.Term) (term.Term, term.Term, bool) {
			s := term.FlattenApp(t)
			if len(s) != 4 {
				return nil, nil, false
			}
			if bb, ok := s[0].(*term.Builtin); !ok || bb.Name != "ifThenElse" {
				return nil, nil, false
			}
			e := term.UnwrapForceDelay(s[3])
			if !isBoolConst(e, false) {
				return nil, nil, false
			}
			return s[1], term.UnwrapForceDelay(s[2]), true
		}), true
	case isBoolConst(then, true):
		return collectChain(ChainOr, spine[1], els, func(t term.Term) (term.Term, term.Term, bool) {
			s := term.FlattenApp(t)
			if len(s) != 4 {
				return nil, nil, false
			}
			if bb, ok := s[0].(*term.Builtin); !ok || bb.Name != "ifThenElse" {
				return nil, nil, false
			}
			th := term.UnwrapForceDelay(s[2])
			if !isBoolConst(th, true) {
				return nil, nil, false
			}
			return s[1], term.UnwrapForceDelay(s[3]), true
		}), true
	}
	return BooleanChain{}, false
}

func isBoolConst(t term.Term, want bool) bool {
	c, ok := t.(*term.Const)
	return ok && c.Kind == term.KindBool && c.Bool == want
}

// collectChain walks a right-leaning chain of the same shape, gathering
// operands. firstCond/firstOperand are the already-matched head of the
// chain; step extracts (cond, operand) from a further nested candidate, or
// reports false when the chain ends.
func collectChain(kind BooleanChainKind, firstCond, firstOperand term.Term, step func(term.Term) (term.Term, term.Term, bool)) BooleanChain {
	operands := []term.Term{firstCond}
	cur := firstOperand
	for {
		cond, operand, ok := step(cur)
		if !ok {
			operands = append(operands, cur)
			break
		}
		operands = append(operands, cond)
		cur = operand
	}
	return BooleanChain{Kind: kind, Operands: operands}
}

// DetectPhantomWrapper recognizes a single-parameter lambda whose body is
// nothing but a force-polymorphic builtin (spec.md section 6) applied to
// its own parameter, with the builtin's type-instantiation Force layers
// already peeled by FlattenApp and a run of leading phantom arguments
// standing in for them. It returns the wrapped builtin's name so the
// caller can emit a direct reference to it instead of a closure
// re-deriving the same call (spec.md section 4.6, Lam rule and
// "Application emission" step 7).
func DetectPhantomWrapper(lam *term.Lam) (string, bool) {
	spine := term.FlattenApp(lam.Body)
	if len(spine) < 2 {
		return "", false
	}
	b, ok := spine[0].(*term.Builtin)
	if !ok {
		return "", false
	}
	forceLayers, known := stdlib.ForcePolymorphic[b.Name]
	if !known {
		return "", false
	}
	last, ok := spine[len(spine)-1].(*term.Var)
	if !ok || last.Name != lam.Param {
		return "", false
	}
	phantomArgs := len(spine) - 2
	if phantomArgs != forceLayers {
		return "", false
	}
	return b.Name, true
}
