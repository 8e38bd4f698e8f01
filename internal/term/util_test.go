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

package term_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/term"
)

func TestUnwrapForceDelay(t *testing.T) {
	b := &term.Builtin{Name: "addInteger"}
	wrapped := &term.Force{Inner: &term.Delay{Inner: &term.Force{Inner: b}}}
	qt.Assert(t, qt.Equals(term.UnwrapForceDelay(wrapped), term.Term(b)))
}

func TestFlattenApp(t *testing.T) {
	f := &term.Var{Name: "f"}
	a := &term.Var{Name: "a"}
	b := &term.Var{Name: "b"}
	c := &term.Var{Name: "c"}
	app := &term.App{Func: &term.App{Func: &term.App{Func: f, Arg: a}, Arg: b}, Arg: c}
	got := term.FlattenApp(app)
	qt.Assert(t, qt.HasLen(got, 4))
	qt.Assert(t, qt.Equals(got[0], term.Term(f)))
	qt.Assert(t, qt.Equals(got[1], term.Term(a)))
	qt.Assert(t, qt.Equals(got[2], term.Term(b)))
	qt.Assert(t, qt.Equals(got[3], term.Term(c)))
}

func TestFlattenLambdaChain(t *testing.T) {
	body := &term.Var{Name: "x"}
	chain := &term.Lam{Param: "a", Body: &term.Lam{Param: "b", Body: &term.Lam{Param: "c", Body: body}}}
	params, b := term.FlattenLambdaChain(chain, 0)
	qt.Assert(t, qt.DeepEquals(params, []string{"a", "b", "c"}))
	qt.Assert(t, qt.Equals(b, term.Term(body)))
}

func TestFlattenLambdaChainBounded(t *testing.T) {
	body := &term.Var{Name: "x"}
	chain := &term.Lam{Param: "a", Body: &term.Lam{Param: "b", Body: body}}
	params, rest := term.FlattenLambdaChain(chain, 1)
	qt.Assert(t, qt.DeepEquals(params, []string{"a"}))
	if _, ok := rest.(*term.Lam); !ok {
		t.Fatalf("expected remaining lambda, got %T", rest)
	}
}

func TestCollectFreeVarsShadowing(t *testing.T) {
	// Lam(x, App(Var(x), Var(y)))  -- x bound, y free
	lam := &term.Lam{Param: "x", Body: &term.App{Func: &term.Var{Name: "x"}, Arg: &term.Var{Name: "y"}}}
	free := term.CollectFreeVars(lam, nil)
	qt.Assert(t, qt.IsFalse(free["x"]))
	qt.Assert(t, qt.IsTrue(free["y"]))
}

func TestReferencesVar(t *testing.T) {
	lam := &term.Lam{Param: "x", Body: &term.Var{Name: "x"}}
	qt.Assert(t, qt.IsFalse(term.ReferencesVar(lam, "x")))
}

func TestHasSelfCall(t *testing.T) {
	self := &term.Var{Name: "self"}
	body := &term.App{Func: self, Arg: self}
	qt.Assert(t, qt.IsTrue(term.HasSelfCall(body, "self")))
	qt.Assert(t, qt.IsFalse(term.HasSelfCall(body, "other")))
}

func TestIsSelfRecursiveLambda(t *testing.T) {
	self := &term.Var{Name: "self"}
	xs := &term.Var{Name: "xs"}
	body := &term.App{Func: &term.App{Func: self, Arg: self}, Arg: xs}
	lam := &term.Lam{Param: "self", Body: &term.Lam{Param: "xs", Body: body}}
	qt.Assert(t, qt.IsTrue(term.IsSelfRecursiveLambda(lam)))
}

func TestGetBuiltinHead(t *testing.T) {
	b := &term.Builtin{Name: "addInteger"}
	app := &term.App{Func: &term.App{Func: b, Arg: &term.Var{Name: "a"}}, Arg: &term.Var{Name: "b"}}
	name, ok := term.GetBuiltinHead(app)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(name, "addInteger"))
}
