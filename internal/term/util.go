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

package term

// DefaultMaxLambdaChain bounds FlattenLambdaChain when no explicit max is
// supplied.
const DefaultMaxLambdaChain = 6

// UnwrapForceDelay strips any outer Force/Delay layers, returning the
// first non-Force/Delay term found. Force and Delay carry no runtime
// value, so peeling them is always safe.
func UnwrapForceDelay(t Term) Term {
	for {
		switch x := t.(type) {
		case *Force:
			t = x.Inner
		case *Delay:
			t = x.Inner
		default:
			return t
		}
	}
}

// FlattenApp returns the application spine of t: for App(App(App(f, a), b), c)
// it yields [f, a, b, c], with any Force wrapping the head peeled off.
func FlattenApp(t Term) []Term {
	var args []Term
	cur := t
	for {
		if app, ok := cur.(*App); ok {
			args = append(args, app.Arg)
			cur = app.Func
			continue
		}
		break
	}
	head := UnwrapForceDelay(cur)
	out := make([]Term, 0, len(args)+1)
	out = append(out, head)
	for i := len(args) - 1; i >= 0; i-- {
		out = append(out, args[i])
	}
	return out
}

// FlattenLambdaChain unwraps a chain of nested single-parameter lambdas,
// Lam(a, Lam(b, Lam(c, body))), returning the parameter list in binding
// order and the innermost body. At most max lambdas are unwrapped; the
// remainder (if any) is left as part of body. max <= 0 uses
// DefaultMaxLambdaChain.
func FlattenLambdaChain(t Term, max int) ([]string, Term) {
	if max <= 0 {
		max = DefaultMaxLambdaChain
	}
	var params []string
	cur := t
	for len(params) < max {
		lam, ok := cur.(*Lam)
		if !ok {
			break
		}
		params = append(params, lam.Param)
		cur = lam.Body
	}
	return params, cur
}

// CollectFreeVars returns the set of variable names referenced in t that
// are not in bound and not shadowed by an enclosing binder within t.
func CollectFreeVars(t Term, bound map[string]bool) map[string]bool {
	free := map[string]bool{}
	var walk func(Term, map[string]bool)
	walk = func(t Term, bound map[string]bool) {
		switch x := t.(type) {
		case nil:
			return
		case *Var:
			if !bound[x.Name] {
				free[x.Name] = true
			}
		case *Lam:
			inner := extend(bound, x.Param)
			walk(x.Body, inner)
		case *App:
			walk(x.Func, bound)
			walk(x.Arg, bound)
		case *Force:
			walk(x.Inner, bound)
		case *Delay:
			walk(x.Inner, bound)
		case *Builtin:
		case *Const:
			walkConst(x, bound, walk)
		case *Constr:
			for _, a := range x.Args {
				walk(a, bound)
			}
		case *Case:
			walk(x.Scrutinee, bound)
			for _, b := range x.Branches {
				walk(b, bound)
			}
		case *Error:
		}
	}
	walk(t, bound)
	return free
}

func walkConst(c *Const, bound map[string]bool, walk func(Term, map[string]bool)) {
	if c.Kind == KindList {
		for _, e := range c.List {
			walk(e, bound)
		}
	}
	if c.Kind == KindPair {
		walk(c.Pair[0], bound)
		walk(c.Pair[1], bound)
	}
}

func extend(bound map[string]bool, name string) map[string]bool {
	out := make(map[string]bool, len(bound)+1)
	for k := range bound {
		out[k] = true
	}
	out[name] = true
	return out
}

// ReferencesVar reports whether t references name as a free variable,
// respecting lexical shadowing.
func ReferencesVar(t Term, name string) bool {
	return CollectFreeVars(t, nil)[name]
}

// HasSelfCall reports whether t contains an application whose head is
// Var(self) applied to at least one argument that is itself Var(self) —
// the App(Var(self), Var(self), ...) shape used to detect recursive
// self-application encodings.
func HasSelfCall(t Term, self string) bool {
	found := false
	var walk func(Term)
	walk = func(t Term) {
		if found {
			return
		}
		switch x := t.(type) {
		case nil:
			return
		case *App:
			spine := FlattenApp(x)
			if v, ok := spine[0].(*Var); ok && v.Name == self {
				for _, arg := range spine[1:] {
					if av, ok := arg.(*Var); ok && av.Name == self {
						found = true
						return
					}
				}
			}
			walk(x.Func)
			walk(x.Arg)
		case *Lam:
			if x.Param == self {
				return // shadowed
			}
			walk(x.Body)
		case *Force:
			walk(x.Inner)
		case *Delay:
			walk(x.Inner)
		case *Constr:
			for _, a := range x.Args {
				walk(a)
			}
		case *Case:
			walk(x.Scrutinee)
			for _, b := range x.Branches {
				walk(b)
			}
		}
	}
	walk(t)
	return found
}

// GetBuiltinHead returns the builtin name if t, after peeling forces, is a
// Builtin or an application whose spine head is a Builtin.
func GetBuiltinHead(t Term) (string, bool) {
	head := FlattenApp(t)[0]
	if b, ok := head.(*Builtin); ok {
		return b.Name, true
	}
	return "", false
}

// IsSelfRecursiveLambda reports whether t has the shape
// Lam(self, Lam(_, body)) where body contains a self-call to self.
func IsSelfRecursiveLambda(t Term) bool {
	outer, ok := t.(*Lam)
	if !ok {
		return false
	}
	inner, ok := outer.Body.(*Lam)
	if !ok {
		return false
	}
	return HasSelfCall(inner.Body, outer.Param)
}
