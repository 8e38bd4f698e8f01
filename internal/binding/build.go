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

package binding

import "github.com/will-break-it/uplc2aiken/internal/term"

// Build walks root once, classifying every let-binding it finds — the
// UPLC pattern App(Lam(x, body), value), treated as let x = value in body
// — and returns the environment with every discovered binding pushed in
// lexical order. renderConst renders constant terms to Aiken literal
// syntax (see package codegen).
func Build(root term.Term, renderConst func(term.Term) string) *Environment {
	env := NewEnvironment()
	var walk func(term.Term, *Environment) *Environment
	walk = func(t term.Term, env *Environment) *Environment {
		switch x := t.(type) {
		case nil:
			return env
		case *term.App:
			if lam, ok := term.UnwrapForceDelay(x.Func).(*term.Lam); ok {
				r := Analyze(lam.Param, x.Arg, renderConst)
				next := env.Push(r)
				return walk(lam.Body, walk(x.Arg, next))
			}
			return walk(x.Arg, walk(x.Func, env))
		case *term.Lam:
			return walk(x.Body, env.PushScope())
		case *term.Force:
			return walk(x.Inner, env)
		case *term.Delay:
			return walk(x.Inner, env)
		case *term.Constr:
			for _, a := range x.Args {
				env = walk(a, env)
			}
			return env
		case *term.Case:
			env = walk(x.Scrutinee, env)
			for _, b := range x.Branches {
				env = walk(b, env)
			}
			return env
		default:
			return env
		}
	}
	return walk(root, env)
}
