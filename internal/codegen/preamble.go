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
)

// AssemblePreamble prepends a `let name = value` statement for every
// CategoryKeep binding scheduled in ctx's current preamble scope
// (ctx.PendingKeepBindings) ahead of bodyExpr, topologically sorted so a
// binding whose rendered value references another keep binding always
// follows it (spec.md section 4.6, "Preamble emission"), then clears the
// scheduled list so a later call against the same scope does not re-emit
// them.
//
// It is called once per preamble scope: at the top of each hoisted
// function body (see hoistSelfRecursive) and once at the top of each
// validator handler body (see validator.go).
func AssemblePreamble(ctx *Context, bodyExpr string) string {
	names := *ctx.PendingKeepBindings
	if len(names) == 0 {
		return bodyExpr
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := ctx.Shared.KeepValues[name]; ok {
			values[name] = v
		}
	}
	var b strings.Builder
	for _, name := range topoSortKeepBindings(names, values) {
		value, ok := values[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "let %s = %s\n", name, value)
	}
	b.WriteString(bodyExpr)
	*ctx.PendingKeepBindings = nil
	return b.String()
}

// topoSortKeepBindings orders names so that any binding referencing
// another keep binding in its rendered value comes after it, via a
// post-order depth-first walk over the dependency edges. Bindings with no
// dependency relationship keep their relative first-encounter order, and
// a dependency cycle (which a well-formed let-chain never produces) is
// broken by skipping the back edge rather than looping forever.
func topoSortKeepBindings(names []string, values map[string]string) []string {
	visited := make(map[string]int, len(names)) // 0 unvisited, 1 in-progress, 2 done
	order := make([]string, 0, len(names))
	var visit func(string)
	visit = func(n string) {
		switch visited[n] {
		case 2:
			return
		case 1:
			return
		}
		visited[n] = 1
		for _, dep := range names {
			if dep != n && referencesKeepName(values[n], dep) {
				visit(dep)
			}
		}
		visited[n] = 2
		order = append(order, n)
	}
	for _, n := range names {
		visit(n)
	}
	return order
}

// referencesKeepName reports whether value names dep as a whole
// identifier (not merely as a substring of some longer identifier).
func referencesKeepName(value, dep string) bool {
	if value == "" || dep == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(value[start:], dep)
		if i < 0 {
			return false
		}
		pos := start + i
		before := byte(0)
		if pos > 0 {
			before = value[pos-1]
		}
		after := byte(0)
		if end := pos + len(dep); end < len(value) {
			after = value[end]
		}
		if !isIdentByte(before) && !isIdentByte(after) {
			return true
		}
		start = pos + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// scheduleKeepBinding records value as the rendered expression for a
// CategoryKeep binding named name, and schedules it for emission in ctx's
// current preamble scope the first time that scope sees it (a binding
// referenced from two branches of the same scope is scheduled once).
func scheduleKeepBinding(ctx *Context, name, valueExpr string) {
	ctx.Shared.RecordKeepValue(name, valueExpr)
	if ctx.EmittedBindings[name] {
		return
	}
	ctx.EmittedBindings[name] = true
	*ctx.PendingKeepBindings = append(*ctx.PendingKeepBindings, name)
}
