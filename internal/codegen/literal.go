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
	"strconv"
	"strings"

	"github.com/will-break-it/uplc2aiken/internal/term"
)

// RenderConst renders a Const term to its Aiken literal syntax (spec.md
// section 6, "Constant rendering"). It is passed into package binding and
// package contract as a callback to avoid a dependency cycle (both need
// to pre-render inline constant values; only codegen owns the rendering
// rules).
func RenderConst(t term.Term) string {
	c, ok := term.UnwrapForceDelay(t).(*term.Const)
	if !ok {
		return "???"
	}
	switch c.Kind {
	case term.KindUnit:
		return "Void"
	case term.KindBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case term.KindInteger:
		return c.Integer.Text('f')
	case term.KindByteString:
		return fmt.Sprintf("#\"%s\"", strings.ToLower(fmt.Sprintf("%x", c.ByteString)))
	case term.KindString:
		return strconv.Quote(c.String)
	case term.KindList:
		if len(c.List) == 0 {
			return "[]"
		}
		parts := make([]string, len(c.List))
		for i, e := range c.List {
			parts[i] = RenderConst(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case term.KindPair:
		return fmt.Sprintf("(%s, %s)", RenderConst(c.Pair[0]), RenderConst(c.Pair[1]))
	case term.KindData:
		return RenderData(c.Data)
	}
	return "???"
}

// RenderData pretty-prints the nested Plutus Data algebra recursively, per
// spec.md section 4.5: Constr(idx, fields) -> builtin.constr_data(idx,
// [fields...]); bytes -> #"hex"; integers as decimal; lists -> [...].
func RenderData(d term.Data) string {
	switch x := d.(type) {
	case term.DataConstr:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			parts[i] = RenderData(a)
		}
		return fmt.Sprintf("builtin.constr_data(%d, [%s])", x.Index, strings.Join(parts, ", "))
	case term.DataMap:
		parts := make([]string, len(x.Pairs))
		for i, p := range x.Pairs {
			parts[i] = fmt.Sprintf("(%s, %s)", RenderData(p[0]), RenderData(p[1]))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case term.DataList:
		parts := make([]string, len(x.Items))
		for i, it := range x.Items {
			parts[i] = RenderData(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case term.DataI:
		return x.Value.Text('f')
	case term.DataB:
		return fmt.Sprintf("#\"%x\"", x.Value)
	}
	return "???"
}
