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

// Package fixture decodes a JSON-encoded [term.Term] tree, the developer
// harness format cmd/uplc2aiken reads in place of the real UPLC
// flat-encoding parser, which spec.md section 1 names as an external
// collaborator outside this repo's scope. The JSON shape below exists
// only so the harness has something to feed the pipeline; it is not a
// wire format any other tool needs to agree on.
package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/will-break-it/uplc2aiken/internal/term"
)

// node is the on-the-wire shape of a single term.Term. Kind selects which
// of the remaining fields apply; unused fields are simply absent.
type node struct {
	Kind string `json:"kind"`

	// Var
	Name string `json:"name,omitempty"`

	// Lam
	Param string `json:"param,omitempty"`
	Body  *node  `json:"body,omitempty"`

	// App
	Func *node `json:"func,omitempty"`
	Arg  *node `json:"arg,omitempty"`

	// Force, Delay
	Inner *node `json:"inner,omitempty"`

	// Builtin
	Builtin string `json:"builtin,omitempty"`

	// Const
	ConstKind string   `json:"const_kind,omitempty"`
	Bool      bool      `json:"bool,omitempty"`
	Integer   int64     `json:"integer,omitempty"`
	Hex       string    `json:"hex,omitempty"`
	String    string    `json:"string,omitempty"`
	Data      *dataNode `json:"data,omitempty"`
	List      []*node   `json:"list,omitempty"`
	Pair      []*node   `json:"pair,omitempty"`

	// Constr
	Index int     `json:"index,omitempty"`
	Args  []*node `json:"args,omitempty"`

	// Case
	Scrutinee *node   `json:"scrutinee,omitempty"`
	Branches  []*node `json:"branches,omitempty"`
}

// dataNode is the on-the-wire shape of a single term.Data leaf.
type dataNode struct {
	Kind  string         `json:"kind"`
	Index int            `json:"index,omitempty"`
	Args  []*dataNode    `json:"args,omitempty"`
	Pairs [][2]*dataNode `json:"pairs,omitempty"`
	Items []*dataNode    `json:"items,omitempty"`
	Value int64          `json:"value,omitempty"`
	Hex   string         `json:"hex,omitempty"`
}

// Decode parses a JSON-encoded fixture into a term.Term tree.
func Decode(data []byte) (term.Term, error) {
	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("fixture: invalid JSON: %w", err)
	}
	return toTerm(&n)
}

func toTerm(n *node) (term.Term, error) {
	if n == nil {
		return nil, fmt.Errorf("fixture: missing node")
	}
	switch n.Kind {
	case "var":
		return &term.Var{Name: n.Name}, nil
	case "lam":
		body, err := toTerm(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.Lam{Param: n.Param, Body: body}, nil
	case "app":
		fn, err := toTerm(n.Func)
		if err != nil {
			return nil, err
		}
		arg, err := toTerm(n.Arg)
		if err != nil {
			return nil, err
		}
		return &term.App{Func: fn, Arg: arg}, nil
	case "force":
		inner, err := toTerm(n.Inner)
		if err != nil {
			return nil, err
		}
		return &term.Force{Inner: inner}, nil
	case "delay":
		inner, err := toTerm(n.Inner)
		if err != nil {
			return nil, err
		}
		return &term.Delay{Inner: inner}, nil
	case "builtin":
		return &term.Builtin{Name: n.Builtin}, nil
	case "const":
		return toConst(n)
	case "constr":
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			arg, err := toTerm(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &term.Constr{Index: n.Index, Args: args}, nil
	case "case":
		scrutinee, err := toTerm(n.Scrutinee)
		if err != nil {
			return nil, err
		}
		branches := make([]term.Term, len(n.Branches))
		for i, b := range n.Branches {
			branch, err := toTerm(b)
			if err != nil {
				return nil, err
			}
			branches[i] = branch
		}
		return &term.Case{Scrutinee: scrutinee, Branches: branches}, nil
	case "error":
		return &term.Error{}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown term kind %q", n.Kind)
	}
}

func toConst(n *node) (*term.Const, error) {
	switch n.ConstKind {
	case "unit", "":
		return term.NewUnit(), nil
	case "bool":
		return term.NewBool(n.Bool), nil
	case "integer":
		return term.NewInt(n.Integer), nil
	case "bytes":
		b, err := hex.DecodeString(n.Hex)
		if err != nil {
			return nil, fmt.Errorf("fixture: bad hex %q: %w", n.Hex, err)
		}
		return term.NewBytes(b), nil
	case "string":
		return &term.Const{Kind: term.KindString, String: n.String}, nil
	case "data":
		d, err := toData(n.Data)
		if err != nil {
			return nil, err
		}
		return &term.Const{Kind: term.KindData, Data: d}, nil
	case "list":
		elems := make([]term.Term, len(n.List))
		for i, e := range n.List {
			c, err := toConst(e)
			if err != nil {
				return nil, err
			}
			elems[i] = c
		}
		return &term.Const{Kind: term.KindList, List: elems}, nil
	case "pair":
		if len(n.Pair) != 2 {
			return nil, fmt.Errorf("fixture: pair const needs exactly 2 elements, got %d", len(n.Pair))
		}
		a, err := toConst(n.Pair[0])
		if err != nil {
			return nil, err
		}
		b, err := toConst(n.Pair[1])
		if err != nil {
			return nil, err
		}
		return &term.Const{Kind: term.KindPair, Pair: [2]term.Term{a, b}}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown const kind %q", n.ConstKind)
	}
}

func toData(d *dataNode) (term.Data, error) {
	if d == nil {
		return nil, fmt.Errorf("fixture: missing data node")
	}
	switch d.Kind {
	case "constr":
		args := make([]term.Data, len(d.Args))
		for i, a := range d.Args {
			arg, err := toData(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return term.DataConstr{Index: d.Index, Args: args}, nil
	case "map":
		pairs := make([][2]term.Data, len(d.Pairs))
		for i, p := range d.Pairs {
			k, err := toData(p[0])
			if err != nil {
				return nil, err
			}
			v, err := toData(p[1])
			if err != nil {
				return nil, err
			}
			pairs[i] = [2]term.Data{k, v}
		}
		return term.DataMap{Pairs: pairs}, nil
	case "list":
		items := make([]term.Data, len(d.Items))
		for i, it := range d.Items {
			item, err := toData(it)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return term.DataList{Items: items}, nil
	case "int":
		return term.DataI{Value: term.NewInt(d.Value).Integer}, nil
	case "bytes":
		b, err := hex.DecodeString(d.Hex)
		if err != nil {
			return nil, fmt.Errorf("fixture: bad hex %q: %w", d.Hex, err)
		}
		return term.DataB{Value: b}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown data kind %q", d.Kind)
	}
}
