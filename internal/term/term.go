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

// Package term declares the types used to represent Untyped Plutus Core
// abstract syntax trees, along with the pure, panic-free utilities that
// every later analysis stage builds on.
package term // import "github.com/will-break-it/uplc2aiken/internal/term"

import (
	"github.com/cockroachdb/apd/v3"
)

// A Term represents any node in a UPLC abstract syntax tree. Terms form a
// finite tree: there are no cycles, and variable names shadow outer
// bindings lexically.
type Term interface {
	termNode()
}

func (*Var) termNode()     {}
func (*Lam) termNode()     {}
func (*App) termNode()     {}
func (*Force) termNode()   {}
func (*Delay) termNode()   {}
func (*Builtin) termNode() {}
func (*Const) termNode()   {}
func (*Constr) termNode()  {}
func (*Case) termNode()    {}
func (*Error) termNode()   {}

// Var is a named variable reference.
type Var struct {
	Name string
}

// Lam is a single-parameter lambda abstraction.
type Lam struct {
	Param string
	Body  Term
}

// App is a function application.
type App struct {
	Func Term
	Arg  Term
}

// Force instantiates a polymorphic type. It carries no runtime value: it
// only affects type-polymorphism in the source calculus.
type Force struct {
	Inner Term
}

// Delay suspends a term. Like Force, it is runtime-transparent.
type Delay struct {
	Inner Term
}

// Builtin is a primitive operation referenced by its symbolic name (see
// the builtin name catalogue in package stdlib).
type Builtin struct {
	Name string
}

// Const is a literal constant. Exactly one of the Const* fields is set,
// as indicated by Kind.
type Const struct {
	Kind ConstKind

	Bool       bool
	Integer    *apd.Decimal // arbitrary precision; always integral
	ByteString []byte
	String     string
	Data       Data
	List       []Term // elements are themselves Const terms
	Pair       [2]Term
}

// ConstKind tags which field of a Const is populated.
type ConstKind int

const (
	KindUnit ConstKind = iota
	KindBool
	KindInteger
	KindByteString
	KindString
	KindData
	KindList
	KindPair
)

// NewInt builds an Integer constant from a plain Go int, for tests and
// fixture construction.
func NewInt(n int64) *Const {
	d := new(apd.Decimal).SetInt64(n)
	return &Const{Kind: KindInteger, Integer: d}
}

// NewBool builds a Bool constant.
func NewBool(b bool) *Const { return &Const{Kind: KindBool, Bool: b} }

// NewBytes builds a ByteString constant.
func NewBytes(b []byte) *Const { return &Const{Kind: KindByteString, ByteString: b} }

// NewUnit builds a Unit constant.
func NewUnit() *Const { return &Const{Kind: KindUnit} }

// Data is the nested Plutus Data algebra carried by KindData constants.
type Data interface {
	dataNode()
}

func (DataConstr) dataNode() {}
func (DataMap) dataNode()    {}
func (DataList) dataNode()   {}
func (DataI) dataNode()      {}
func (DataB) dataNode()      {}

// DataConstr is a tagged constructor: Constr{idx, fields}.
type DataConstr struct {
	Index int
	Args  []Data
}

// DataMap is an association list of Data pairs.
type DataMap struct {
	Pairs [][2]Data
}

// DataList is a homogeneous-at-the-type-level list of Data.
type DataList struct {
	Items []Data
}

// DataI is an integer Data leaf.
type DataI struct {
	Value *apd.Decimal
}

// DataB is a bytestring Data leaf.
type DataB struct {
	Value []byte
}

// Constr is a Plutus constructor application: a tag and ordered field
// terms.
type Constr struct {
	Index int
	Args  []Term
}

// Case is indexed dispatch: the scrutinee is evaluated and used to select
// among Branches by position.
type Case struct {
	Scrutinee Term
	Branches  []Term
}

// Error is unconditional abort.
type Error struct{}
