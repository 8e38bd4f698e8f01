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

package fixture_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/fixture"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

func TestDecodeAlwaysTrueSpend(t *testing.T) {
	src := `{"kind":"lam","param":"d","body":
	          {"kind":"lam","param":"r","body":
	            {"kind":"lam","param":"c","body":
	              {"kind":"const","const_kind":"unit"}}}}`

	got, err := fixture.Decode([]byte(src))
	qt.Assert(t, qt.IsNil(err))

	lam, ok := got.(*term.Lam)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(lam.Param, "d"))
}

func TestDecodeBuiltinApplication(t *testing.T) {
	src := `{"kind":"app",
	          "func":{"kind":"app","func":{"kind":"builtin","builtin":"equalsInteger"},
	                  "arg":{"kind":"const","const_kind":"integer","integer":0}},
	          "arg":{"kind":"var","name":"r"}}`

	got, err := fixture.Decode([]byte(src))
	qt.Assert(t, qt.IsNil(err))

	app, ok := got.(*term.App)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = app.Arg.(*term.Var)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestDecodeByteStringHex(t *testing.T) {
	src := `{"kind":"const","const_kind":"bytes","hex":"deadbeef"}`

	got, err := fixture.Decode([]byte(src))
	qt.Assert(t, qt.IsNil(err))

	c, ok := got.(*term.Const)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(c.ByteString, []byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestDecodeUnknownKindErrors(t *testing.T) {
	_, err := fixture.Decode([]byte(`{"kind":"nonsense"}`))
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestDecodeConstrAndCase(t *testing.T) {
	src := `{"kind":"case",
	          "scrutinee":{"kind":"constr","index":1,"args":[]},
	          "branches":[{"kind":"error"},{"kind":"const","const_kind":"unit"}]}`

	got, err := fixture.Decode([]byte(src))
	qt.Assert(t, qt.IsNil(err))

	c, ok := got.(*term.Case)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(c.Branches, 2))
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := fixture.Decode([]byte(`not json`))
	qt.Assert(t, qt.IsTrue(err != nil))
}
