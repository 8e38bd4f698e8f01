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

package entry_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/entry"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

func TestDetectShapeCAlwaysTrueSpend(t *testing.T) {
	body := &term.Lam{Param: "d", Body: &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}}
	got := entry.Detect(body)
	qt.Assert(t, qt.Equals(got.Purpose, catalogue.PurposeSpend))
	qt.Assert(t, qt.DeepEquals(got.Params, []string{"d", "r", "c"}))
}

func TestDetectShapeCMint(t *testing.T) {
	body := &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}
	got := entry.Detect(body)
	qt.Assert(t, qt.Equals(got.Purpose, catalogue.PurposeMint))
}

func TestDetectShapeAParamUnwrapping(t *testing.T) {
	hash := make([]byte, 28)
	for i := range hash {
		hash[i] = byte(i)
	}
	scriptBody := &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}
	applied := &term.App{Func: &term.App{Func: scriptBody, Arg: term.NewBytes(hash)}, Arg: term.NewInt(42)}

	got := entry.Detect(applied)
	qt.Assert(t, qt.HasLen(got.ScriptParams, 2))
	qt.Assert(t, qt.Equals(got.ScriptParams[0].Name, "script_hash_0"))
	qt.Assert(t, qt.Equals(got.ScriptParams[1].Name, "param_1"))
	qt.Assert(t, qt.Equals(got.Purpose, catalogue.PurposeMint))
}

func TestDetectShapeAPolicyIdNaming(t *testing.T) {
	hash := make([]byte, 32)
	scriptBody := &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}
	applied := &term.App{Func: scriptBody, Arg: term.NewBytes(hash)}
	got := entry.Detect(applied)
	qt.Assert(t, qt.Equals(got.ScriptParams[0].Name, "policy_id_0"))
}

func TestPurposeFromNameHint(t *testing.T) {
	body := &term.Lam{Param: "datum_thing", Body: term.NewUnit()}
	got := entry.Detect(body)
	qt.Assert(t, qt.Equals(got.Purpose, catalogue.PurposeSpend))
}
