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

package contract_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/contract"
	"github.com/will-break-it/uplc2aiken/internal/term"
)

func dummyRenderConst(t term.Term) string {
	c, ok := t.(*term.Const)
	if !ok {
		return "?"
	}
	if c.Kind == term.KindInteger {
		return c.Integer.Text('f')
	}
	return "?"
}

func TestAnalyzeAlwaysTrueSpend(t *testing.T) {
	root := &term.Lam{Param: "d", Body: &term.Lam{Param: "r", Body: &term.Lam{Param: "c", Body: term.NewUnit()}}}
	s := contract.Analyze(root, dummyRenderConst)
	qt.Assert(t, qt.Equals(s.Type, catalogue.PurposeSpend))
	qt.Assert(t, qt.DeepEquals(s.Params, []string{"d", "r", "c"}))
}
