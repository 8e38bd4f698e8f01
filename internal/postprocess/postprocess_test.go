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

package postprocess_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/postprocess"
)

func TestDedupeBindingsDropsExactRepeat(t *testing.T) {
	src := "let x = foo(1)\nlet x = foo(1)\nlet y = bar()\n"
	got := postprocess.DedupeBindings(src)
	qt.Assert(t, qt.Equals(got, "let x = foo(1)\nlet y = bar()\n"))
}

func TestDedupeBindingsKeepsShadowing(t *testing.T) {
	src := "let x = foo(1)\nlet x = foo(2)\n"
	got := postprocess.DedupeBindings(src)
	qt.Assert(t, qt.Equals(got, src))
}

func TestSimplifyBooleansIfTrueFalse(t *testing.T) {
	got := postprocess.SimplifyBooleans("if cond { True } else { False }")
	qt.Assert(t, qt.Equals(got, "cond"))
}

func TestSimplifyBooleansIfFalseTrue(t *testing.T) {
	got := postprocess.SimplifyBooleans("if cond { False } else { True }")
	qt.Assert(t, qt.Equals(got, "!(cond)"))
}

func TestSimplifyBooleansDoubleNegation(t *testing.T) {
	got := postprocess.SimplifyBooleans("!(!(cond))")
	qt.Assert(t, qt.Equals(got, "cond"))
}

func TestSimplifyBooleansNegatedEquals(t *testing.T) {
	got := postprocess.SimplifyBooleans("!(a == b)")
	qt.Assert(t, qt.Equals(got, "a != b"))
}

func TestCollapseLogicalChainsAnd(t *testing.T) {
	got := postprocess.CollapseLogicalChains("if a { b } else { False }")
	qt.Assert(t, qt.Equals(got, "(a && b)"))
}

func TestCollapseLogicalChainsOr(t *testing.T) {
	got := postprocess.CollapseLogicalChains("if a { True } else { b }")
	qt.Assert(t, qt.Equals(got, "(a || b)"))
}

func TestCollapseLogicalChainsFlattensTriple(t *testing.T) {
	got := postprocess.CollapseLogicalChains("((a && b) && c)")
	qt.Assert(t, qt.Equals(got, "(a && b && c)"))
}

func TestCollapseTailChainsThreeHops(t *testing.T) {
	got := postprocess.CollapseTailChains("x.tail().tail().tail().head()")
	qt.Assert(t, qt.Equals(got, "list.at(x, 3)"))
}

func TestCollapseTailChainsLeavesTwoHops(t *testing.T) {
	src := "x.tail().tail().head()"
	got := postprocess.CollapseTailChains(src)
	qt.Assert(t, qt.Equals(got, src))
}

func TestRewritePairAccessTagAndFields(t *testing.T) {
	got := postprocess.RewritePairAccess("(unConstrData(x)).1st")
	qt.Assert(t, qt.Equals(got, "x.tag"))
	got = postprocess.RewritePairAccess("(unConstrData(x)).2nd")
	qt.Assert(t, qt.Equals(got, "x.fields"))
}

func TestRewritePairAccessFieldsIndexing(t *testing.T) {
	qt.Assert(t, qt.Equals(postprocess.RewritePairAccess("d.fields.head()"), "d.fields[0]"))
	qt.Assert(t, qt.Equals(postprocess.RewritePairAccess("d.fields.tail().head()"), "d.fields[1]"))
}

func TestExtractConstantsScriptHash(t *testing.T) {
	hex := strings.Repeat("ab", 28) // 56 hex chars
	src := "use aiken/builtin\n\nvalidator x {\n  spend(d, r, o, tx) {\n    #\"" + hex + "\"\n  }\n}\n"
	got := postprocess.ExtractConstants(src)
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "const SCRIPT_HASH_0: ByteArray = #\""+hex+"\"")))
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "SCRIPT_HASH_0\n  }")))
	qt.Assert(t, qt.IsFalse(strings.Contains(got, "#\""+hex+"\"\n  }")))
}

func TestExtractConstantsPolicyID(t *testing.T) {
	hex := strings.Repeat("cd", 32) // 64 hex chars
	src := "#\"" + hex + "\"\n"
	got := postprocess.ExtractConstants(src)
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "POLICY_ID_0")))
}

func TestExtractConstantsDeduplicatesRepeatedLiteral(t *testing.T) {
	hex := strings.Repeat("11", 20) // 40 hex chars -> generic CONST
	src := "#\"" + hex + "\"\n#\"" + hex + "\"\n"
	got := postprocess.ExtractConstants(src)
	qt.Assert(t, qt.Equals(strings.Count(got, "const CONST_0"), 1))
	qt.Assert(t, qt.Equals(strings.Count(got, "CONST_0"), 3)) // 1 decl + 2 use sites
}

func TestRepairMalformedIf(t *testing.T) {
	got := postprocess.RepairMalformedIf("if cond)")
	qt.Assert(t, qt.Equals(got, "cond"))
}

func TestCollapseWhitespaceRunsAndOperators(t *testing.T) {
	got := postprocess.CollapseWhitespace("let   x =   1+2")
	qt.Assert(t, qt.Equals(got, "let x = 1 + 2"))
}

func TestRunEndToEnd(t *testing.T) {
	src := "use aiken/builtin\n\nvalidator c {\n  spend(d, r, o, tx) {\n    if (if cond { True } else { False }) { True } else { False }\n  }\n}\n"
	got := postprocess.Run(src)
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "cond")))
}

func TestRunWithOptionsMatchesRunAtDefaults(t *testing.T) {
	src := "use aiken/builtin\n\nvalidator c {\n  spend(d, r, o, tx) {\n    if (if cond { True } else { False }) { True } else { False }\n  }\n}\n"
	qt.Assert(t, qt.Equals(postprocess.RunWithOptions(src, postprocess.Options{}), postprocess.Run(src)))
}

func TestSimplifyBooleansNZeroIterationsLeavesSourceUntouched(t *testing.T) {
	got := postprocess.SimplifyBooleansN("if cond { True } else { False }", 0)
	qt.Assert(t, qt.Equals(got, "if cond { True } else { False }"))
}

func TestExtractConstantsWithThresholdLowerBoundExtractsShorterHex(t *testing.T) {
	hex := strings.Repeat("ab", 10) // 20 hex chars, below the default-32 threshold
	src := "#\"" + hex + "\"\n"
	qt.Assert(t, qt.Equals(postprocess.ExtractConstants(src), src)) // default threshold: untouched
	got := postprocess.ExtractConstantsWithThreshold(src, 16)
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "const CONST_0: ByteArray = #\""+hex+"\"")))
}
