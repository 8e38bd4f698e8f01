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

package verify_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/will-break-it/uplc2aiken/internal/term"
	"github.com/will-break-it/uplc2aiken/internal/verify"
)

func TestCollectGroundTruthFiltersTrivial(t *testing.T) {
	root := &term.App{
		Func: &term.App{Func: &term.Builtin{Name: "addInteger"}, Arg: term.NewInt(1)},
		Arg:  term.NewInt(42),
	}
	gt := verify.CollectGroundTruth(root)
	qt.Assert(t, qt.HasLen(gt.Integers, 1))
	qt.Assert(t, qt.Equals(gt.Integers[0].Text('f'), "42"))
}

func TestCollectGroundTruthBytesAndTraces(t *testing.T) {
	root := &term.Constr{Index: 0, Args: []term.Term{
		term.NewBytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		&term.Const{Kind: term.KindString, String: "not enough funds"},
	}}
	gt := verify.CollectGroundTruth(root)
	qt.Assert(t, qt.HasLen(gt.Bytes, 1))
	qt.Assert(t, qt.HasLen(gt.Traces, 1))
}

func TestConstantPresenceScoreFindsHex(t *testing.T) {
	gt := verify.GroundTruth{Bytes: [][]byte{{0xde, 0xad, 0xbe, 0xef}}}
	score := verify.ConstantPresenceScore(`const X: ByteArray = #"deadbeef"`, gt)
	qt.Assert(t, qt.Equals(score, 1.0))
}

func TestConstantPresenceScoreMissing(t *testing.T) {
	gt := verify.GroundTruth{Bytes: [][]byte{{0xde, 0xad, 0xbe, 0xef}}}
	score := verify.ConstantPresenceScore(`validator x { spend(d,r,o,tx) { True } }`, gt)
	qt.Assert(t, qt.Equals(score, 0.0))
}

func TestReferenceScoreAllRecognized(t *testing.T) {
	src := "fn rec_0(y) {\n  builtin.add_integer(y, 1)\n}\n\nvalidator x {\n  spend(d, r, o, tx) {\n    rec_0(tx)\n  }\n}\n"
	score := verify.ReferenceScore(src)
	qt.Assert(t, qt.Equals(score, 1.0))
}

func TestReferenceScorePenalizesUnknownCall(t *testing.T) {
	src := "validator x {\n  spend(d, r, o, tx) {\n    totallyUnknownHelperFunction(tx)\n  }\n}\n"
	score := verify.ReferenceScore(src)
	qt.Assert(t, qt.IsTrue(score < 1.0))
}

func TestPlaceholderScorePenalizesMarkers(t *testing.T) {
	src := "let x = ???\nlet y = 1\n"
	score := verify.PlaceholderScore(src)
	qt.Assert(t, qt.Equals(score, 0.5))
}

func TestAbstractionScorePenalizesRawBuiltins(t *testing.T) {
	src := "builtin.a(builtin.b(), builtin.c())\nbuiltin.d()\n"
	score := verify.AbstractionScore(src)
	qt.Assert(t, qt.Equals(score, 0.0))
}

func TestVerifyHighConfidence(t *testing.T) {
	root := term.NewUnit() // no non-trivial constants to look for
	src := "validator x {\n  spend(d, r, o, tx) {\n    True\n  }\n}\n"
	report := verify.Verify(src, root)
	qt.Assert(t, qt.Equals(report.Confidence, verify.ConfidenceHigh))
	qt.Assert(t, qt.HasLen(report.Issues, 0))
}

func TestVerifyLowConfidenceOnPlaceholder(t *testing.T) {
	root := term.NewInt(42)
	src := "validator x {\n  spend(d, r, o, tx) {\n    ???\n  }\n}\n"
	report := verify.Verify(src, root)
	qt.Assert(t, qt.Equals(report.Confidence, verify.ConfidenceLow))
	qt.Assert(t, qt.IsTrue(len(report.Issues) > 0))
}
