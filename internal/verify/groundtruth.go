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

// Package verify scores generated Aiken source against the raw UPLC AST it
// was produced from (spec.md section 4.8). It never blocks the pipeline:
// every score is informational, feeding a confidence classification a
// caller can act on however it likes.
package verify

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/will-break-it/uplc2aiken/internal/term"
)

// GroundTruth is the set of non-trivial literal constants recovered by
// walking the original term.Term tree, before any codegen or
// post-processing touched them. The constant-presence score checks how
// many of these survive, in some recognizable form, in the final source.
type GroundTruth struct {
	Bytes    [][]byte
	Integers []*apd.Decimal
	Traces   []string
}

// CollectGroundTruth walks root and extracts every Const leaf meeting the
// "non-trivial" thresholds spec.md section 4.8 sets: a bytestring of at
// least 4 bytes, an integer outside {0, 1}, or a string of at least 3
// characters.
func CollectGroundTruth(root term.Term) GroundTruth {
	var gt GroundTruth
	walkConsts(root, &gt)
	return gt
}

func walkConsts(t term.Term, gt *GroundTruth) {
	switch x := t.(type) {
	case nil:
		return
	case *term.Const:
		collectConst(x, gt)
	case *term.Lam:
		walkConsts(x.Body, gt)
	case *term.App:
		walkConsts(x.Func, gt)
		walkConsts(x.Arg, gt)
	case *term.Force:
		walkConsts(x.Inner, gt)
	case *term.Delay:
		walkConsts(x.Inner, gt)
	case *term.Constr:
		for _, a := range x.Args {
			walkConsts(a, gt)
		}
	case *term.Case:
		walkConsts(x.Scrutinee, gt)
		for _, b := range x.Branches {
			walkConsts(b, gt)
		}
	}
}

func collectConst(c *term.Const, gt *GroundTruth) {
	switch c.Kind {
	case term.KindByteString:
		if len(c.ByteString) >= 4 {
			gt.Bytes = append(gt.Bytes, c.ByteString)
		}
	case term.KindInteger:
		if c.Integer != nil && !isZeroOrOne(c.Integer) {
			gt.Integers = append(gt.Integers, c.Integer)
		}
	case term.KindString:
		if len(c.String) >= 3 {
			gt.Traces = append(gt.Traces, c.String)
		}
	case term.KindList:
		for _, item := range c.List {
			if inner, ok := item.(*term.Const); ok {
				collectConst(inner, gt)
			}
		}
	case term.KindPair:
		for _, item := range c.Pair {
			if inner, ok := item.(*term.Const); ok {
				collectConst(inner, gt)
			}
		}
	}
}

// isZeroOrOne compares via the decimal's text form rather than a numeric
// Cmp: term.Const.Integer is documented as always integral, so "0"/"1"
// text comparison is exact and sidesteps needing an apd.Context.
func isZeroOrOne(d *apd.Decimal) bool {
	text := d.Text('f')
	return text == "0" || text == "1"
}
