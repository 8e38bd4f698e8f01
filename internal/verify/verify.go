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

package verify

import (
	"fmt"

	"github.com/will-break-it/uplc2aiken/internal/term"
)

// Confidence is the overall classification the four scores reduce to
// (spec.md section 4.8).
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Report is the verifier's full output for one generated validator.
type Report struct {
	ConstantPresence float64
	Reference        float64
	Placeholder      float64
	Abstraction      float64
	Confidence       Confidence
	Issues           List
}

// Verify scores source (the final, post-processed Aiken text) against the
// non-trivial constants recovered from root (the original UPLC AST).
func Verify(source string, root term.Term) *Report {
	gt := CollectGroundTruth(root)

	r := &Report{
		ConstantPresence: ConstantPresenceScore(source, gt),
		Reference:        ReferenceScore(source),
		Placeholder:      PlaceholderScore(source),
		Abstraction:      AbstractionScore(source),
	}
	r.Confidence = classify(r)
	r.Issues = collectIssues(r)
	return r
}

func classify(r *Report) Confidence {
	if r.ConstantPresence == 1.0 && r.Reference == 1.0 && r.Placeholder == 1.0 {
		return ConfidenceHigh
	}
	if r.ConstantPresence >= 0.6 && r.Reference >= 0.8 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// collectIssues turns low scores into human-readable Issues, so a caller
// gets more than a confidence label when something is wrong.
func collectIssues(r *Report) List {
	var issues List
	if r.ConstantPresence < 1.0 {
		issues.Add(NewIssue("verify/constants", SeverityWarning,
			"only %.0f%% of non-trivial constants from the original AST were found in the output", r.ConstantPresence*100))
	}
	if r.Reference < 1.0 {
		issues.Add(NewIssue("verify/reference", SeverityWarning,
			"%.0f%% of call-site identifiers resolve to a recognized symbol", r.Reference*100))
	}
	if r.Placeholder < 1.0 {
		issues.Add(NewIssue("verify/placeholder", SeverityError,
			"output contains unresolved placeholder markers (%.0f%% of lines clean)", r.Placeholder*100))
	}
	if r.Abstraction < 0.5 {
		issues.Add(NewIssue("verify/abstraction", SeverityInfo,
			"output leans heavily on raw builtin calls (abstraction score %.2f)", r.Abstraction))
	}
	return issues
}

// String renders a short human summary, used by cmd/uplc2aiken.
func (r *Report) String() string {
	return fmt.Sprintf(
		"confidence=%s constant=%.2f reference=%.2f placeholder=%.2f abstraction=%.2f (%d issues)",
		r.Confidence, r.ConstantPresence, r.Reference, r.Placeholder, r.Abstraction, len(r.Issues))
}
