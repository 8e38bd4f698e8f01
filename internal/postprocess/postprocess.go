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

// Package postprocess runs the textual simplification passes of spec.md
// section 4.7 over the string codegen produces. These are string-level
// regex rewrites, not an AST transform: they are robust in practice but not
// provably correct on every input. Every pattern is a fixed expression
// compiled with regexp.MustCompile; the passes do not check whether a
// rewrite leaves the source well-formed.
package postprocess

import "strings"

// defaultMaxIterations bounds SimplifyBooleans/CollapseLogicalChains'
// fixed-point loops (spec.md section 4.7, "<= 10 rounds").
const defaultMaxIterations = 10

// Options tunes one Run call (decompile.Config's postprocess-facing half).
// The zero value is not valid for direct use — use DefaultOptions or
// RunWithOptions(source, Options{}), which fills in the defaults.
type Options struct {
	// MaxFixedPointIterations bounds SimplifyBooleans/CollapseLogicalChains;
	// zero or negative means use the package default.
	MaxFixedPointIterations int

	// HexConstantThreshold is the minimum hex-character length
	// ExtractConstants extracts; zero or negative means use the package
	// default.
	HexConstantThreshold int
}

// DefaultOptions returns the spec-mandated bounds Run uses.
func DefaultOptions() Options {
	return Options{
		MaxFixedPointIterations: defaultMaxIterations,
		HexConstantThreshold:    defaultHexConstantThreshold,
	}
}

// Run applies every simplification pass in spec order, with the package
// default bounds, and returns the cleaned source. It never errors.
func Run(source string) string {
	return RunWithOptions(source, DefaultOptions())
}

// RunWithOptions is Run with decompile.Config's bounds applied.
func RunWithOptions(source string, opts Options) string {
	iterations := opts.MaxFixedPointIterations
	if iterations <= 0 {
		iterations = defaultMaxIterations
	}
	threshold := opts.HexConstantThreshold
	if threshold <= 0 {
		threshold = defaultHexConstantThreshold
	}

	s := source
	s = DedupeBindings(s)
	s = SimplifyBooleansN(s, iterations)
	s = CollapseLogicalChainsN(s, iterations)
	s = CollapseTailChains(s)
	s = RewritePairAccess(s)
	s = ExtractConstantsWithThreshold(s, threshold)
	s = RepairMalformedIf(s)
	s = CollapseWhitespace(s)
	return s
}

// splitLines splits on "\n" without dropping a trailing empty element, so
// joining with "\n" round-trips exactly.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
