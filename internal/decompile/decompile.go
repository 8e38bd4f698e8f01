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

package decompile

import (
	"github.com/will-break-it/uplc2aiken/internal/codegen"
	"github.com/will-break-it/uplc2aiken/internal/contract"
	"github.com/will-break-it/uplc2aiken/internal/postprocess"
	"github.com/will-break-it/uplc2aiken/internal/term"
	"github.com/will-break-it/uplc2aiken/internal/verify"
)

// Result is the single value Decompile produces: the final Aiken source,
// the structural analysis that produced it, the verifier's assessment,
// and any issues raised along the way.
type Result struct {
	Source    string
	Structure *contract.Structure
	Generated *codegen.GeneratedCode
	Report    *verify.Report
	Issues    verify.List
	RunID     string
}

// Decompile runs the full pipeline over root: binding analysis, pattern
// detection, contract structure, code generation, post-processing, and
// verification, per spec.md section 2's flow diagram. It never returns a
// non-nil error for malformed or unusual UPLC input — every stage degrades
// gracefully (placeholders, best-effort heuristics) rather than aborting.
// The returned error is always nil: Config-level failures, such as an
// unreadable config file, surface from LoadConfig before Decompile is
// called.
func Decompile(root term.Term, cfg Config) (*Result, error) {
	// cfg's bounds reach codegen and postprocess through their additive
	// WithOptions entry points below, so the depth cap, fixed-point round
	// limit, hex-constant threshold, and stdlib overrides a caller sets all
	// take effect. binding's structural pattern matchers and verify's
	// confidence heuristics (see DESIGN.md) still consult the package
	// default stdlib table regardless of cfg.StdlibOverrides: they only
	// need a builtin's arity and Force-polymorphism layer count to
	// recognize a shape, never its Aiken rendering, so an override aimed at
	// changing generated syntax has nothing to change there.
	logger, runID := newRunLogger()
	logger.Info("decompile started")

	var issues verify.List

	structure := contract.Analyze(root, codegen.RenderConst)
	logger.Info("contract structure analyzed", "purpose", string(structure.Type))

	generated := codegen.GenerateWithOptions(structure, codegen.GenerateOptions{
		MaxRecursionDepth: cfg.MaxRecursionDepth,
		Stdlib:            cfg.Stdlib(),
	})
	logger.Info("code generated", "validator", generated.ValidatorName, "hoisted_fns", len(generated.HoistedFunctions))

	rendered := generated.Render()
	cleaned := postprocess.RunWithOptions(rendered, postprocess.Options{
		MaxFixedPointIterations: cfg.MaxFixedPointIterations,
		HexConstantThreshold:    cfg.HexConstantThreshold,
	})

	report := verify.Verify(cleaned, root)
	logger.Info("verification complete", "confidence", string(report.Confidence))
	issues = append(issues, report.Issues...)

	return &Result{
		Source:    cleaned,
		Structure: structure,
		Generated: generated,
		Report:    report,
		Issues:    issues.Sanitize(),
		RunID:     runID,
	}, nil
}
