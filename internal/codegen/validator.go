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

package codegen

import (
	"fmt"
	"strings"

	"github.com/will-break-it/uplc2aiken/internal/catalogue"
	"github.com/will-break-it/uplc2aiken/internal/contract"
	"github.com/will-break-it/uplc2aiken/internal/stdlib"
)

// ScriptParamDecl is one emitted module-level constant for a pre-applied
// script parameter (spec.md section 4.5, Shape A).
type ScriptParamDecl struct {
	Name     string
	AikenTyp string
	Value    string
}

// GeneratedCode is the fully assembled Aiken source for one validator,
// the final product of package codegen (spec.md section 6, "Top-level
// emitted file shape").
type GeneratedCode struct {
	ValidatorName    string
	Purpose          catalogue.ScriptPurpose
	HandlerParams    []string
	Body             string
	RequiredImports  []string
	ScriptParams     []ScriptParamDecl
	HoistedFunctions []string
	UsedBuiltins     []string
}

// GenerateOptions bounds and tunes one Generate call (decompile.Config's
// codegen-facing half). The zero value reproduces Generate's previous
// unconfigurable behavior exactly.
type GenerateOptions struct {
	// MaxRecursionDepth overrides MaxDepth when positive.
	MaxRecursionDepth int

	// Stdlib overrides the builtin rendering table when non-zero; see
	// decompile.Config.Stdlib.
	Stdlib stdlib.Table
}

// Generate converts an analyzed contract.Structure into Aiken source using
// the package defaults. It never errs: unsupported sub-terms degrade to
// the "???" placeholder (see ToExpression) rather than aborting, per
// spec.md section 5's best-effort philosophy.
func Generate(structure *contract.Structure) *GeneratedCode {
	return GenerateWithOptions(structure, GenerateOptions{})
}

// GenerateWithOptions is Generate with decompile.Config's bounds applied:
// the recursion-depth cap and the builtin rendering table it names.
func GenerateWithOptions(structure *contract.Structure, opts GenerateOptions) *GeneratedCode {
	shared := NewSharedStateWithStdlib(opts.Stdlib)
	ctx := NewContext(structure.Env, shared)
	ctx.DepthLimit = opts.MaxRecursionDepth

	handlerParams, ok := catalogue.HandlerParams[structure.Type]
	if !ok {
		handlerParams = structure.Params
	}

	ctx.Params = map[string]bool{}
	for i, p := range structure.Params {
		ctx.Params[p] = true
		if i < len(handlerParams) {
			ctx.ParamAlias[p] = handlerParams[i]
		}
	}
	if len(structure.Params) > 0 && len(handlerParams) > 0 && handlerParams[len(handlerParams)-1] == "tx" {
		ctx.TxParam = structure.Params[len(structure.Params)-1]
	}
	for name, ref := range structure.UtilityBindings {
		ctx.Utilities[name] = ref.Name
	}

	bodyExpr := ToExpression(ctx, structure.BodyWithBindings)
	bodyExpr = unwrapTrivialIf(bodyExpr)
	bodyExpr = AssemblePreamble(ctx, bodyExpr)

	scriptParams := make([]ScriptParamDecl, len(structure.ScriptParams))
	for i, sp := range structure.ScriptParams {
		scriptParams[i] = ScriptParamDecl{
			Name:     sp.Name,
			AikenTyp: aikenTypeFor(sp.Name),
			Value:    RenderConst(sp.Value),
		}
	}

	return &GeneratedCode{
		ValidatorName:    deriveValidatorName(structure.Type),
		Purpose:          structure.Type,
		HandlerParams:    handlerParams,
		Body:             bodyExpr,
		RequiredImports:  shared.Stdlib.RequiredImports(shared.UsedBuiltinNames()),
		ScriptParams:     scriptParams,
		HoistedFunctions: shared.HoistedFunctions,
		UsedBuiltins:     shared.UsedBuiltinNames(),
	}
}

func deriveValidatorName(p catalogue.ScriptPurpose) string {
	if p == catalogue.PurposeUnknown || p == "" {
		return "contract"
	}
	return string(p) + "_contract"
}

func aikenTypeFor(name string) string {
	switch {
	case strings.HasPrefix(name, "script_hash_"), strings.HasPrefix(name, "policy_id_"):
		return "ByteArray"
	case strings.HasPrefix(name, "param_"):
		return "Data"
	}
	return "Data"
}

// unwrapTrivialIf implements spec.md section 6's rule that a body of the
// exact shape "if COND { Void } else { fail }" emits as bare COND: Aiken
// validators already return Bool, so the Void/fail wrapping the UPLC
// encoding needs to signal "true"/"abort" is redundant surface noise.
func unwrapTrivialIf(body string) string {
	const prefix = "if "
	const mid = " { Void } else { fail }"
	if !strings.HasPrefix(body, prefix) || !strings.HasSuffix(body, mid) {
		return body
	}
	return strings.TrimSuffix(strings.TrimPrefix(body, prefix), mid)
}

// Render assembles the final Aiken source file text: imports,
// script-parameter constants, hoisted recursive functions, and the
// validator block, in that order (spec.md section 6). No datum or
// redeemer type declarations are emitted.
func (g *GeneratedCode) Render() string {
	var b strings.Builder
	for _, imp := range g.RequiredImports {
		fmt.Fprintf(&b, "use %s\n", imp)
	}
	if len(g.RequiredImports) > 0 {
		b.WriteString("\n")
	}
	for _, sp := range g.ScriptParams {
		fmt.Fprintf(&b, "const %s: %s = %s\n", sp.Name, sp.AikenTyp, sp.Value)
	}
	if len(g.ScriptParams) > 0 {
		b.WriteString("\n")
	}
	for _, fn := range g.HoistedFunctions {
		b.WriteString(fn)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "validator %s {\n", g.ValidatorName)
	fmt.Fprintf(&b, "  %s(%s) {\n", catalogue.HandlerKind(g.Purpose), strings.Join(g.HandlerParams, ", "))
	for _, line := range strings.Split(g.Body, "\n") {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	b.WriteString("  }\n")
	b.WriteString("}\n")
	return b.String()
}
