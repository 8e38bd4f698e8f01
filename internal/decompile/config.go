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

// Package decompile is the pipeline orchestrator: it wires the AST,
// binding analysis, pattern detection, contract structure, code
// generation, post-processing, and verification stages into the single
// call spec.md section 2 describes, and carries the run-scoped Config and
// logging that surround them.
package decompile

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/will-break-it/uplc2aiken/internal/stdlib"
)

// Config bounds and tunes a single decompilation run. It is always
// constructed fresh per-call: none of its fields are ever shared mutable
// global state (spec.md section 5).
type Config struct {
	// MaxRecursionDepth caps ToExpression's recursion (spec.md section 5,
	// "the recursion-depth guard (1000)"). Zero means use the default.
	MaxRecursionDepth int

	// MaxFixedPointIterations bounds the postprocess boolean/logical-chain
	// simplification loops (spec.md section 4.7, "<= 10 rounds"). Zero
	// means use the default.
	MaxFixedPointIterations int

	// HexConstantThreshold is the minimum hex-character length that
	// triggers constant extraction (spec.md section 4.7, ">= 32"). Zero
	// means use the default.
	HexConstantThreshold int

	// StdlibOverrides registers or replaces builtin -> Aiken renderings on
	// top of the package default table, merged via stdlib.Extend.
	StdlibOverrides map[string]stdlib.Entry
}

const (
	defaultMaxRecursionDepth       = 1000
	defaultMaxFixedPointIterations = 10
	defaultHexConstantThreshold    = 32
)

// DefaultConfig returns the spec-mandated defaults.
func DefaultConfig() Config {
	return Config{
		MaxRecursionDepth:       defaultMaxRecursionDepth,
		MaxFixedPointIterations: defaultMaxFixedPointIterations,
		HexConstantThreshold:    defaultHexConstantThreshold,
	}
}

// configFile is the on-disk YAML shape LoadConfig parses. Only the
// stdlib-override table is commonly hand-edited; the numeric bounds are
// exposed for completeness but rarely touched.
type configFile struct {
	MaxRecursionDepth       int                      `yaml:"max_recursion_depth"`
	MaxFixedPointIterations int                      `yaml:"max_fixed_point_iterations"`
	HexConstantThreshold    int                      `yaml:"hex_constant_threshold"`
	StdlibOverrides         map[string]stdlib.Entry `yaml:"stdlib_overrides"`
}

// LoadConfig reads a YAML config file at path and layers it over
// DefaultConfig: a zero-valued numeric field in the file keeps the
// default rather than zeroing it out, since a YAML file that simply
// doesn't mention "max_recursion_depth" should not disable the guard.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, err
	}

	if file.MaxRecursionDepth > 0 {
		cfg.MaxRecursionDepth = file.MaxRecursionDepth
	}
	if file.MaxFixedPointIterations > 0 {
		cfg.MaxFixedPointIterations = file.MaxFixedPointIterations
	}
	if file.HexConstantThreshold > 0 {
		cfg.HexConstantThreshold = file.HexConstantThreshold
	}
	cfg.StdlibOverrides = file.StdlibOverrides
	return cfg, nil
}

// StdlibTable returns the builtin rendering table this Config implies:
// the package defaults merged with any caller-supplied overrides.
func (c Config) StdlibTable() map[string]stdlib.Entry {
	if len(c.StdlibOverrides) == 0 {
		return stdlib.Default()
	}
	return stdlib.Extend(stdlib.Default(), c.StdlibOverrides)
}

// Stdlib wraps StdlibTable as a stdlib.Table, ready to hand to
// codegen.GenerateOptions.
func (c Config) Stdlib() stdlib.Table {
	return stdlib.NewTable(c.StdlibTable())
}
