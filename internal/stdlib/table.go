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

// Package stdlib holds the static catalogue mapping UPLC builtin names to
// their Aiken surface-language rendering: an import path, a renamed target
// function, an inline template, method-call styling, or builtin arity.
package stdlib // import "github.com/will-break-it/uplc2aiken/internal/stdlib"

import (
	"fmt"
	"strings"

	"github.com/mpvl/unique"
)

// Entry describes how one UPLC builtin renders in Aiken.
type Entry struct {
	// Module is the Aiken import path this builtin's rendering depends on,
	// e.g. "aiken/builtin". Empty when the rendering needs no import (an
	// operator template, for instance).
	Module string

	// Rename is the target function name when no template applies, e.g.
	// "builtin.add_integer". Empty when Template is set instead.
	Rename string

	// Template is an inline rendering with positional placeholders
	// {0}, {1}, ... Placeholders beyond the supplied argument count cause
	// the caller to wrap the result in a lambda binding the missing
	// positions (see Render).
	Template string

	// Method, when true, renders as "first.Rename(rest...)" instead of a
	// plain function call.
	Method bool

	// Arity is the builtin's full arity, used for partial-application
	// detection in the binding analyzer.
	Arity int
}

// builtins is the static UPLC-builtin-name -> Entry catalogue. Names match
// the catalogue in spec.md section 6, case-sensitive camelCase.
var builtins = map[string]Entry{
	// arithmetic
	"addInteger":      {Template: "{0} + {1}", Arity: 2},
	"subtractInteger":  {Template: "{0} - {1}", Arity: 2},
	"multiplyInteger": {Template: "{0} * {1}", Arity: 2},
	"divideInteger":   {Module: "aiken/builtin", Rename: "div_integer", Arity: 2},
	"modInteger":      {Template: "{0} % {1}", Arity: 2},
	"quotientInteger": {Module: "aiken/builtin", Rename: "quotient_integer", Arity: 2},
	"remainderInteger": {Module: "aiken/builtin", Rename: "remainder_integer", Arity: 2},

	// comparisons
	"equalsInteger":            {Template: "{0} == {1}", Arity: 2},
	"lessThanInteger":          {Template: "{0} < {1}", Arity: 2},
	"lessThanEqualsInteger":    {Template: "{0} <= {1}", Arity: 2},
	"equalsByteString":         {Template: "{0} == {1}", Arity: 2},
	"lessThanByteString":       {Template: "{0} < {1}", Arity: 2},
	"lessThanEqualsByteString": {Template: "{0} <= {1}", Arity: 2},
	"equalsString":             {Template: "{0} == {1}", Arity: 2},
	"equalsData":               {Template: "{0} == {1}", Arity: 2},

	// bytestring
	"appendByteString":  {Module: "aiken/builtin", Rename: "append_bytearray", Arity: 2},
	"consByteString":    {Module: "aiken/builtin", Rename: "cons_bytearray", Arity: 2},
	"sliceByteString":   {Module: "aiken/builtin", Rename: "slice_bytearray", Arity: 3},
	"lengthOfByteString": {Method: true, Rename: "length", Arity: 1},
	"indexByteString":   {Module: "aiken/builtin", Rename: "index_bytearray", Arity: 2},

	// data
	"unConstrData": {Module: "aiken/builtin", Rename: "un_constr_data", Arity: 1},
	"unIData":      {Module: "aiken/builtin", Rename: "un_i_data", Arity: 1},
	"unBData":      {Module: "aiken/builtin", Rename: "un_b_data", Arity: 1},
	"unListData":   {Module: "aiken/builtin", Rename: "un_list_data", Arity: 1},
	"unMapData":    {Module: "aiken/builtin", Rename: "un_map_data", Arity: 1},
	"constrData":   {Module: "aiken/builtin", Rename: "constr_data", Arity: 2},
	"iData":        {Module: "aiken/builtin", Rename: "i_data", Arity: 1},
	"bData":        {Module: "aiken/builtin", Rename: "b_data", Arity: 1},
	"listData":     {Module: "aiken/builtin", Rename: "list_data", Arity: 1},
	"mapData":      {Module: "aiken/builtin", Rename: "map_data", Arity: 1},

	// pairs/lists
	"fstPair":      {Template: "{0}.1st", Arity: 1},
	"sndPair":      {Template: "{0}.2nd", Arity: 1},
	"mkPairData":   {Module: "aiken/builtin", Rename: "mk_pair_data", Arity: 2},
	"headList":     {Method: true, Rename: "head", Arity: 1},
	"tailList":     {Method: true, Rename: "tail", Arity: 1},
	"nullList":     {Module: "aiken/builtin", Rename: "null_list", Arity: 1},
	"mkCons":       {Module: "aiken/builtin", Rename: "mk_cons", Arity: 2},
	"mkNilData":    {Module: "aiken/builtin", Rename: "mk_nil_data", Arity: 1},
	"mkNilPairData": {Module: "aiken/builtin", Rename: "mk_nil_pair_data", Arity: 1},

	// control
	"ifThenElse": {Template: "if {0} { {1} } else { {2} }", Arity: 3},
	"chooseList": {Module: "aiken/builtin", Rename: "choose_list", Arity: 3},
	"chooseData": {Module: "aiken/builtin", Rename: "choose_data", Arity: 6},
	"chooseUnit": {Module: "aiken/builtin", Rename: "choose_unit", Arity: 2},
	"trace":      {Module: "aiken/builtin", Rename: "trace", Arity: 2},

	// crypto
	"sha2_256":                      {Module: "aiken/crypto", Rename: "sha2_256", Arity: 1},
	"sha3_256":                      {Module: "aiken/crypto", Rename: "sha3_256", Arity: 1},
	"blake2b_256":                   {Module: "aiken/crypto", Rename: "blake2b_256", Arity: 1},
	"blake2b_224":                   {Module: "aiken/crypto", Rename: "blake2b_224", Arity: 1},
	"keccak_256":                    {Module: "aiken/crypto", Rename: "keccak_256", Arity: 1},
	"verifyEd25519Signature":        {Module: "aiken/crypto", Rename: "verify_ed25519_signature", Arity: 3},
	"verifyEcdsaSecp256k1Signature": {Module: "aiken/crypto", Rename: "verify_ecdsa_secp256k1_signature", Arity: 3},
	"verifySchnorrSecp256k1Signature": {Module: "aiken/crypto", Rename: "verify_schnorr_secp256k1_signature", Arity: 3},

	// serialisation
	"serialiseData": {Module: "aiken/builtin", Rename: "serialise_data", Arity: 1},
}

// ForcePolymorphic lists builtins that are type-instantiation artifacts:
// the number of leading Force layers that must be peeled before the
// builtin applies to real arguments. See spec.md section 6.
var ForcePolymorphic = map[string]int{
	"fstPair":      2,
	"sndPair":      2,
	"mkCons":       2,
	"chooseList":   2,
	"chooseData":   2,
	"ifThenElse":   2,
	"trace":        2,
	"mkPairData":   2,
	"headList":     1,
	"tailList":     1,
	"nullList":     1,
	"chooseUnit":   1,
	"unListData":   1,
	"unConstrData": 1,
	"unIData":      1,
	"iData":        1,
	"unBData":      1,
	"bData":        1,
	"unMapData":    1,
	"mapData":      1,
	"serialiseData": 1,
	"equalsData":   1,
	"mkNilData":    1,
	"mkNilPairData": 1,
}

// Table is a renderable builtin catalogue: the package default, or a
// decompile.Config's merged override set (see decompile.Config.Stdlib).
// Its zero value behaves exactly like the package-level default table, so
// a caller that never configured an override needs nothing special.
type Table struct {
	entries map[string]Entry
}

// NewTable wraps an explicit builtin-name -> Entry map, e.g. the result of
// decompile.Config.StdlibTable(), as a Table.
func NewTable(entries map[string]Entry) Table {
	return Table{entries: entries}
}

// DefaultTable returns a Table backed by the package defaults.
func DefaultTable() Table {
	return Table{entries: builtins}
}

func (t Table) table() map[string]Entry {
	if t.entries == nil {
		return builtins
	}
	return t.entries
}

// Lookup returns the Entry for a builtin name, if known, against t's table.
func (t Table) Lookup(name string) (Entry, bool) {
	e, ok := t.table()[name]
	return e, ok
}

// Render formats an applied call to name against t's table; see the
// package-level Render for the rendering rules.
func (t Table) Render(name string, args []string) string {
	e, ok := t.table()[name]
	if !ok {
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	}
	if e.Template != "" {
		return renderTemplate(e.Template, args)
	}
	target := e.Rename
	if target == "" {
		target = name
	}
	if e.Module != "" && !e.Method {
		target = moduleAlias(e.Module) + "." + target
	}
	if e.Method && len(args) > 0 {
		return fmt.Sprintf("%s.%s(%s)", args[0], target, strings.Join(args[1:], ", "))
	}
	return fmt.Sprintf("%s(%s)", target, strings.Join(args, ", "))
}

// RequiredImports returns the sorted, deduplicated set of Aiken module
// paths exercised by used against t's table.
func (t Table) RequiredImports(used []string) []string {
	m := t.table()
	seen := map[string]bool{}
	var mods []string
	for _, name := range used {
		e, ok := m[name]
		if !ok || e.Module == "" {
			continue
		}
		if !seen[e.Module] {
			seen[e.Module] = true
			mods = append(mods, e.Module)
		}
	}
	unique.Strings(&mods)
	return mods
}

// Lookup returns the Entry for a builtin name, if known.
func Lookup(name string) (Entry, bool) {
	e, ok := builtins[name]
	return e, ok
}

// Extend registers or overrides an entry, used by decompile.Config to
// merge in caller-supplied aliases (see SPEC_FULL.md "Configuration").
// Extend copies base into a new map before applying overrides; it never
// mutates base or the package-level default table, keeping Lookup's result deterministic
// across calls that didn't request an override (spec.md section 5: "no
// shared mutable global state").
func Extend(base map[string]Entry, overrides map[string]Entry) map[string]Entry {
	out := make(map[string]Entry, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Default returns a fresh copy of the built-in default table, safe for a
// caller to mutate via Extend without affecting other invocations.
func Default() map[string]Entry {
	out := make(map[string]Entry, len(builtins))
	for k, v := range builtins {
		out[k] = v
	}
	return out
}

// RequiredImports returns the sorted, deduplicated set of Aiken module
// paths exercised by the given builtin names.
func RequiredImports(used []string) []string {
	seen := map[string]bool{}
	var mods []string
	for _, name := range used {
		e, ok := builtins[name]
		if !ok || e.Module == "" {
			continue
		}
		if !seen[e.Module] {
			seen[e.Module] = true
			mods = append(mods, e.Module)
		}
	}
	unique.Strings(&mods)
	return mods
}

// Render formats an applied call to the builtin named name with the given
// already-rendered argument expressions, honoring template, method-call,
// or default functional-call styling. If the template references more
// positions than len(args) supplies, Render wraps the result in a lambda
// binding the missing trailing positions as _p{n}.
func Render(name string, args []string) string {
	e, ok := builtins[name]
	if !ok {
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	}
	if e.Template != "" {
		return renderTemplate(e.Template, args)
	}
	target := e.Rename
	if target == "" {
		target = name
	}
	if e.Module != "" && !e.Method {
		target = moduleAlias(e.Module) + "." + target
	}
	if e.Method && len(args) > 0 {
		return fmt.Sprintf("%s.%s(%s)", args[0], target, strings.Join(args[1:], ", "))
	}
	return fmt.Sprintf("%s(%s)", target, strings.Join(args, ", "))
}

func moduleAlias(module string) string {
	parts := strings.Split(module, "/")
	return parts[len(parts)-1]
}

func renderTemplate(tmpl string, args []string) string {
	maxIdx := highestPlaceholder(tmpl)
	if maxIdx < len(args) {
		return substitute(tmpl, args)
	}
	missing := maxIdx - len(args) + 1
	params := make([]string, missing)
	full := make([]string, len(args)+missing)
	copy(full, args)
	for i := 0; i < missing; i++ {
		p := fmt.Sprintf("_p%d", i)
		params[i] = p
		full[len(args)+i] = p
	}
	body := substitute(tmpl, full)
	return fmt.Sprintf("fn(%s) { %s }", strings.Join(params, ", "), body)
}

func highestPlaceholder(tmpl string) int {
	max := -1
	for i := 0; i < 10; i++ {
		if strings.Contains(tmpl, fmt.Sprintf("{%d}", i)) {
			max = i
		}
	}
	return max
}

func substitute(tmpl string, args []string) string {
	out := tmpl
	for i, a := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), a)
	}
	return out
}
