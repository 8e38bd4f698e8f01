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
	"regexp"
	"strings"

	"github.com/will-break-it/uplc2aiken/internal/stdlib"
)

// plutusBuiltinShortcut reports whether name is itself a recognized UPLC
// builtin name or its Aiken-rendered Rename target — either form can show
// up verbatim in generated output (a bare builtin reference renders as a
// wrapping lambda calling itself by name; a Rename substitutes the Aiken
// stdlib target directly).
func plutusBuiltinShortcut(name string) (stdlib.Entry, bool) {
	if e, ok := stdlib.Lookup(name); ok {
		return e, true
	}
	for _, e := range stdlib.Default() {
		if e.Rename != "" && (e.Rename == name || lastSegment(e.Rename) == name) {
			return e, true
		}
	}
	return stdlib.Entry{}, false
}

// ConstantPresenceScore is the fraction of gt's non-trivial constants that
// appear, in some recognizable form, in source. Matching is lenient per
// spec.md section 4.8: a hex literal can appear raw, wrapped in #"...",
// or as its ASCII decoding in a quoted string; integers match on a word
// boundary or show up absorbed into a semantic name the codegen/pattern
// stages produce (is_constr_3, eq_5, get_field_2).
func ConstantPresenceScore(source string, gt GroundTruth) float64 {
	total := len(gt.Bytes) + len(gt.Integers) + len(gt.Traces)
	if total == 0 {
		return 1.0
	}
	found := 0
	for _, b := range gt.Bytes {
		if byteStringPresent(source, b) {
			found++
		}
	}
	for _, n := range gt.Integers {
		if integerPresent(source, n.Text('f')) {
			found++
		}
	}
	for _, s := range gt.Traces {
		if strings.Contains(source, s) {
			found++
		}
	}
	return float64(found) / float64(total)
}

func byteStringPresent(source string, b []byte) bool {
	hex := fmt.Sprintf("%x", b)
	if strings.Contains(source, hex) {
		return true
	}
	if strings.Contains(source, `#"`+hex+`"`) {
		return true
	}
	if isPrintableASCII(b) && strings.Contains(source, string(b)) {
		return true
	}
	return false
}

func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return len(b) > 0
}

var wordBoundaryDigitsRe = regexp.MustCompile(`\d+`)

func integerPresent(source, text string) bool {
	for _, m := range wordBoundaryDigitsRe.FindAllString(source, -1) {
		if m == text {
			return true
		}
	}
	for _, prefix := range []string{"is_constr_", "eq_", "get_field_"} {
		if strings.Contains(source, prefix+text) {
			return true
		}
	}
	return false
}

// ReferenceScore is 1 minus the fraction of call-site identifiers that
// resolve to nothing the pipeline could have produced: not a stdlib
// symbol, type constructor, keyword, Plutus-builtin shortcut, generated
// binding, method on such an identifier, or a function declared in the
// same listing.
func ReferenceScore(source string) float64 {
	calls := callSites(source)
	if len(calls) == 0 {
		return 1.0
	}
	declared := declaredFunctions(source)
	undefined := 0
	for _, name := range calls {
		if !isKnownCallee(name, declared) {
			undefined++
		}
	}
	return 1.0 - float64(undefined)/float64(len(calls))
}

var (
	callSiteRe   = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_.]*)\s*\(`)
	declFuncRe   = regexp.MustCompile(`\bfn\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	genBindingRe = regexp.MustCompile(`^[a-z][0-9]*$`)
)

func callSites(source string) []string {
	var out []string
	for _, m := range callSiteRe.FindAllStringSubmatchIndex(source, -1) {
		name := source[m[2]:m[3]]
		start := m[2]
		prefix := strings.TrimRight(source[:start], " \t")
		if strings.HasSuffix(prefix, "fn") {
			continue // declaration site, not a call
		}
		out = append(out, name)
	}
	return out
}

func declaredFunctions(source string) map[string]bool {
	out := map[string]bool{}
	for _, m := range declFuncRe.FindAllStringSubmatch(source, -1) {
		out[m[1]] = true
	}
	return out
}

var keywords = map[string]bool{
	"if": true, "else": true, "when": true, "is": true, "let": true,
	"fn": true, "use": true, "validator": true, "expect": true,
	"and": true, "or": true, "todo": true, "trace": true,
	// validator handler keywords (spec.md section 6 / catalogue.HandlerKind)
	"spend": true, "mint": true, "withdraw": true, "publish": true,
	"vote": true, "propose": true,
}

var typeConstructors = map[string]bool{
	"Some": true, "None": true, "Void": true, "True": true, "False": true,
	"Ok": true, "Error": true,
}

var stdlibModules = map[string]bool{
	"builtin": true, "list": true, "bytearray": true, "string": true,
	"dict": true, "option": true, "crypto": true, "math": true,
	"interval": true, "assets": true, "cbor": true,
}

func isKnownCallee(name string, declared map[string]bool) bool {
	base := name
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		module := name[:idx]
		if stdlibModules[module] || stdlibModules[lastSegment(module)] {
			return true
		}
		base = name[idx+1:]
	}
	if keywords[base] || typeConstructors[base] || declared[base] {
		return true
	}
	if genBindingRe.MatchString(base) {
		return true
	}
	if _, ok := plutusBuiltinShortcut(base); ok {
		return true
	}
	return false
}

func lastSegment(s string) string {
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// PlaceholderScore is 1 minus the fraction of non-empty lines carrying a
// marker for unresolved/low-confidence output.
func PlaceholderScore(source string) float64 {
	lines := nonEmptyLines(source)
	if len(lines) == 0 {
		return 1.0
	}
	flagged := 0
	for _, line := range lines {
		if hasPlaceholderMarker(line) {
			flagged++
		}
	}
	return 1.0 - float64(flagged)/float64(len(lines))
}

var placeholderMarkers = []string{
	"???", "todo", "// TODO", "// FIXME", "panic(", "...", "// placeholder",
}

func hasPlaceholderMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range placeholderMarkers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

func nonEmptyLines(source string) []string {
	var out []string
	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// AbstractionScore is 1 minus min(1, builtin-call-count / (2 * total-lines)):
// a source dominated by raw builtin calls (builtin.unConstrData,
// builtin.headList, ...) reads as barely decompiled at all.
func AbstractionScore(source string) float64 {
	lines := nonEmptyLines(source)
	if len(lines) == 0 {
		return 1.0
	}
	builtinCalls := strings.Count(source, "builtin.")
	ratio := float64(builtinCalls) / (2.0 * float64(len(lines)))
	if ratio > 1 {
		ratio = 1
	}
	return 1.0 - ratio
}
