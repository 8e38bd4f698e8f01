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

package postprocess

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultHexConstantThreshold is the minimum hex-character length that
// triggers constant extraction, the threshold spec.md section 4.7 sets.
const defaultHexConstantThreshold = 32

// hexLiteralRe finds Aiken hex bytestring literals #"..." at the default
// threshold; ExtractConstantsWithThreshold builds its own regexp for any
// other threshold.
var hexLiteralRe = hexLiteralRegexp(defaultHexConstantThreshold)

func hexLiteralRegexp(threshold int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`#"([0-9a-fA-F]{%d,})"`, threshold))
}

// ExtractConstants replaces hex literals of at least the default threshold
// length with a named module-level constant; see ExtractConstantsWithThreshold
// for a configurable threshold.
func ExtractConstants(source string) string {
	return ExtractConstantsWithThreshold(source, defaultHexConstantThreshold)
}

// ExtractConstantsWithThreshold is ExtractConstants with threshold in
// place of the default minimum hex-character length
// (decompile.Config.HexConstantThreshold). The replacement constant,
// inserted immediately after the `use` import block (never prepended
// ahead of it — spec.md section 7 flags the opposite ordering, found in
// some outputs of the source tool, as a latent bug not to be replicated),
// is named by hex length: 56 hex chars (a 28-byte script hash) ->
// SCRIPT_HASH_i, 64 (a 32-byte policy id) -> POLICY_ID_i, anything else ->
// CONST_i.
func ExtractConstantsWithThreshold(source string, threshold int) string {
	if threshold <= 0 {
		threshold = defaultHexConstantThreshold
	}
	re := hexLiteralRe
	if threshold != defaultHexConstantThreshold {
		re = hexLiteralRegexp(threshold)
	}

	matches := re.FindAllStringSubmatchIndex(source, -1)
	if len(matches) == 0 {
		return source
	}

	type decl struct {
		name, hex string
	}
	var decls []decl
	seen := map[string]string{}
	counters := map[string]int{}

	replaced := re.ReplaceAllStringFunc(source, func(match string) string {
		sub := re.FindStringSubmatch(match)
		hex := sub[1]
		if name, ok := seen[hex]; ok {
			return name
		}
		prefix := "CONST"
		switch len(hex) {
		case 56:
			prefix = "SCRIPT_HASH"
		case 64:
			prefix = "POLICY_ID"
		}
		name := fmt.Sprintf("%s_%d", prefix, counters[prefix])
		counters[prefix]++
		seen[hex] = name
		decls = append(decls, decl{name: name, hex: hex})
		return name
	})

	var declText strings.Builder
	for _, d := range decls {
		fmt.Fprintf(&declText, "const %s: ByteArray = #\"%s\"\n", d.name, d.hex)
	}
	declText.WriteString("\n")

	return insertAfterUseBlock(replaced, declText.String())
}

// insertAfterUseBlock inserts text immediately after the last consecutive
// `use ...` line at the top of source (or at the very top if there is no
// use block at all).
func insertAfterUseBlock(source, text string) string {
	lines := splitLines(source)
	insertAt := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "use ") {
			insertAt = i + 1
			continue
		}
		if trimmed == "" && insertAt > 0 {
			insertAt = i + 1
			continue
		}
		break
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insertAt]...)
	out = append(out, strings.TrimRight(text, "\n"))
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n")
}
