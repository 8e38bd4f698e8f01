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
	"regexp"
	"strings"
)

var letBindingRe = regexp.MustCompile(`^(\s*)let\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+)$`)

// DedupeBindings drops a `let x = e1` line that is an exact repeat of an
// earlier `let x = e1` line seen within the same flat listing (consecutive
// let-lines with no intervening non-let statement). Differing right-hand
// sides under the same name are preserved: that is shadowing, not
// duplication.
func DedupeBindings(source string) string {
	lines := splitLines(source)
	seen := map[string]bool{}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		m := letBindingRe.FindStringSubmatch(line)
		if m == nil {
			seen = map[string]bool{}
			out = append(out, line)
			continue
		}
		key := strings.TrimSpace(m[2]) + "=" + strings.TrimSpace(m[3])
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
