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

var (
	runsOfSpacesRe  = regexp.MustCompile(`[ \t]{2,}`)
	digitOperatorRe = regexp.MustCompile(`(\d)\s*([+\-*/])\s*(\d)`)
)

// CollapseWhitespace collapses runs of horizontal whitespace to a single
// space and normalizes exactly one space around an arithmetic operator
// standing directly between two digits — never inside an identifier
// (already excluded: the regex anchors on literal digits either side, so
// `foo_2-3bar` style identifiers are never touched) or a module path like
// `aiken/builtin`.
func CollapseWhitespace(source string) string {
	lines := splitLines(source)
	for i, line := range lines {
		indent := leadingWhitespace(line)
		rest := line[len(indent):]
		rest = runsOfSpacesRe.ReplaceAllString(rest, " ")
		rest = digitOperatorRe.ReplaceAllString(rest, "$1 $2 $3")
		lines[i] = indent + rest
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}
