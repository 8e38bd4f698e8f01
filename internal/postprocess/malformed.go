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

import "regexp"

// malformedIfRe matches the syntactic artifact left behind by truncated
// partial-application emission: an `if` whose condition is immediately
// followed by a stray closing paren with no opening counterpart, and no
// then/else branches ever got emitted.
var malformedIfRe = regexp.MustCompile(`\bif\s+([A-Za-z_][A-Za-z0-9_.]*)\)`)

// RepairMalformedIf rewrites `if VAR)` to bare `VAR`.
func RepairMalformedIf(source string) string {
	return malformedIfRe.ReplaceAllString(source, "$1")
}
