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

var (
	ifTrueFalseRe  = regexp.MustCompile(`if\s+(\S+)\s*\{\s*True\s*\}\s*else\s*\{\s*False\s*\}`)
	ifFalseTrueRe  = regexp.MustCompile(`if\s+(\S+)\s*\{\s*False\s*\}\s*else\s*\{\s*True\s*\}`)
	doubleNegRe    = regexp.MustCompile(`!\(!\(([^()]+)\)\)`)
	negatedEqRe    = regexp.MustCompile(`!\(([^()]+?)\s*==\s*([^()]+?)\)`)
)

// SimplifyBooleans applies the spec's four boolean-identity rewrites,
// iterating to a fixed point over the package default round limit (see
// SimplifyBooleansN for a configurable bound).
func SimplifyBooleans(source string) string {
	return SimplifyBooleansN(source, defaultMaxIterations)
}

// SimplifyBooleansN is SimplifyBooleans with maxIterations in place of the
// default fixed-point bound (decompile.Config.MaxFixedPointIterations).
func SimplifyBooleansN(source string, maxIterations int) string {
	s := source
	for i := 0; i < maxIterations; i++ {
		next := ifTrueFalseRe.ReplaceAllString(s, "$1")
		next = ifFalseTrueRe.ReplaceAllString(next, "!($1)")
		next = doubleNegRe.ReplaceAllString(next, "$1")
		next = negatedEqRe.ReplaceAllString(next, "$1 != $2")
		if next == s {
			return next
		}
		s = next
	}
	return s
}
