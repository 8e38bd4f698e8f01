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
	unConstrFstRe  = regexp.MustCompile(`\(unConstrData\(([^()]+)\)\)\.1st`)
	unConstrSndRe  = regexp.MustCompile(`\(unConstrData\(([^()]+)\)\)\.2nd`)
	fieldsHeadRe   = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*\.fields)\.head\(\)`)
	fieldsTailHead = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*\.fields)\.tail\(\)\.head\(\)`)
)

// RewritePairAccess folds the low-level unConstrData/.1st/.2nd idiom and
// the fields.head()/fields.tail().head() idiom into Aiken's native
// .tag/.fields/indexing surface (spec.md section 4.7).
func RewritePairAccess(source string) string {
	s := unConstrFstRe.ReplaceAllString(source, "$1.tag")
	s = unConstrSndRe.ReplaceAllString(s, "$1.fields")
	// .tail().head() must be rewritten before the bare .head() rule, else
	// the bare rule would fire on the .head() call inside it first.
	s = fieldsTailHead.ReplaceAllString(s, "$1[1]")
	s = fieldsHeadRe.ReplaceAllString(s, "$1[0]")
	return s
}
