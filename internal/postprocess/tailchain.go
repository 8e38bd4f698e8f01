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
)

// tailChainRe matches a base identifier (optionally suffixed with .1st or
// .2nd), three or more .tail() calls, and a trailing .head(). Only three or
// more tail hops collapse, per spec.md section 4.7 — one or two stay as
// method chains since list.at's index savings aren't worth the reduced
// readability the source itself accepts for the short case.
var tailChainRe = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*(?:\.(?:1st|2nd))?)((?:\.tail\(\))+)\.head\(\)`)

// CollapseTailChains rewrites x.tail().tail().tail().head() (n >= 3 tail
// hops) to list.at(x, n).
func CollapseTailChains(source string) string {
	return tailChainRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := tailChainRe.FindStringSubmatch(match)
		base, tails := sub[1], sub[2]
		n := len(tails) / len(".tail()")
		if n < 3 {
			return match
		}
		return fmt.Sprintf("list.at(%s, %d)", base, n)
	})
}
