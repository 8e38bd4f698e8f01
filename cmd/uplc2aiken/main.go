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

// Command uplc2aiken is a developer harness around the decompilation
// pipeline in package decompile: it reads a JSON-encoded term.Term
// fixture (see package fixture; the real UPLC flat-encoding parser is
// out of scope, per spec.md section 1), runs it through the pipeline,
// and prints the resulting Aiken source and verifier report.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs the command tree and returns a process exit code. It is
// exported separately from main so script_test.go's testscript harness
// can register it as an in-process subcommand (testscript.RunMain),
// mirroring cmd/cue/cmd's own TestMain/Main split.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
