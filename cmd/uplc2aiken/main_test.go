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

package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestRootHelp(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--help"})
	cmd.SetOut(new(bytes.Buffer))
	err := cmd.Execute()
	qt.Assert(t, qt.IsNil(err))
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	err := cmd.Execute()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out.String(), "uplc2aiken version")))
}

func TestDecompileCmdAlwaysTrueSpend(t *testing.T) {
	fixtureJSON := `{"kind":"lam","param":"d","body":
	                  {"kind":"lam","param":"r","body":
	                    {"kind":"lam","param":"c","body":
	                      {"kind":"const","const_kind":"unit"}}}}`

	dir := t.TempDir()
	inPath := dir + "/fixture.json"
	if err := os.WriteFile(inPath, []byte(fixtureJSON), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"decompile", "--input", inPath})
	err := cmd.Execute()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out.String(), "validator spend_contract {")))
}

func TestDecompileCmdBadFixture(t *testing.T) {
	dir := t.TempDir()
	inPath := dir + "/bad.json"
	if err := os.WriteFile(inPath, []byte("not json"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"decompile", "--input", inPath})
	err := cmd.Execute()
	qt.Assert(t, qt.IsTrue(err != nil))
}
