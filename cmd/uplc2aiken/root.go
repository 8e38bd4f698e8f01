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
	"github.com/spf13/cobra"
)

// newRootCmd builds the top-level command. We print errors ourselves
// in main, so cobra's own error and usage banners are silenced.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "uplc2aiken",
		Short:         "decompile Untyped Plutus Core validators into Aiken source",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	for _, sub := range []*cobra.Command{
		newDecompileCmd(),
		newVersionCmd(),
	} {
		cmd.AddCommand(sub)
	}

	return cmd
}
