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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/will-break-it/uplc2aiken/internal/decompile"
	"github.com/will-break-it/uplc2aiken/internal/fixture"
)

func newDecompileCmd() *cobra.Command {
	var (
		inputPath  string
		configPath string
		outputPath string
		showReport bool
	)

	cmd := &cobra.Command{
		Use:   "decompile",
		Short: "decompile a JSON-encoded UPLC term fixture into Aiken source",
		Long: `Decompile reads a JSON-encoded term.Term fixture (see package fixture;
this stands in for the real UPLC flat-encoding parser, which is outside
this repo's scope), runs it through the binding analysis, pattern
detection, code generation, post-processing, and verification stages,
and writes the resulting Aiken source.

With --input omitted, the fixture is read from stdin. With --output
omitted, the source is written to stdout.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading fixture: %w", err)
			}

			root, err := fixture.Decode(data)
			if err != nil {
				return err
			}

			cfg := decompile.DefaultConfig()
			if configPath != "" {
				cfg, err = decompile.LoadConfig(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
			}

			result, err := decompile.Decompile(root, cfg)
			if err != nil {
				return err
			}

			out, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer out.Close()

			fmt.Fprintln(out, result.Source)

			if showReport {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Report.String())
				for _, issue := range result.Issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", issue.Severity, issue.Error())
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "path to a JSON term fixture (default: stdin)")
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default: built-in defaults)")
	flags.StringVarP(&outputPath, "output", "o", "", "path to write Aiken source to (default: stdout)")
	flags.BoolVar(&showReport, "report", false, "print the verifier report to stderr")

	return cmd
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
