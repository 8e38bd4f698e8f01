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

package decompile

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// newRunLogger returns a structured logger tagged with a fresh run ID, so
// log lines from concurrent decompilation calls (e.g. a batch driver
// running several in parallel goroutines) can be told apart even though
// each individual call is itself single-threaded (spec.md section 5).
func newRunLogger() (*slog.Logger, string) {
	runID := uuid.NewString()
	base := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	return base.With(slog.String("run_id", runID)), runID
}
