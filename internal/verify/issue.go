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

package verify

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies how serious an Issue is. Unlike a compile error, none
// of these ever stop the pipeline: decompilation is best-effort throughout
// (spec.md section 5), so the worst an Issue does is lower the verifier's
// confidence classification.
type Severity int

const (
	// SeverityInfo notes a decision the pipeline made that a reader might
	// want to double check (an Open-Question-style heuristic firing).
	SeverityInfo Severity = iota
	// SeverityWarning flags output the pipeline could only partially
	// reconstruct (missing constants, unresolved call-site identifiers).
	SeverityWarning
	// SeverityError flags output the verifier considers unreliable
	// (unresolved placeholder markers). It rules out "high" confidence but
	// does not by itself force "low".
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Issue is one finding attached to a decompilation result; the verifier
// (collectIssues) is the only stage that raises them.
// Path plays the role token.Pos plays in cue/errors.Error: since there is
// no source-text position to point at (the input is an already-parsed
// term.Term tree, not source text), Path names the logical location
// instead — e.g. "verify/constants" or "verify/placeholder".
type Issue struct {
	Path     string
	Severity Severity
	Message  string
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// NewIssue builds an Issue from a printf-style format string, mirroring
// cue/errors.NewMessagef's deferred-formatting convenience constructor.
func NewIssue(path string, sev Severity, format string, args ...interface{}) Issue {
	return Issue{Path: path, Severity: sev, Message: fmt.Sprintf(format, args...)}
}

// List is an ordered collection of Issues accumulated over one
// decompilation run. It implements error so a List can be returned or
// wrapped anywhere a single error is expected.
type List []Issue

func (l List) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	parts := make([]string, len(l))
	for i, issue := range l {
		parts[i] = issue.Error()
	}
	return fmt.Sprintf("%d issues: %s", len(l), strings.Join(parts, "; "))
}

// Add appends an Issue to the list.
func (l *List) Add(issue Issue) {
	*l = append(*l, issue)
}

// HasSeverity reports whether the list contains any Issue at or above the
// given severity.
func (l List) HasSeverity(min Severity) bool {
	for _, issue := range l {
		if issue.Severity >= min {
			return true
		}
	}
	return false
}

// Sanitize sorts the list by Path then Message and removes exact
// duplicates, mirroring cue/errors.Sanitize's best-effort dedup-and-sort
// pass over a multi-error result.
func (l List) Sanitize() List {
	if len(l) <= 1 {
		return l
	}
	sorted := make(List, len(l))
	copy(sorted, l)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Message < sorted[j].Message
	})
	out := sorted[:0:0]
	for i, issue := range sorted {
		if i > 0 && issue == sorted[i-1] {
			continue
		}
		out = append(out, issue)
	}
	return out
}
