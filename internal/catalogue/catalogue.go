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

// Package catalogue holds the fixed, spec-mandated lookup tables that are
// neither AST utilities nor the UPLC builtin table: the transaction-field
// index table and the per-script-purpose handler signatures (spec.md
// section 6).
package catalogue // import "github.com/will-break-it/uplc2aiken/internal/catalogue"

// ScriptPurpose is the inferred validator entry shape.
type ScriptPurpose string

const (
	PurposeSpend    ScriptPurpose = "spend"
	PurposeMint     ScriptPurpose = "mint"
	PurposeWithdraw ScriptPurpose = "withdraw"
	PurposePublish  ScriptPurpose = "publish"
	PurposeVote     ScriptPurpose = "vote"
	PurposePropose  ScriptPurpose = "propose"
	PurposeUnknown  ScriptPurpose = "unknown"
)

// TxFields maps a ScriptContext field index to its Aiken tx.{name}
// accessor name.
var TxFields = []string{
	0:  "inputs",
	1:  "reference_inputs",
	2:  "outputs",
	3:  "fee",
	4:  "mint",
	5:  "certificates",
	6:  "withdrawals",
	7:  "validity_range",
	8:  "extra_signatories",
	9:  "redeemers",
	10: "datums",
	11: "id",
	12: "votes",
	13: "proposal_procedures",
	14: "current_treasury_amount",
	15: "treasury_donation",
}

// TxFieldName returns the tx accessor name for a given field index, and
// whether the index is in range.
func TxFieldName(idx int) (string, bool) {
	if idx < 0 || idx >= len(TxFields) {
		return "", false
	}
	return TxFields[idx], true
}

// HandlerParams is the canonical emitted parameter list for each script
// purpose's validator handler.
var HandlerParams = map[ScriptPurpose][]string{
	PurposeSpend:    {"datum", "redeemer", "own_ref", "tx"},
	PurposeMint:     {"redeemer", "policy_id", "tx"},
	PurposeWithdraw: {"redeemer", "credential", "tx"},
	PurposePublish:  {"redeemer", "certificate", "tx"},
	PurposeVote:     {"redeemer", "voter", "governance_action_id", "tx"},
	PurposePropose:  {"redeemer", "proposal", "tx"},
}

// HandlerKind is the Aiken validator-block keyword used for each purpose
// (e.g. "spend", "mint"). It is identical to the ScriptPurpose string for
// every purpose the emitter actually handles.
func HandlerKind(p ScriptPurpose) string {
	return string(p)
}

// NamingHints maps a substring that may appear in a generic parameter name
// to the purpose it suggests, used by the validator-entry detector to
// override the numeric arity heuristic (spec.md section 4.5).
var NamingHints = []struct {
	Substring string
	Purpose   ScriptPurpose
}{
	{"datum", PurposeSpend},
	{"policy", PurposeMint},
	{"credential", PurposeWithdraw},
	{"cert", PurposePublish},
	{"voter", PurposeVote},
	{"proposal", PurposePropose},
}
