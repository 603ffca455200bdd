package model

import "mortgage-portal/internal/jsonpatch"

type RunResponse struct {
	RunMetadata RunMetadata `json:"run_metadata"`
	RunResult   RunResult   `json:"run_result"`
}

type RunMetadata struct {
	RunID          string `json:"run_id"`
	TenantID       string `json:"tenant_id,omitempty"`
	WizardID       string `json:"wizard_id,omitempty"`
	RunStartedAt   string `json:"run_started_at"`
	RunCompletedAt string `json:"run_completed_at"`
	RunDurationMs  int64  `json:"run_duration_ms"`
	RunOutcome     string `json:"run_outcome"`
}

type RunResult struct {
	Messages     []Message           `json:"messages"`
	Mutations    []ProcessedMutation `json:"mutations"`
	EndState     StateEnvelope       `json:"end_state"`
	InitialState InitialState        `json:"initial_state"`
}

// ProcessedMutation pairs a mutation with the messages it raised and the
// RFC 6902 patch it produced against the wizard state.
type ProcessedMutation struct {
	Mutation       Mutation       `json:"mutation"`
	MessageIndexes []int          `json:"message_indexes,omitempty"`
	Patch          []jsonpatch.Op `json:"patch"`
}

type StateEnvelope struct {
	MutationID    string `json:"mutation_id,omitempty"`
	MutationIndex int    `json:"mutation_index"`
	ActualAt      string `json:"actual_at,omitempty"`
	Wizard        Wizard `json:"wizard"`
}

type InitialState struct {
	ActualAt string `json:"actual_at,omitempty"`
	Wizard   Wizard `json:"wizard"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
