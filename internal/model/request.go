package model

import json "github.com/goccy/go-json"

type RunRequest struct {
	TenantID     string       `json:"tenant_id"`
	Instructions Instructions `json:"instructions"`
}

type Instructions struct {
	Mutations []Mutation `json:"mutations"`
}

// Mutation is one tagged wizard event. ActualAt ("YYYY-MM-DD") is the date
// derived fields are computed against; the engine fills it when blank.
type Mutation struct {
	MutationID             string          `json:"mutation_id"`
	MutationDefinitionName string          `json:"mutation_definition_name"`
	ActualAt               string          `json:"actual_at"`
	MutationProperties     json.RawMessage `json:"mutation_properties,omitempty"`
}
