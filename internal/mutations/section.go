package mutations

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"mortgage-portal/internal/model"
)

type updateSectionProps struct {
	Section string          `json:"section"`
	Value   json.RawMessage `json:"value"`
}

// UpdateSectionHandler replaces one top-level section of the application. The
// new value goes through the same masks and derived-field rules as set_field.
type UpdateSectionHandler struct{}

func (h *UpdateSectionHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	var props updateSectionProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}

	if _, ok := model.SectionByKey(props.Section); !ok {
		return []model.Message{critical(CodeUnknownSection,
			fmt.Sprintf("Unknown section: %q", props.Section))}
	}

	if len(strings.TrimSpace(string(props.Value))) == 0 {
		return []model.Message{critical(CodeInvalidSectionValue,
			fmt.Sprintf("No value given for section %s", props.Section))}
	}

	return nil
}

func (h *UpdateSectionHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	var props updateSectionProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}

	prev := state.Application
	s, _ := model.SectionByKey(props.Section)
	if err := s.Replace(&state.Application, props.Value); err != nil {
		return []model.Message{critical(CodeInvalidSectionValue, err.Error())}
	}
	return settleSection(&state.Application, &prev, s.Key, asOf(mutation))
}
