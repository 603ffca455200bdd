package mutations

import (
	"fmt"

	"mortgage-portal/internal/model"
)

type GoNextHandler struct {
	Strict bool
}

func (h *GoNextHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	if state.AtLastStep() {
		return []model.Message{warning(CodeStepAtLast,
			fmt.Sprintf("Already at the last step (%d); use submit", state.Step))}
	}
	return missingFields(state.CurrentSection(), &state.Application, h.Strict)
}

func (h *GoNextHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	if !state.AtLastStep() {
		state.Step++
	}
	return nil
}

type GoBackHandler struct{}

func (h *GoBackHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	if state.AtFirstStep() {
		return []model.Message{warning(CodeStepAtFirst, "Already at the first step")}
	}
	return nil
}

func (h *GoBackHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	if !state.AtFirstStep() {
		state.Step--
	}
	return nil
}

// missingFields reports every blank required field of s, one message each.
func missingFields(s model.Section, app *model.Application, strict bool) []model.Message {
	var msgs []model.Message
	for _, path := range s.Missing(app) {
		text := fmt.Sprintf("%s: required field %s is blank", s.Title, path)
		if strict {
			msgs = append(msgs, critical(CodeRequiredFieldMissing, text))
		} else {
			msgs = append(msgs, warning(CodeRequiredFieldMissing, text))
		}
	}
	return msgs
}
