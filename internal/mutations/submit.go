package mutations

import (
	"fmt"
	"log"

	"mortgage-portal/internal/model"
)

// SubmitHandler ends the wizard. Submission records the date and logs the
// application; nothing is sent anywhere.
type SubmitHandler struct {
	Strict bool
}

func (h *SubmitHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	if !state.AtLastStep() {
		return []model.Message{critical(CodeNotAtLastStep,
			fmt.Sprintf("Submit is only available at step %d, wizard is at step %d", model.StepCount-1, state.Step))}
	}

	var msgs []model.Message
	for _, s := range model.Sections {
		msgs = append(msgs, missingFields(s, &state.Application, h.Strict)...)
	}
	return msgs
}

func (h *SubmitHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	submittedAt := mutation.ActualAt
	state.Submitted = true
	state.SubmittedAt = &submittedAt

	log.Printf("Application submitted (mutation %s): %s", mutation.MutationID, marshalValue(state.Application))
	return nil
}
