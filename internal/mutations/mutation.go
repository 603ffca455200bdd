package mutations

import "mortgage-portal/internal/model"

// MutationHandler defines the contract for all wizard mutations.
// Validate inspects the state without changing it; Apply performs the
// transition and may still report problems found while doing so.
type MutationHandler interface {
	Validate(state *model.Wizard, mutation *model.Mutation) []model.Message
	Apply(state *model.Wizard, mutation *model.Mutation) []model.Message
}

// Message codes.
const (
	CodeUnknownMutation      = "UNKNOWN_MUTATION"
	CodeInvalidActualAt      = "INVALID_ACTUAL_AT"
	CodeInvalidProperties    = "INVALID_PROPERTIES"
	CodeApplicationSubmitted = "APPLICATION_SUBMITTED"
	CodeStepAtFirst          = "STEP_AT_FIRST"
	CodeStepAtLast           = "STEP_AT_LAST"
	CodeNotAtLastStep        = "NOT_AT_LAST_STEP"
	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	CodeUnknownSection       = "UNKNOWN_SECTION"
	CodeInvalidSectionValue  = "INVALID_SECTION_VALUE"
	CodeInvalidPath          = "INVALID_PATH"
	CodePathNotFound         = "PATH_NOT_FOUND"
	CodeIndexOutOfRange      = "INDEX_OUT_OF_RANGE"
	CodeNotAField            = "NOT_A_FIELD"
	CodeNotAList             = "NOT_A_LIST"
	CodeInvalidValue         = "INVALID_VALUE"
	CodeInvalidDate          = "INVALID_DATE"
	CodeAccountNumberTooLong = "ACCOUNT_NUMBER_TOO_LONG"
	CodeStateUnavailable     = "STATE_UNAVAILABLE"
)

func critical(code, message string) model.Message {
	return model.Message{Level: model.LevelCritical, Code: code, Message: message}
}

func warning(code, message string) model.Message {
	return model.Message{Level: model.LevelWarning, Code: code, Message: message}
}

// HasCritical reports whether msgs contains a CRITICAL message.
func HasCritical(msgs []model.Message) bool {
	for _, m := range msgs {
		if m.Level == model.LevelCritical {
			return true
		}
	}
	return false
}
