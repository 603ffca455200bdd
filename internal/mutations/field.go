package mutations

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"mortgage-portal/internal/fieldpath"
	"mortgage-portal/internal/model"
)

type setFieldProps struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// SetFieldHandler stores one typed input into a leaf of the application and
// recomputes the fields derived from it.
type SetFieldHandler struct{}

func (h *SetFieldHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	var props setFieldProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}

	p, err := fieldpath.Parse(props.Path)
	if err != nil || len(p) < 2 {
		return []model.Message{critical(CodeInvalidPath,
			fmt.Sprintf("Invalid field path: %q", props.Path))}
	}

	if _, ok := model.SectionByKey(p[0]); !ok {
		return []model.Message{critical(CodeUnknownSection,
			fmt.Sprintf("Unknown section: %q", p[0]))}
	}

	if _, err := rawText(props.Value); err != nil {
		return []model.Message{critical(CodeInvalidProperties, err.Error())}
	}

	return nil
}

func (h *SetFieldHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	var props setFieldProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}
	p, _ := fieldpath.Parse(props.Path)
	raw, _ := rawText(props.Value)
	parent, name := p.Split()

	owner, err := fieldpath.Resolve(&state.Application, parent)
	if err != nil {
		return []model.Message{pathMessage(props.Path, err)}
	}
	leaf, err := fieldpath.Field(owner, name)
	if err != nil {
		return []model.Message{pathMessage(props.Path, err)}
	}

	var msgs []model.Message
	record := owner.Addr().Interface()

	if f, ok := record.(model.InputFilter); ok {
		filtered, err := f.FilterInput(name, raw)
		if errors.Is(err, model.ErrAccountNumberTooLong) {
			msgs = append(msgs, warning(CodeAccountNumberTooLong,
				fmt.Sprintf("%s: account numbers have at most 8 digits; previous value kept", props.Path)))
		}
		raw = filtered
	}

	if err := fieldpath.SetText(leaf, raw); err != nil {
		if !errors.Is(err, fieldpath.ErrInvalidValue) {
			return []model.Message{pathMessage(props.Path, err)}
		}
		msgs = append(msgs, warning(CodeInvalidValue,
			fmt.Sprintf("%s: %v; field left unset", props.Path, err)))
	}

	if d, ok := record.(model.Deriver); ok {
		if err := d.Derive(name, asOf(mutation)); errors.Is(err, model.ErrInvalidDate) {
			msgs = append(msgs, warning(CodeInvalidDate,
				fmt.Sprintf("%s: %q is not a valid date; derived fields cleared", props.Path, raw)))
		}
	}

	return msgs
}

// pathMessage maps a field path failure onto a CRITICAL message.
func pathMessage(path string, err error) model.Message {
	switch {
	case errors.Is(err, fieldpath.ErrIndexOutOfRange):
		return critical(CodeIndexOutOfRange, fmt.Sprintf("%s: %v", path, err))
	case errors.Is(err, fieldpath.ErrNotLeaf):
		return critical(CodeNotAField, fmt.Sprintf("%s is a record, not a field", path))
	case errors.Is(err, fieldpath.ErrNotList):
		return critical(CodeNotAList, fmt.Sprintf("%s is not a list", path))
	default:
		return critical(CodePathNotFound, fmt.Sprintf("%s: %v", path, err))
	}
}
