package mutations

import (
	"fmt"
	"strconv"

	"mortgage-portal/internal/fieldpath"
	"mortgage-portal/internal/model"
)

type addItemProps struct {
	Path string `json:"path"`
}

type removeItemProps struct {
	Path  string `json:"path"`
	Index *int   `json:"index"`
}

// AddItemHandler appends a default-valued element to a list. With List set
// the handler is bound to that list; otherwise the path comes from the
// mutation properties.
type AddItemHandler struct {
	List string
}

func (h *AddItemHandler) target(mutation *model.Mutation) (fieldpath.Pointer, []model.Message) {
	path := h.List
	if path == "" {
		var props addItemProps
		if msgs := decodeProps(mutation, &props); msgs != nil {
			return nil, msgs
		}
		path = props.Path
	}
	p, err := fieldpath.Parse(path)
	if err != nil {
		return nil, []model.Message{critical(CodeInvalidPath, fmt.Sprintf("Invalid list path: %q", path))}
	}
	return p, nil
}

func (h *AddItemHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	_, msgs := h.target(mutation)
	return msgs
}

func (h *AddItemHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	p, msgs := h.target(mutation)
	if msgs != nil {
		return msgs
	}
	if _, err := fieldpath.Append(&state.Application, p); err != nil {
		return []model.Message{pathMessage(p.String(), err)}
	}
	return nil
}

// RemoveItemHandler splices one element out of a list, keeping the order of
// the rest. Bound handlers take the position from the "index" property.
type RemoveItemHandler struct {
	List string
}

func (h *RemoveItemHandler) target(mutation *model.Mutation) (fieldpath.Pointer, []model.Message) {
	var props removeItemProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return nil, msgs
	}

	path := props.Path
	if h.List != "" {
		if props.Index == nil {
			return nil, []model.Message{critical(CodeInvalidProperties,
				fmt.Sprintf("%s requires an index", mutation.MutationDefinitionName))}
		}
		path = h.List + "/" + strconv.Itoa(*props.Index)
	}

	p, err := fieldpath.Parse(path)
	if err != nil || len(p) < 2 {
		return nil, []model.Message{critical(CodeInvalidPath, fmt.Sprintf("Invalid list element path: %q", path))}
	}
	return p, nil
}

func (h *RemoveItemHandler) Validate(state *model.Wizard, mutation *model.Mutation) []model.Message {
	_, msgs := h.target(mutation)
	return msgs
}

func (h *RemoveItemHandler) Apply(state *model.Wizard, mutation *model.Mutation) []model.Message {
	p, msgs := h.target(mutation)
	if msgs != nil {
		return msgs
	}
	if err := fieldpath.Remove(&state.Application, p); err != nil {
		return []model.Message{pathMessage(p.String(), err)}
	}
	return nil
}
