package mutations

import "sort"

// Options tunes the behaviour of the registered handlers.
type Options struct {
	// StrictSteps turns missing required fields into CRITICAL messages, so
	// go_next and submit refuse to move past an incomplete section.
	StrictSteps bool
}

// Registry maps mutation definition names to their handlers.
type Registry struct {
	handlers map[string]MutationHandler
}

func NewRegistry(opts Options) *Registry {
	return &Registry{handlers: map[string]MutationHandler{
		"go_next":        &GoNextHandler{Strict: opts.StrictSteps},
		"go_back":        &GoBackHandler{},
		"update_section": &UpdateSectionHandler{},
		"set_field":      &SetFieldHandler{},
		"add_item":       &AddItemHandler{},
		"remove_item":    &RemoveItemHandler{},
		"submit":         &SubmitHandler{Strict: opts.StrictSteps},

		"add_address":               &AddItemHandler{List: "/addressHistory"},
		"remove_address":            &RemoveItemHandler{List: "/addressHistory"},
		"add_dependent":             &AddItemHandler{List: "/dependents"},
		"remove_dependent":          &RemoveItemHandler{List: "/dependents"},
		"add_employment":            &AddItemHandler{List: "/income/employmentDetails"},
		"remove_employment":         &RemoveItemHandler{List: "/income/employmentDetails"},
		"add_additional_income":     &AddItemHandler{List: "/income/additionalIncome"},
		"remove_additional_income":  &RemoveItemHandler{List: "/income/additionalIncome"},
		"add_credit_commitment":     &AddItemHandler{List: "/creditCommitments"},
		"remove_credit_commitment":  &RemoveItemHandler{List: "/creditCommitments"},
		"add_portfolio_property":    &AddItemHandler{List: "/propertyPortfolio/properties"},
		"remove_portfolio_property": &RemoveItemHandler{List: "/propertyPortfolio/properties"},
	}}
}

func (r *Registry) Get(name string) (MutationHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists the registered mutation names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
