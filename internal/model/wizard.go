package model

import json "github.com/goccy/go-json"

// StepCount is the number of wizard steps, one per section.
const StepCount = 13

// Wizard is the state driven by mutations: the active step, the aggregate
// record and the terminal submitted marker.
type Wizard struct {
	Step        int         `json:"step"`
	Submitted   bool        `json:"submitted"`
	SubmittedAt *string     `json:"submitted_at"`
	Application Application `json:"application"`
}

func NewWizard() *Wizard {
	return &Wizard{Step: 0, Application: NewApplication()}
}

func (w *Wizard) AtFirstStep() bool { return w.Step == 0 }

func (w *Wizard) AtLastStep() bool { return w.Step == StepCount-1 }

// CurrentSection returns the descriptor rendered at the active step.
func (w *Wizard) CurrentSection() Section {
	return Sections[w.Step]
}

// Clone returns a deep copy of w.
func (w *Wizard) Clone() *Wizard {
	b, err := json.Marshal(w)
	if err != nil {
		panic("model: wizard is not serialisable: " + err.Error())
	}
	var c Wizard
	if err := json.Unmarshal(b, &c); err != nil {
		panic("model: wizard does not round-trip: " + err.Error())
	}
	c.Application.Normalize()
	return &c
}
