package engine

import (
	"fmt"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"mortgage-portal/internal/derive"
	"mortgage-portal/internal/jsonpatch"
	"mortgage-portal/internal/model"
	"mortgage-portal/internal/mutations"
)

const dateLayout = "2006-01-02"

type Options struct {
	// Now supplies the clock for blank actual_at dates and run timings.
	// Defaults to time.Now.
	Now func() time.Time
	// Registry resolves mutation names. Defaults to a non-strict registry.
	Registry *mutations.Registry
}

// Engine runs mutation batches against wizard state.
type Engine struct {
	now      func() time.Time
	registry *mutations.Registry
	encode   func(v interface{}) ([]byte, error)
}

func New(opts Options) *Engine {
	e := &Engine{now: opts.Now, registry: opts.Registry, encode: json.Marshal}
	if e.now == nil {
		e.now = time.Now
	}
	if e.registry == nil {
		e.registry = mutations.NewRegistry(mutations.Options{})
	}
	return e
}

func (e *Engine) Registry() *mutations.Registry { return e.registry }

// Process replays the request's mutations against a fresh wizard.
func (e *Engine) Process(req *model.RunRequest) *model.RunResponse {
	resp := e.Run(model.NewWizard(), req.Instructions.Mutations)
	resp.RunMetadata.TenantID = req.TenantID
	return resp
}

// Run applies muts to w in order, stopping at the first CRITICAL message.
// On return w holds the state after the last mutation that succeeded.
func (e *Engine) Run(w *model.Wizard, muts []model.Mutation) *model.RunResponse {
	start := e.now()
	initial := *w.Clone()

	var allMessages []model.Message
	var processed []model.ProcessedMutation
	outcome := model.OutcomeSuccess

	end := model.StateEnvelope{MutationIndex: -1}

	for i := range muts {
		mut := muts[i]
		if mut.ActualAt == "" {
			mut.ActualAt = e.now().UTC().Format(dateLayout)
		}

		msgs, ops := e.step(w, &mut)

		var msgIndexes []int
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			msgIndexes = append(msgIndexes, m.ID)
		}
		processed = append(processed, model.ProcessedMutation{
			Mutation:       mut,
			MessageIndexes: msgIndexes,
			Patch:          ops,
		})

		if mutations.HasCritical(msgs) {
			outcome = model.OutcomeFailure
			break
		}

		end.MutationID = mut.MutationID
		end.MutationIndex = i
		end.ActualAt = mut.ActualAt
	}

	end.Wizard = *w.Clone()

	if allMessages == nil {
		allMessages = []model.Message{}
	}
	if processed == nil {
		processed = []model.ProcessedMutation{}
	}

	completed := e.now()
	initialAt := ""
	if len(muts) > 0 {
		initialAt = muts[0].ActualAt
	}

	return &model.RunResponse{
		RunMetadata: model.RunMetadata{
			RunID:          uuid.New().String(),
			RunStartedAt:   start.UTC().Format(time.RFC3339),
			RunCompletedAt: completed.UTC().Format(time.RFC3339),
			RunDurationMs:  completed.Sub(start).Milliseconds(),
			RunOutcome:     outcome,
		},
		RunResult: model.RunResult{
			Messages:  allMessages,
			Mutations: processed,
			EndState:  end,
			InitialState: model.InitialState{
				ActualAt: initialAt,
				Wizard:   initial,
			},
		},
	}
}

// step validates and applies one mutation. When a CRITICAL message comes out
// of Apply the wizard is restored to its state before the mutation.
func (e *Engine) step(w *model.Wizard, mut *model.Mutation) ([]model.Message, []jsonpatch.Op) {
	noPatch := []jsonpatch.Op{}

	if _, ok := derive.ParseDate(mut.ActualAt); !ok {
		return []model.Message{{
			Level:   model.LevelCritical,
			Code:    mutations.CodeInvalidActualAt,
			Message: fmt.Sprintf("actual_at %q is not a YYYY-MM-DD date", mut.ActualAt),
		}}, noPatch
	}

	if w.Submitted {
		return []model.Message{{
			Level:   model.LevelCritical,
			Code:    mutations.CodeApplicationSubmitted,
			Message: "The application has already been submitted",
		}}, noPatch
	}

	handler, ok := e.registry.Get(mut.MutationDefinitionName)
	if !ok {
		return []model.Message{{
			Level:   model.LevelCritical,
			Code:    mutations.CodeUnknownMutation,
			Message: fmt.Sprintf("Unknown mutation: %s", mut.MutationDefinitionName),
		}}, noPatch
	}

	msgs := handler.Validate(w, mut)
	if mutations.HasCritical(msgs) {
		return msgs, noPatch
	}

	before, err := e.encode(w)
	if err != nil {
		log.Printf("engine: snapshot before %s failed: %v", mut.MutationID, err)
		return append(msgs, model.Message{
			Level:   model.LevelCritical,
			Code:    mutations.CodeStateUnavailable,
			Message: "The wizard state could not be captured; the mutation was not applied",
		}), noPatch
	}

	applyMsgs := handler.Apply(w, mut)
	msgs = append(msgs, applyMsgs...)
	if mutations.HasCritical(applyMsgs) {
		restore(w, before)
		return msgs, noPatch
	}

	after, err := e.encode(w)
	if err != nil {
		log.Printf("engine: snapshot after %s failed: %v", mut.MutationID, err)
		return msgs, noPatch
	}
	ops, err := jsonpatch.DiffJSON(before, after)
	if err != nil {
		log.Printf("engine: diff for %s failed: %v", mut.MutationID, err)
		return msgs, noPatch
	}
	return msgs, ops
}

func restore(w *model.Wizard, snapshot []byte) {
	var prev model.Wizard
	if err := json.Unmarshal(snapshot, &prev); err != nil {
		log.Printf("engine: restoring wizard state failed: %v", err)
		return
	}
	prev.Application.Normalize()
	*w = prev
}
