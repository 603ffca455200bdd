package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"mortgage-portal/internal/access"
	"mortgage-portal/internal/engine"
	"mortgage-portal/internal/model"
	"mortgage-portal/internal/store"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newServer(maxMutations int) http.Handler {
	return newServerAt(func() time.Time { return fixedNow }, maxMutations)
}

func newServerAt(clock func() time.Time, maxMutations int) http.Handler {
	e := engine.New(engine.Options{Now: clock})
	s := store.New(time.Hour, clock)
	return New(e, s, maxMutations).Router()
}

func do(t *testing.T, srv http.Handler, method, path, user string, role access.Role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(access.HeaderUser, user)
		req.Header.Set(access.HeaderRole, string(role))
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func mutations(names ...string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf(`{"mutation_id":"m-%d","mutation_definition_name":%q,"actual_at":"2026-10-19"}`, i, n)
	}
	return `{"mutations":[` + strings.Join(parts, ",") + `]}`
}

func createWizard(t *testing.T, srv http.Handler, user string) string {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/wizards", user, access.RoleClient, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}
	var resp wizardResponse
	decode(t, rec, &resp)
	if resp.ID == "" || resp.Owner != user || resp.Wizard.Step != 0 {
		t.Fatalf("unexpected create response: %+v", resp)
	}
	return resp.ID
}

func TestHealth(t *testing.T) {
	rec := do(t, newServer(0), http.MethodGet, "/health", "", "", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "OK" {
		t.Fatalf("health: %d %q", rec.Code, rec.Body.String())
	}
}

func TestSectionsListsEveryStep(t *testing.T) {
	rec := do(t, newServer(0), http.MethodGet, "/sections", "", "", "")
	var resp sectionsResponse
	decode(t, rec, &resp)
	if len(resp.Sections) != model.StepCount {
		t.Fatalf("expected %d sections, got %d", model.StepCount, len(resp.Sections))
	}
	if resp.Sections[0].Key != "personalDetails" || resp.Sections[12].Key != "additionalInformation" {
		t.Fatalf("unexpected section order: %+v", resp.Sections)
	}
	if len(resp.Mutations) == 0 {
		t.Fatal("expected mutation names")
	}
}

func TestSessionRequired(t *testing.T) {
	srv := newServer(0)

	if rec := do(t, srv, http.MethodPost, "/wizards", "", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/wizards", "alice", "guest", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown role: expected 401, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/wizards", "root", access.RoleAdmin, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("admin create: expected 403, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/wizards", "alice", access.RoleClient, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("client list: expected 403, got %d", rec.Code)
	}
}

func TestStatelessRun(t *testing.T) {
	srv := newServer(0)
	body := `{"tenant_id":"t1","instructions":` + mutations("go_next", "go_next") + `}`

	rec := do(t, srv, http.MethodPost, "/runs", "alice", access.RoleClient, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp model.RunResponse
	decode(t, rec, &resp)
	if resp.RunMetadata.TenantID != "t1" || resp.RunMetadata.RunOutcome != model.OutcomeSuccess {
		t.Fatalf("unexpected metadata: %+v", resp.RunMetadata)
	}
	if resp.RunResult.EndState.Wizard.Step != 2 {
		t.Fatalf("expected step 2, got %d", resp.RunResult.EndState.Wizard.Step)
	}
}

func TestRunRejectsBadBatches(t *testing.T) {
	srv := newServer(2)

	cases := map[string]string{
		"malformed": `{"instructions":`,
		"empty":     `{"instructions":{"mutations":[]}}`,
		"too many":  `{"instructions":` + mutations("go_next", "go_next", "go_next") + `}`,
	}
	for name, body := range cases {
		rec := do(t, srv, http.MethodPost, "/runs", "alice", access.RoleClient, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
			continue
		}
		var e model.ErrorResponse
		decode(t, rec, &e)
		if e.Status != http.StatusBadRequest || e.Message == "" {
			t.Errorf("%s: unexpected error body %+v", name, e)
		}
	}
}

func TestWizardLifecycle(t *testing.T) {
	srv := newServer(0)
	id := createWizard(t, srv, "alice")

	rec := do(t, srv, http.MethodPost, "/wizards/"+id+"/mutations", "alice", access.RoleClient, mutations("go_next"))
	if rec.Code != http.StatusOK {
		t.Fatalf("mutate: status %d: %s", rec.Code, rec.Body.String())
	}
	var run model.RunResponse
	decode(t, rec, &run)
	if run.RunMetadata.WizardID != id || run.RunResult.EndState.Wizard.Step != 1 {
		t.Fatalf("unexpected run: %+v", run.RunMetadata)
	}

	// State persists between batches.
	rec = do(t, srv, http.MethodGet, "/wizards/"+id, "alice", access.RoleClient, "")
	var got wizardResponse
	decode(t, rec, &got)
	if got.Wizard.Step != 1 {
		t.Fatalf("expected stored step 1, got %d", got.Wizard.Step)
	}

	// Advisers reach any wizard.
	if rec := do(t, srv, http.MethodGet, "/wizards/"+id, "bob", access.RoleAdviser, ""); rec.Code != http.StatusOK {
		t.Fatalf("adviser get: %d", rec.Code)
	}

	rec = do(t, srv, http.MethodDelete, "/wizards/"+id, "alice", access.RoleClient, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/wizards/"+id, "alice", access.RoleClient, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestClientCannotReachOthersWizard(t *testing.T) {
	srv := newServer(0)
	id := createWizard(t, srv, "alice")

	if rec := do(t, srv, http.MethodGet, "/wizards/"+id, "mallory", access.RoleClient, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get: expected 404, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/wizards/"+id+"/mutations", "mallory", access.RoleClient, mutations("go_next")); rec.Code != http.StatusNotFound {
		t.Fatalf("mutate: expected 404, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/wizards/"+id, "mallory", access.RoleClient, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("delete: expected 404, got %d", rec.Code)
	}

	rec := do(t, srv, http.MethodGet, "/wizards/"+id, "alice", access.RoleClient, "")
	var got wizardResponse
	decode(t, rec, &got)
	if got.Wizard.Step != 0 {
		t.Fatalf("foreign mutation leaked: step %d", got.Wizard.Step)
	}
}

func TestSubmitDiscardsWizard(t *testing.T) {
	srv := newServer(0)
	id := createWizard(t, srv, "alice")

	names := make([]string, 0, model.StepCount)
	for i := 0; i < model.StepCount-1; i++ {
		names = append(names, "go_next")
	}
	names = append(names, "submit")

	rec := do(t, srv, http.MethodPost, "/wizards/"+id+"/mutations", "alice", access.RoleClient, mutations(names...))
	var run model.RunResponse
	decode(t, rec, &run)
	if !run.RunResult.EndState.Wizard.Submitted {
		t.Fatalf("expected submitted wizard: %s", rec.Body.String())
	}

	if rec := do(t, srv, http.MethodGet, "/wizards/"+id, "alice", access.RoleClient, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected submitted wizard to be discarded, got %d", rec.Code)
	}
}

func TestAdminListsWizards(t *testing.T) {
	srv := newServer(0)
	createWizard(t, srv, "alice")
	createWizard(t, srv, "carol")

	rec := do(t, srv, http.MethodGet, "/wizards", "root", access.RoleAdmin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	var list []store.Summary
	decode(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 wizards, got %d", len(list))
	}
}

func TestForeignRequestDoesNotKeepWizardAlive(t *testing.T) {
	now := fixedNow
	srv := newServerAt(func() time.Time { return now }, 0)
	id := createWizard(t, srv, "alice")

	now = now.Add(45 * time.Minute)
	if rec := do(t, srv, http.MethodPost, "/wizards/"+id+"/mutations", "mallory", access.RoleClient, mutations("go_next")); rec.Code != http.StatusNotFound {
		t.Fatalf("mutate: expected 404, got %d", rec.Code)
	}

	now = now.Add(30 * time.Minute)
	if rec := do(t, srv, http.MethodGet, "/wizards/"+id, "alice", access.RoleClient, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected the idle wizard to expire, got %d", rec.Code)
	}
}
