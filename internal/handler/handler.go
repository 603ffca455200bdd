package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"mortgage-portal/internal/access"
	"mortgage-portal/internal/engine"
	"mortgage-portal/internal/model"
	"mortgage-portal/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler serves the wizard API.
type Handler struct {
	engine       *engine.Engine
	store        *store.Store
	maxMutations int
}

// New builds a Handler. maxMutations caps a single batch; zero means no cap.
func New(e *engine.Engine, s *store.Store, maxMutations int) *Handler {
	return &Handler{engine: e, store: s, maxMutations: maxMutations}
}

// Router wires every route, each behind the session middleware.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(withSession)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/sections", h.listSections).Methods(http.MethodGet)

	portal := []access.Role{access.RoleClient, access.RoleAdviser}
	r.Handle("/runs", requireRole(h.run, portal...)).Methods(http.MethodPost)
	r.Handle("/wizards", requireRole(h.createWizard, portal...)).Methods(http.MethodPost)
	r.Handle("/wizards", requireRole(h.listWizards, access.RoleAdmin)).Methods(http.MethodGet)
	r.Handle("/wizards/{id}", requireRole(h.getWizard, portal...)).Methods(http.MethodGet)
	r.Handle("/wizards/{id}/mutations", requireRole(h.mutateWizard, portal...)).Methods(http.MethodPost)
	r.Handle("/wizards/{id}", requireRole(h.deleteWizard, access.RoleClient, access.RoleAdviser, access.RoleAdmin)).Methods(http.MethodDelete)

	return r
}

func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := access.FromRequest(r)
		next.ServeHTTP(w, r.WithContext(access.WithSession(r.Context(), s)))
	})
}

func requireRole(fn http.HandlerFunc, roles ...access.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := access.FromContext(r.Context())
		if !s.Authenticated() {
			writeError(w, http.StatusUnauthorized, "Missing portal session")
			return
		}
		if !s.HasRole(roles...) {
			writeError(w, http.StatusForbidden, fmt.Sprintf("Role %s may not use this endpoint", s.Role))
			return
		}
		fn(w, r)
	})
}

// canAccess reports whether the caller may see a wizard owned by owner.
// Clients only reach their own applications.
func canAccess(s access.Session, owner string) bool {
	if s.Role == access.RoleClient {
		return s.UserID == owner
	}
	return true
}

type sectionInfo struct {
	Step  int    `json:"step"`
	Key   string `json:"key"`
	Title string `json:"title"`
}

type sectionsResponse struct {
	Sections  []sectionInfo `json:"sections"`
	Mutations []string      `json:"mutations"`
}

func (h *Handler) listSections(w http.ResponseWriter, r *http.Request) {
	resp := sectionsResponse{Mutations: h.engine.Registry().Names()}
	for i, s := range model.Sections {
		resp.Sections = append(resp.Sections, sectionInfo{Step: i, Key: s.Key, Title: s.Title})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	var req model.RunRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkBatch(w, req.Instructions.Mutations) {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Process(&req))
}

type wizardResponse struct {
	ID     string       `json:"id"`
	Owner  string       `json:"owner"`
	Wizard model.Wizard `json:"wizard"`
}

func (h *Handler) createWizard(w http.ResponseWriter, r *http.Request) {
	s := access.FromContext(r.Context())
	id, wiz := h.store.Create(s.UserID)
	writeJSON(w, http.StatusCreated, wizardResponse{ID: id, Owner: s.UserID, Wizard: *wiz})
}

func (h *Handler) listWizards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) getWizard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	wiz, owner, err := h.store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !canAccess(access.FromContext(r.Context()), owner) {
		writeError(w, http.StatusNotFound, "Wizard not found")
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse{ID: id, Owner: owner, Wizard: *wiz})
}

func (h *Handler) mutateWizard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req model.Instructions
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkBatch(w, req.Mutations) {
		return
	}

	s := access.FromContext(r.Context())
	var resp *model.RunResponse
	err := h.store.Update(id, func(wiz *model.Wizard, owner string) store.Result {
		if !canAccess(s, owner) {
			return store.Declined
		}
		resp = h.engine.Run(wiz, req.Mutations)
		if wiz.Submitted {
			return store.Discard
		}
		return store.Touched
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "Wizard not found")
		return
	}
	resp.RunMetadata.WizardID = id
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteWizard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_, owner, err := h.store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !canAccess(access.FromContext(r.Context()), owner) {
		writeError(w, http.StatusNotFound, "Wizard not found")
		return
	}
	if err := h.store.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) checkBatch(w http.ResponseWriter, muts []model.Mutation) bool {
	if len(muts) == 0 {
		writeError(w, http.StatusBadRequest, "At least one mutation is required")
		return false
	}
	if h.maxMutations > 0 && len(muts) > h.maxMutations {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("At most %d mutations per request", h.maxMutations))
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Wizard not found")
		return
	}
	log.Printf("handler: store error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
