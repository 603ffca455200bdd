package store

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"mortgage-portal/internal/model"
)

var ErrNotFound = errors.New("wizard not found")

type session struct {
	id        string
	owner     string
	wizard    *model.Wizard
	createdAt time.Time
	touchedAt time.Time
}

// Summary describes a live session without its application data.
type Summary struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Step      int       `json:"step"`
	CreatedAt time.Time `json:"created_at"`
	TouchedAt time.Time `json:"touched_at"`
}

type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
}

// New returns an empty store evicting sessions idle for longer than ttl.
// A zero ttl disables eviction. now defaults to time.Now.
func New(ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{ttl: ttl, now: now, sessions: make(map[string]*session)}
}

// Create starts a fresh wizard owned by owner and returns its id.
func (s *Store) Create(owner string) (string, *model.Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &session{
		id:        uuid.New().String(),
		owner:     owner,
		wizard:    model.NewWizard(),
		createdAt: now,
		touchedAt: now,
	}
	s.sessions[sess.id] = sess
	log.Printf("store: wizard %s created for %q", sess.id, owner)
	return sess.id, sess.wizard.Clone()
}

// Get returns a copy of the wizard and its owner.
func (s *Store) Get(id string) (*model.Wizard, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, "", err
	}
	return sess.wizard.Clone(), sess.owner, nil
}

// Result tells Update what fn did with the session.
type Result int

const (
	// Declined leaves the session and its idle clock as they were.
	Declined Result = iota
	// Touched keeps the session and restarts its idle clock.
	Touched
	// Discard removes the session.
	Discard
)

// Update runs fn against the live wizard while holding the store lock and
// then acts on the Result it returns.
func (s *Store) Update(id string, fn func(w *model.Wizard, owner string) Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	switch fn(sess.wizard, sess.owner) {
	case Touched:
		sess.touchedAt = s.now()
	case Discard:
		delete(s.sessions, id)
		log.Printf("store: wizard %s discarded", id)
	}
	return nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	log.Printf("store: wizard %s deleted", id)
	return nil
}

// List summarises the live sessions, oldest first.
func (s *Store) List() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if s.expired(sess) {
			continue
		}
		out = append(out, Summary{
			ID:        sess.id,
			Owner:     sess.owner,
			Step:      sess.wizard.Step,
			CreatedAt: sess.createdAt,
			TouchedAt: sess.touchedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Sweep evicts every expired session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("store: evicted %d idle wizard(s)", n)
			}
		}
	}
}

// lookup must be called with s.mu held.
func (s *Store) lookup(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(sess) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) expired(sess *session) bool {
	return s.ttl > 0 && s.now().Sub(sess.touchedAt) > s.ttl
}
