// Package session holds the single in-memory session record and the
// bootstrapper that populates it at startup. Only the bootstrapper, the
// login flows, and logout write to it.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// Snapshot is a point-in-time copy of the session record for readers.
type Snapshot struct {
	User            *domain.User
	Session         *domain.Session
	IsAuthenticated bool
	IsInitializing  bool
}

// Partial carries the fields of an UpdateAuthState merge. Nil pointers mean
// "leave unchanged"; ClearUser/ClearSession force the slot to nil.
type Partial struct {
	User            *domain.User
	Session         *domain.Session
	IsAuthenticated *bool
	ClearUser       bool
	ClearSession    bool
}

// Bool is a convenience for Partial's IsAuthenticated field.
func Bool(b bool) *bool { return &b }

// State is the process-wide mutable session record. IsInitializing starts
// true and is lowered exactly once, after the bootstrapper's first
// resolution attempt settles.
type State struct {
	mu              sync.Mutex
	user            *domain.User
	session         *domain.Session
	isAuthenticated bool
	isInitializing  bool
	// generation increments on every logout; login completions carrying an
	// older generation are stale and ignored.
	generation uint64

	storage ports.SessionStorage
	log     zerolog.Logger
}

// NewState returns an initializing, unauthenticated State that persists
// users to storage on UpdateUser.
func NewState(storage ports.SessionStorage, log zerolog.Logger) *State {
	return &State{isInitializing: true, storage: storage, log: log}
}

// Snapshot returns a copy of the current record.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		IsAuthenticated: s.isAuthenticated,
		IsInitializing:  s.isInitializing,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.session != nil {
		sess := *s.session
		snap.Session = &sess
	}
	return snap
}

// Generation returns the current logout generation. A flow that may settle
// after a logout should capture it before its first suspension point and
// complete with UpdateUserIfCurrent.
func (s *State) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// UpdateAuthState shallow-merges partial into the record. No validation and
// no persistence; callers are trusted.
func (s *State) UpdateAuthState(p Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.User != nil {
		u := *p.User
		s.user = &u
	} else if p.ClearUser {
		s.user = nil
	}
	if p.Session != nil {
		sess := *p.Session
		s.session = &sess
	} else if p.ClearSession {
		s.session = nil
	}
	if p.IsAuthenticated != nil {
		s.isAuthenticated = *p.IsAuthenticated
	}
}

// UpdateUser is the canonical "a session now exists" transition: it sets the
// user, forces IsAuthenticated, and persists the user to durable storage.
func (s *State) UpdateUser(ctx context.Context, u *domain.User) {
	s.updateUser(ctx, u, nil)
}

// UpdateUserIfCurrent behaves like UpdateUser but only if no logout happened
// since gen was captured. Returns false when the update was discarded.
func (s *State) UpdateUserIfCurrent(ctx context.Context, gen uint64, u *domain.User) bool {
	return s.updateUser(ctx, u, &gen)
}

func (s *State) updateUser(ctx context.Context, u *domain.User, gen *uint64) bool {
	s.mu.Lock()
	if gen != nil && *gen != s.generation {
		s.mu.Unlock()
		s.log.Debug().Str("email", u.Email).Msg("discarding stale session update")
		return false
	}
	copied := *u
	s.user = &copied
	s.isAuthenticated = true
	s.mu.Unlock()

	if err := s.storage.Save(ctx, u); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session user")
	}
	return true
}

// Clear wipes user, session, and authentication, bumps the generation, and
// removes the persisted user. Idempotent.
func (s *State) Clear(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.session = nil
	s.isAuthenticated = false
	s.generation++
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session user")
	}
}

// FinishInitializing lowers IsInitializing. Later calls are no-ops.
func (s *State) FinishInitializing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isInitializing = false
}
