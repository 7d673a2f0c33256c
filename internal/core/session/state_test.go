package session

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// memStorage is an in-memory ports.SessionStorage for tests.
type memStorage struct {
	mu     sync.Mutex
	user   *domain.User
	saves  int
	clears int
}

func (m *memStorage) Load(ctx context.Context) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *memStorage) Save(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *u
	m.user = &copied
	m.saves++
	return nil
}

func (m *memStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.clears++
	return nil
}

func (m *memStorage) stored() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func newTestState() (*State, *memStorage) {
	storage := &memStorage{}
	return NewState(storage, zerolog.Nop()), storage
}

func TestStateStartsInitializing(t *testing.T) {
	s, _ := newTestState()
	snap := s.Snapshot()
	if !snap.IsInitializing {
		t.Fatalf("fresh state must be initializing")
	}
	if snap.IsAuthenticated || snap.User != nil || snap.Session != nil {
		t.Fatalf("fresh state must be empty: %+v", snap)
	}

	s.FinishInitializing()
	if s.Snapshot().IsInitializing {
		t.Fatalf("FinishInitializing did not lower the flag")
	}
	s.FinishInitializing() // second call is a no-op
	if s.Snapshot().IsInitializing {
		t.Fatalf("flag raised again on repeat call")
	}
}

func TestUpdateAuthStateMergesOnlyGivenFields(t *testing.T) {
	s, _ := newTestState()
	user := &domain.User{ID: "u1", Email: "a@b.c", Role: domain.RoleStaff, HotelID: "H1"}
	sess := &domain.Session{Token: "tok", UserID: "u1", Email: "a@b.c"}

	s.UpdateAuthState(Partial{User: user, Session: sess, IsAuthenticated: Bool(true)})

	// A partial update must not touch the unset slots.
	s.UpdateAuthState(Partial{IsAuthenticated: Bool(false)})
	snap := s.Snapshot()
	if snap.IsAuthenticated {
		t.Fatalf("IsAuthenticated not updated")
	}
	if snap.User == nil || snap.User.ID != "u1" {
		t.Fatalf("user dropped by unrelated partial update: %+v", snap.User)
	}
	if snap.Session == nil || snap.Session.Token != "tok" {
		t.Fatalf("session dropped by unrelated partial update: %+v", snap.Session)
	}

	// Explicit clears force slots to nil.
	s.UpdateAuthState(Partial{ClearUser: true, ClearSession: true})
	snap = s.Snapshot()
	if snap.User != nil || snap.Session != nil {
		t.Fatalf("clear flags ignored: %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestState()
	s.UpdateAuthState(Partial{User: &domain.User{ID: "u1", Role: domain.RoleStaff, HotelID: "H1"}})

	snap := s.Snapshot()
	snap.User.ID = "mutated"
	if s.Snapshot().User.ID != "u1" {
		t.Fatalf("snapshot mutation leaked into the state")
	}
}

func TestUpdateUserAuthenticatesAndPersists(t *testing.T) {
	s, storage := newTestState()
	u := &domain.User{ID: "g1", Role: domain.RoleGuest, HotelID: "H1", RoomNumber: "204"}

	s.UpdateUser(context.Background(), u)

	snap := s.Snapshot()
	if !snap.IsAuthenticated {
		t.Fatalf("UpdateUser must force IsAuthenticated")
	}
	if snap.User == nil || snap.User.ID != "g1" {
		t.Fatalf("user not set: %+v", snap.User)
	}
	if got := storage.stored(); got == nil || got.ID != "g1" {
		t.Fatalf("user not persisted: %+v", got)
	}
}

func TestUpdateUserIfCurrentDiscardsStaleLogin(t *testing.T) {
	s, storage := newTestState()
	ctx := context.Background()

	gen := s.Generation()
	s.Clear(ctx) // logout happened while the login was in flight

	ok := s.UpdateUserIfCurrent(ctx, gen, &domain.User{ID: "u1", Role: domain.RoleStaff, HotelID: "H1"})
	if ok {
		t.Fatalf("stale login completion must be discarded")
	}
	snap := s.Snapshot()
	if snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("stale update mutated the state: %+v", snap)
	}
	if storage.stored() != nil {
		t.Fatalf("stale update persisted a user")
	}

	// With the current generation the update goes through.
	if !s.UpdateUserIfCurrent(ctx, s.Generation(), &domain.User{ID: "u2", Role: domain.RoleStaff, HotelID: "H1"}) {
		t.Fatalf("current-generation update rejected")
	}
	if s.Snapshot().User.ID != "u2" {
		t.Fatalf("current-generation update not applied")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s, storage := newTestState()
	ctx := context.Background()
	s.UpdateUser(ctx, &domain.User{ID: "g1", Role: domain.RoleGuest, HotelID: "H1", RoomNumber: "101"})

	s.Clear(ctx)
	s.Clear(ctx)

	snap := s.Snapshot()
	if snap.IsAuthenticated || snap.User != nil || snap.Session != nil {
		t.Fatalf("state not cleared: %+v", snap)
	}
	if storage.stored() != nil {
		t.Fatalf("persisted user not cleared")
	}
	if storage.clears != 2 {
		t.Fatalf("expected 2 storage clears, got %d", storage.clears)
	}
}
