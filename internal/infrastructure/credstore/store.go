// Package credstore implements the credential store: password verification,
// session issuance, session-change notifications, and the privileged admin
// operations. It owns only credential records; tenant metadata stays in the
// profile repository.
package credstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// Store verifies bcrypt credentials and tracks the process's current
// session, notifying subscribers of sign-in and sign-out transitions.
type Store struct {
	repo   ports.CredentialRepository
	tokens *TokenIssuer
	log    zerolog.Logger

	mu      sync.Mutex
	current *domain.Session
	subs    map[int]func(ports.SessionEvent)
	nextSub int
}

func New(repo ports.CredentialRepository, tokens *TokenIssuer, log zerolog.Logger) *Store {
	return &Store{
		repo:   repo,
		tokens: tokens,
		log:    log,
		subs:   make(map[int]func(ports.SessionEvent)),
	}
}

// SignInWithPassword verifies the pair and issues an identity session.
func (s *Store) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Identity session: id and email only. Role and tenant claims are not
	// known here; the caller resolves the profile and signs the bearer
	// token that actually carries them.
	sess, err := s.tokens.Sign(&domain.User{ID: cred.ID, Email: cred.Email})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.notify(ports.SessionEvent{Kind: ports.SessionSignedIn, Session: sess})
	return sess, nil
}

// SignOut drops the current session. Calling it without one is a no-op that
// still emits no event.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if had {
		s.notify(ports.SessionEvent{Kind: ports.SessionSignedOut})
	}
	return nil
}

// GetSession returns the live session, or nil when none exists or the
// current one has expired.
func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Expired(time.Now()) {
		return nil, nil
	}
	sess := *s.current
	return &sess, nil
}

// OnSessionChange registers fn for session events and returns its
// unsubscribe function. Events are delivered off the caller's goroutine;
// fn must not block and must not call back into the store.
func (s *Store) OnSessionChange(fn func(ports.SessionEvent)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetPassword replaces the stored hash for email.
func (s *Store) SetPassword(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// CreateUser registers a credential with an unusable random password. The
// account becomes usable once the password-setup flow replaces it.
func (s *Store) CreateUser(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(randomSecret()), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	now := time.Now().UTC()
	cred := &domain.Credential{
		ID:           newCredentialID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, cred); err != nil {
		return "", err
	}
	return cred.ID, nil
}

// DeleteUser removes a credential record. The profile row is the caller's
// responsibility.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListUsers returns all credential records, hashes excluded by json tags.
func (s *Store) ListUsers(ctx context.Context) ([]domain.Credential, error) {
	return s.repo.List(ctx)
}

// notify fans the event out on a separate goroutine so the store's locks
// are never held across subscriber code.
func (s *Store) notify(ev ports.SessionEvent) {
	s.mu.Lock()
	fns := make([]func(ports.SessionEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	go func() {
		for _, fn := range fns {
			fn(ev)
		}
	}()
}

func randomSecret() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("unset-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func newCredentialID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("cred-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
