package ports

import (
	"context"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// SessionEventKind discriminates credential-store session notifications.
type SessionEventKind int

const (
	SessionSignedIn SessionEventKind = iota
	SessionSignedOut
)

// SessionEvent is delivered to OnSessionChange subscribers. Session is nil
// for SessionSignedOut.
type SessionEvent struct {
	Kind    SessionEventKind
	Session *domain.Session
}

// CredentialStore handles password verification and session issuance for
// staff and admin accounts. Guest sessions never go through it.
type CredentialStore interface {
	// SignInWithPassword verifies the pair and issues a session.
	// Returns domain.ErrInvalidCredentials on mismatch or unknown email.
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	// SignOut drops the current session. Idempotent.
	SignOut(ctx context.Context) error
	// GetSession returns the live session, or nil when none exists.
	GetSession(ctx context.Context) (*domain.Session, error)
	// OnSessionChange registers a callback for sign-in/sign-out events and
	// returns an unsubscribe function. Callbacks must not block and must
	// not call back into the store; schedule real work elsewhere.
	OnSessionChange(fn func(SessionEvent)) (unsubscribe func())
	// SetPassword replaces the stored password hash for email.
	SetPassword(ctx context.Context, email, password string) error
}

// CredentialAdmin exposes the privileged operations previously hosted as
// serverless functions. Only admin-gated handlers may use it.
type CredentialAdmin interface {
	// CreateUser registers a credential with an unusable random password
	// and returns the new user id. Fails with domain.ErrUserExists when
	// the email is taken.
	CreateUser(ctx context.Context, email string) (string, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]domain.Credential, error)
}

// CredentialRepository defines persistence for credential records.
type CredentialRepository interface {
	// FindByEmail returns domain.ErrInvalidCredentials when no record
	// matches; callers cannot distinguish a missing account from a bad
	// password.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	// Create fails with domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, c *domain.Credential) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Credential, error)
}

// TokenIssuer signs and verifies the tokens the credential store hands out.
// Guest logins use Sign directly since no credential is involved.
type TokenIssuer interface {
	// Sign issues a bearer token carrying the user's session claims.
	Sign(user *domain.User) (*domain.Session, error)
	// SignSetup issues a short-lived single-purpose password-setup token.
	SignSetup(email string) (string, error)
	// VerifySetup validates a setup token and returns the email it was
	// issued for, or domain.ErrInvalidSetupToken.
	VerifySetup(token string) (string, error)
}
