package domain

import "time"

// Session wraps the credential-store session token alongside the identity it
// was issued for. The token itself is opaque to everything but the issuer
// and the HTTP auth middleware.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// LoginOutcome tags the three terminal states of a login attempt.
type LoginOutcome int

const (
	// LoginAuthenticated: a session now exists.
	LoginAuthenticated LoginOutcome = iota
	// LoginNeedsPasswordSetup: credentials were valid but the account must
	// set its password before a session is established.
	LoginNeedsPasswordSetup
	// LoginFailed: the attempt failed; Err carries the cause.
	LoginFailed
)

// LoginResult is the tagged union returned by every login flow. Callers
// switch on Outcome instead of probing booleans.
type LoginResult struct {
	Outcome LoginOutcome
	User    *User
	Session *Session
	// SetupEmail is populated only for LoginNeedsPasswordSetup, so the
	// caller can pass the email through to the setup screen.
	SetupEmail string
	Err        error
}

// Authenticated builds a successful result.
func Authenticated(u *User, s *Session) LoginResult {
	return LoginResult{Outcome: LoginAuthenticated, User: u, Session: s}
}

// NeedsPasswordSetup builds the intermediate credentials-valid result.
func NeedsPasswordSetup(email string) LoginResult {
	return LoginResult{Outcome: LoginNeedsPasswordSetup, SetupEmail: email}
}

// LoginFailure builds a failed result.
func LoginFailure(err error) LoginResult {
	return LoginResult{Outcome: LoginFailed, Err: err}
}
