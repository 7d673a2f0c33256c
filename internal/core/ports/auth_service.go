package ports

import (
	"context"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// StaffLoginInput carries the staff/admin login form. Both fields required.
type StaffLoginInput struct {
	Email    string
	Password string
}

// GuestLoginInput carries the guest login form.
type GuestLoginInput struct {
	HotelCode string
	RoomCode  string
}

// PasswordSetupInput completes the needs-password-setup flow.
type PasswordSetupInput struct {
	Email    string
	Token    string
	Password string
}

// AuthService defines the login use cases. Every flow terminates in a
// domain.LoginResult; errors never escape as bare returns from login calls.
type AuthService interface {
	StaffLogin(ctx context.Context, in StaffLoginInput) domain.LoginResult
	GuestLogin(ctx context.Context, in GuestLoginInput) domain.LoginResult
	CompletePasswordSetup(ctx context.Context, in PasswordSetupInput) domain.LoginResult
	// Logout clears session state and persisted storage. Idempotent.
	Logout(ctx context.Context) error
}

// ProfileResolver turns an authenticated email into a session User.
// Returns (nil, nil) when no profile row matches, so callers can
// distinguish "no row" from a query failure.
type ProfileResolver interface {
	Resolve(ctx context.Context, email string) (*domain.User, error)
}
