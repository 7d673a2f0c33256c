package domain

import "errors"

var (
	// ErrProfileNotFound: no profile row matches the given email or id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidCredentials: the credential store rejected the password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrIncompleteProfile: a profile row is missing expected columns.
	ErrIncompleteProfile = errors.New("incomplete profile")
	// ErrInvalidSetupToken: the password-setup token is missing, expired,
	// or does not match the email.
	ErrInvalidSetupToken = errors.New("invalid password setup token")
	// ErrLoginSuperseded: the credentials were valid, but a logout landed
	// while the login was in flight and its completion was discarded.
	ErrLoginSuperseded = errors.New("login superseded by logout")

	ErrUserExists = errors.New("user already exists")
	ErrForbidden  = errors.New("access forbidden")

	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomExists     = errors.New("room already exists")
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrInvalidTransition: a room or ticket status change violates the
	// lifecycle state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)
