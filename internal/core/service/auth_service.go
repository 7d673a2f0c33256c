package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
	"github.com/innstack/hotel-ops/internal/core/session"
)

// AuthService implements the staff and guest login flows, logout, and the
// password-setup completion. All flows terminate in a domain.LoginResult
// and write Session State through its two mutators only.
type AuthService struct {
	profiles ports.ProfileRepository
	creds    ports.CredentialStore
	resolver ports.ProfileResolver
	tokens   ports.TokenIssuer
	state    *session.State
	rooms    ports.RoomRepository
	// guestRoomCheck enables inventory validation of guest logins. Off by
	// default: the primary guest path accepts any hotel/room pair.
	guestRoomCheck bool
	log            zerolog.Logger
}

// AuthServiceOption configures optional behaviour of the AuthService.
type AuthServiceOption func(*AuthService)

// WithGuestRoomCheck makes GuestLogin verify the room exists in the hotel's
// inventory before establishing a session.
func WithGuestRoomCheck(rooms ports.RoomRepository) AuthServiceOption {
	return func(s *AuthService) {
		s.rooms = rooms
		s.guestRoomCheck = true
	}
}

func NewAuthService(
	profiles ports.ProfileRepository,
	creds ports.CredentialStore,
	resolver ports.ProfileResolver,
	tokens ports.TokenIssuer,
	state *session.State,
	log zerolog.Logger,
	opts ...AuthServiceOption,
) *AuthService {
	s := &AuthService{
		profiles: profiles,
		creds:    creds,
		resolver: resolver,
		tokens:   tokens,
		state:    state,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StaffLogin authenticates a staff or admin account: profile lookup,
// credential check, profile re-fetch, then either the password-setup signal
// or the UpdateUser transition.
func (s *AuthService) StaffLogin(ctx context.Context, in ports.StaffLoginInput) domain.LoginResult {
	if in.Email == "" || in.Password == "" {
		return domain.LoginFailure(domain.ErrInvalidCredentials)
	}

	gen := s.state.Generation()

	// 1. The profile row scopes the account to its hotel before any
	// credential work happens.
	if _, err := s.profiles.FindByEmail(ctx, in.Email); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.LoginFailure(domain.ErrProfileNotFound)
		}
		return domain.LoginFailure(fmt.Errorf("staff login: %w", err))
	}

	// 2. Credential check.
	sess, err := s.creds.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		return domain.LoginFailure(err)
	}

	// 3. Re-fetch the full row now that the identity is proven.
	profile, err := s.profiles.FindByEmail(ctx, in.Email)
	if err != nil {
		return domain.LoginFailure(fmt.Errorf("staff login: %w", err))
	}

	// 4. Accounts pending password setup never reach an authenticated
	// session; the credential-store session is dropped again so state
	// stays clean for a repeated attempt.
	if profile.NeedsPasswordSetup {
		if err := s.creds.SignOut(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to drop pre-setup session")
		}
		s.log.Info().Str("email", in.Email).Msg("login deferred: password setup required")
		return domain.NeedsPasswordSetup(in.Email)
	}

	user := profile.User()
	if err := user.Validate(); err != nil {
		return domain.LoginFailure(err)
	}

	// The credential-store session only proves identity; the bearer token
	// handed to the client carries the full profile claims so the HTTP
	// layer needs no profile lookup per request.
	apiSess, err := s.tokens.Sign(user)
	if err != nil {
		return domain.LoginFailure(fmt.Errorf("staff login: %w", err))
	}

	// 5. Complete the transition unless a logout raced past us.
	if !s.state.UpdateUserIfCurrent(ctx, gen, user) {
		return domain.LoginFailure(domain.ErrLoginSuperseded)
	}
	s.state.UpdateAuthState(session.Partial{Session: sess})

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Str("hotel_id", user.HotelID).Msg("staff login")
	return domain.Authenticated(user, apiSess)
}

// GuestLogin synthesizes a guest session from a hotel and room code. No
// credential store involved; the session exists only in state and storage.
func (s *AuthService) GuestLogin(ctx context.Context, in ports.GuestLoginInput) domain.LoginResult {
	if in.HotelCode == "" || in.RoomCode == "" {
		return domain.LoginFailure(domain.ErrInvalidCredentials)
	}

	if s.guestRoomCheck {
		if _, err := s.rooms.FindByNumber(ctx, in.HotelCode, in.RoomCode); err != nil {
			return domain.LoginFailure(err)
		}
	}

	gen := s.state.Generation()
	user := &domain.User{
		ID:         fmt.Sprintf("guest-%d", time.Now().UnixMilli()),
		Name:       fmt.Sprintf("Room %s Guest", in.RoomCode),
		Email:      fmt.Sprintf("guest-%s-%s@example.com", in.HotelCode, in.RoomCode),
		Role:       domain.RoleGuest,
		HotelID:    in.HotelCode,
		RoomNumber: in.RoomCode,
	}

	sess, err := s.tokens.Sign(user)
	if err != nil {
		return domain.LoginFailure(fmt.Errorf("guest login: %w", err))
	}

	if !s.state.UpdateUserIfCurrent(ctx, gen, user) {
		return domain.LoginFailure(domain.ErrLoginSuperseded)
	}
	s.state.UpdateAuthState(session.Partial{Session: sess})

	s.log.Info().Str("hotel_id", in.HotelCode).Str("room", in.RoomCode).Msg("guest login")
	return domain.Authenticated(user, sess)
}

// CompletePasswordSetup verifies the setup token from the email, stores the
// new password, clears the profile flag, and finishes with a normal login.
func (s *AuthService) CompletePasswordSetup(ctx context.Context, in ports.PasswordSetupInput) domain.LoginResult {
	if in.Email == "" || in.Token == "" || in.Password == "" {
		return domain.LoginFailure(domain.ErrInvalidSetupToken)
	}

	email, err := s.tokens.VerifySetup(in.Token)
	if err != nil || email != in.Email {
		return domain.LoginFailure(domain.ErrInvalidSetupToken)
	}

	profile, err := s.profiles.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.LoginFailure(domain.ErrProfileNotFound)
		}
		return domain.LoginFailure(fmt.Errorf("password setup: %w", err))
	}

	if err := s.creds.SetPassword(ctx, in.Email, in.Password); err != nil {
		return domain.LoginFailure(fmt.Errorf("password setup: %w", err))
	}
	if err := s.profiles.SetNeedsPasswordSetup(ctx, profile.ID, false); err != nil {
		return domain.LoginFailure(fmt.Errorf("password setup: %w", err))
	}

	s.log.Info().Str("email", in.Email).Msg("password setup completed")
	return s.StaffLogin(ctx, ports.StaffLoginInput{Email: in.Email, Password: in.Password})
}

// Logout clears in-memory state, deletes the persisted user, and drops any
// credential-store session. Calling it when already logged out is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	s.state.Clear(ctx)
	if err := s.creds.SignOut(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
