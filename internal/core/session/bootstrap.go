package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// Bootstrapper populates Session State at startup without user action:
// restore a persisted guest, subscribe to credential-store events, then
// resolve any already-live session. Run is called once.
type Bootstrapper struct {
	state    *State
	creds    ports.CredentialStore
	resolver ports.ProfileResolver
	storage  ports.SessionStorage
	log      zerolog.Logger
}

// NewBootstrapper wires a Bootstrapper. The resolver is the profile
// resolution helper shared with the login flows.
func NewBootstrapper(
	state *State,
	creds ports.CredentialStore,
	resolver ports.ProfileResolver,
	storage ports.SessionStorage,
	log zerolog.Logger,
) *Bootstrapper {
	return &Bootstrapper{state: state, creds: creds, resolver: resolver, storage: storage, log: log}
}

// Run executes the bootstrap sequence and returns the unsubscribe function
// for the credential-store subscription. IsInitializing is lowered after the
// current-session check settles, success or failure.
func (b *Bootstrapper) Run(ctx context.Context) func() {
	defer b.state.FinishInitializing()

	// 1. Restore a persisted guest session. Staff and admin users found
	// here are not restored: those must be re-validated against the
	// credential store, never trusted from storage alone.
	if u, err := b.storage.Load(ctx); err != nil {
		b.log.Warn().Err(err).Msg("bootstrap: persisted user unreadable")
	} else if u != nil {
		if u.Role == domain.RoleGuest {
			b.state.UpdateAuthState(Partial{User: u, IsAuthenticated: Bool(true)})
			b.log.Info().Str("hotel_id", u.HotelID).Str("room", u.RoomNumber).Msg("bootstrap: guest session restored")
		} else {
			b.log.Debug().Str("role", string(u.Role)).Msg("bootstrap: ignoring persisted non-guest user")
		}
	}

	// 2. Subscribe before checking the current session so an event firing
	// between the check and the subscription is not lost. Profile
	// resolution is moved off the notifier goroutine: the store's
	// callback machinery must never wait on a database query.
	unsubscribe := b.creds.OnSessionChange(func(ev ports.SessionEvent) {
		switch ev.Kind {
		case ports.SessionSignedIn:
			sess := ev.Session
			go b.resolveSession(ctx, sess)
		case ports.SessionSignedOut:
			go b.handleSignedOut(ctx)
		}
	})

	// 3. An already-valid session (process restart with a live token).
	sess, err := b.creds.GetSession(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("bootstrap: session lookup failed")
		return unsubscribe
	}
	if sess != nil {
		b.resolveSession(ctx, sess)
	}
	return unsubscribe
}

// resolveSession turns a credential-store session into a fully populated
// state update. A missing profile row fails open to "logged out", never to
// a partial session. The generation is captured before the profile query so
// a resolution that settles after a logout is discarded instead of
// re-authenticating the cleared state.
func (b *Bootstrapper) resolveSession(ctx context.Context, sess *domain.Session) {
	gen := b.state.Generation()

	user, err := b.resolver.Resolve(ctx, sess.Email)
	if err != nil {
		b.log.Error().Err(err).Str("email", sess.Email).Msg("bootstrap: profile resolution failed")
		return
	}
	if user == nil {
		b.log.Warn().Str("email", sess.Email).Msg("bootstrap: no profile for session, staying logged out")
		return
	}

	if !b.state.UpdateUserIfCurrent(ctx, gen, user) {
		b.log.Debug().Str("email", sess.Email).Msg("bootstrap: discarding session resolved after logout")
		return
	}
	b.state.UpdateAuthState(Partial{Session: sess})
	b.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("bootstrap: session resolved")
}

func (b *Bootstrapper) handleSignedOut(ctx context.Context) {
	b.state.UpdateAuthState(Partial{
		ClearUser:       true,
		ClearSession:    true,
		IsAuthenticated: Bool(false),
	})
	if err := b.storage.Clear(ctx); err != nil {
		b.log.Warn().Err(err).Msg("bootstrap: failed to clear persisted user")
	}
}
