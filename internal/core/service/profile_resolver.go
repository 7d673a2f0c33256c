package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// ProfileResolver fetches the profile row matching an authenticated email
// and produces a session User. Stateless; shared by the login flow and the
// session bootstrapper.
type ProfileResolver struct {
	profiles ports.ProfileRepository
}

func NewProfileResolver(profiles ports.ProfileRepository) *ProfileResolver {
	return &ProfileResolver{profiles: profiles}
}

// Resolve returns (nil, nil) when no profile row matches, so callers can
// fail open to "logged out" instead of treating a missing row as a query
// error.
func (r *ProfileResolver) Resolve(ctx context.Context, email string) (*domain.User, error) {
	profile, err := r.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve profile: %w", err)
	}

	user := profile.User()
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}
