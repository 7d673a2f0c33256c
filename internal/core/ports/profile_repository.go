package ports

import (
	"context"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// ProfileRepository defines persistence for the tenant-scoped profile rows.
type ProfileRepository interface {
	// FindByEmail returns domain.ErrProfileNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) error
	// SetNeedsPasswordSetup flips the needs_password_setup flag.
	SetNeedsPasswordSetup(ctx context.Context, id string, needs bool) error
}
