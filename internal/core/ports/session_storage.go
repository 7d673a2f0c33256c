package ports

import (
	"context"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// SessionStorage is the durable single-slot user store, the server-side
// equivalent of the persisted "user" key. Written on every successful
// login, read only by the session bootstrapper, deleted on logout.
type SessionStorage interface {
	// Load returns (nil, nil) when no user is persisted or the stored
	// value cannot be parsed; a non-nil error means the store itself is
	// unreachable.
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	// Clear removes the persisted user. Idempotent.
	Clear(ctx context.Context) error
}
