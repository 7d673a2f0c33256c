package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/innstack/hotel-ops/internal/core/ports"
)

const mailDedupTTL = time.Hour

// MailDedup suppresses repeated sends of the same email within a TTL.
// Key format: mail:<kind>:<recipient>
type MailDedup struct {
	client *redis.Client
}

func NewMailDedup(client *redis.Client) *MailDedup {
	return &MailDedup{client: client}
}

// IsDuplicate reports whether an email of this kind was recently sent to
// the recipient.
func (d *MailDedup) IsDuplicate(ctx context.Context, kind ports.MailKind, to string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(kind, to)).Result()
	if err != nil {
		return false, fmt.Errorf("mail dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the send (expires after mailDedupTTL).
func (d *MailDedup) Mark(ctx context.Context, kind ports.MailKind, to string) error {
	return d.client.Set(ctx, d.key(kind, to), "1", mailDedupTTL).Err()
}

func (d *MailDedup) key(kind ports.MailKind, to string) string {
	return fmt.Sprintf("mail:%s:%s", kind, to)
}
