package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// userKey is the single durable slot the session core writes; the
// bootstrapper is its only reader.
const userKey = "user"

// SessionStorage implements the persisted user slot on Redis.
type SessionStorage struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSessionStorage(client *redis.Client, log zerolog.Logger) *SessionStorage {
	return &SessionStorage{client: client, log: log}
}

// Load returns the persisted user, or (nil, nil) when the key is absent.
// An unparseable value is dropped and treated as absent: a corrupt slot
// must not block startup.
func (s *SessionStorage) Load(ctx context.Context) (*domain.User, error) {
	raw, err := s.client.Get(ctx, userKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load persisted user: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn().Err(err).Msg("discarding unparseable persisted user")
		_ = s.client.Del(ctx, userKey).Err()
		return nil, nil
	}
	return &u, nil
}

func (s *SessionStorage) Save(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode persisted user: %w", err)
	}
	if err := s.client.Set(ctx, userKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save persisted user: %w", err)
	}
	return nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, userKey).Err(); err != nil {
		return fmt.Errorf("clear persisted user: %w", err)
	}
	return nil
}
