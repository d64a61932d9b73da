package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps a client-supplied Idempotency-Key to the card it
// created. Key format: idem:<owner_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Lookup returns the card id remembered for key, or "" when none.
func (s *IdempotencyStore) Lookup(ctx context.Context, ownerID, key string) (string, error) {
	cardID, err := s.client.Get(ctx, s.key(ownerID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return cardID, nil
}

// Remember records cardID for key unless the key is already taken.
func (s *IdempotencyStore) Remember(ctx context.Context, ownerID, key, cardID string) error {
	if err := s.client.SetNX(ctx, s.key(ownerID, key), cardID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(ownerID, key string) string {
	return fmt.Sprintf("idem:%s:%s", ownerID, key)
}
