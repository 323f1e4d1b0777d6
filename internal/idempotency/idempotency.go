// Package idempotency guards order creation against duplicate submission.
// A client-side retry after an ambiguous timeout must not create two
// gateway orders for one application.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store claims idempotency keys in redis with a TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Key derives the redis key for an application's create attempt.
func (s *Store) Key(applicationID uint64) string {
	return fmt.Sprintf("qrpay:create:%d", applicationID)
}

// Claim atomically claims the key. It returns the claim token and false
// when the key is already held, meaning a create for this application is
// in flight or recently completed.
func (s *Store) Claim(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Release frees the key, e.g. after a failed create that produced no
// remote order. A key left behind expires with its TTL.
func (s *Store) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
