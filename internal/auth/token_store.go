package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blocklistPrefix = "auth:blocked:"

// TokenStore keeps revoked token IDs in Redis until they would have
// expired on their own. Logout revokes, Protect consults.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Block revokes a token ID until expiresAt.
func (s *TokenStore) Block(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, blocklistPrefix+tokenID, "1", ttl).Err()
}

// IsBlocked reports whether a token ID has been revoked.
func (s *TokenStore) IsBlocked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, blocklistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
