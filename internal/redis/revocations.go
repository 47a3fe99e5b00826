package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationStore holds the token IDs invalidated by sign-out. Entries
// expire together with the token they revoke, so the set stays bounded.
type RevocationStore struct {
	client *goredis.Client
}

func NewRevocationStore(client *goredis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks a token ID as signed out for the remaining token lifetime.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token already expired
	}
	return s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been signed out. A Redis error
// reads as not revoked; the token's own expiry still bounds the exposure.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	return err == nil && n > 0
}
