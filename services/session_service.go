package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// SessionService tracks revoked session tokens in Redis. A nil client
// disables revocation; tokens then simply expire on their own.
type SessionService struct {
	rdb *redis.Client
}

func NewSessionService(rdb *redis.Client) *SessionService {
	return &SessionService{rdb: rdb}
}

// Revoke marks a session id as logged out until the token would expire anyway
func (s *SessionService) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether a session id has been logged out
func (s *SessionService) IsRevoked(ctx context.Context, jti string) bool {
	if s.rdb == nil || jti == "" {
		return false
	}
	_, err := s.rdb.Get(ctx, revokedKeyPrefix+jti).Result()
	return err == nil
}
