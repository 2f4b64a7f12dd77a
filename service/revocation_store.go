// file: service/revocation_store.go

package service

import (
	"context"
	"fmt"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// IRevocationStore is consulted on every token verification and written on
// logout, ban, and credential rotation.
type IRevocationStore interface {
	Revoke(ctx context.Context, token string, kind model.TokenKind, remainingTTL time.Duration) error
	IsRevoked(ctx context.Context, token string, kind model.TokenKind) (bool, error)
}

// RevocationStore keeps revoked tokens in Redis. Each entry carries the
// remaining lifetime of the token as its TTL, so the store never outgrows the
// set of tokens that are still otherwise valid.
type RevocationStore struct {
	cache ICacheClient
}

func NewRevocationStore(cache ICacheClient) *RevocationStore {
	return &RevocationStore{cache: cache}
}

func revocationKey(kind model.TokenKind, token string) string {
	return fmt.Sprintf("token:blacklist:%s:%s", kind, token)
}

// Revoke marks the token invalid for the rest of its natural lifetime.
// A token that already expired needs no entry.
func (s *RevocationStore) Revoke(ctx context.Context, token string, kind model.TokenKind, remainingTTL time.Duration) error {
	if remainingTTL <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revocationKey(kind, token), "1", remainingTTL).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to write revocation entry")
		return fmt.Errorf("failed to write revocation entry: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token is present in the store.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string, kind model.TokenKind) (bool, error) {
	err := s.cache.Get(ctx, revocationKey(kind, token)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Log.WithError(err).Error("Failed to read revocation entry")
		return false, fmt.Errorf("failed to read revocation entry: %w", err)
	}
	return true, nil
}
