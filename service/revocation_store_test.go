// file: service/revocation_store_test.go

package service

import (
	"context"
	"go-recruit-api/model"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockCacheClient is a mock implementation of ICacheClient.
type mockCacheClient struct{ mock.Mock }

func (m *mockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func TestRevocationStore(t *testing.T) {
	ctx := context.Background()

	t.Run("revoke writes entry with remaining ttl", func(t *testing.T) {
		cache := new(mockCacheClient)
		store := NewRevocationStore(cache)

		ttl := 10 * time.Minute
		cache.On("Set", mock.Anything, "token:blacklist:access:some-token", "1", ttl).
			Return(redis.NewStatusResult("OK", nil)).Once()

		err := store.Revoke(ctx, "some-token", model.TokenKindAccess, ttl)
		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("revoke skips tokens that already expired", func(t *testing.T) {
		cache := new(mockCacheClient)
		store := NewRevocationStore(cache)

		err := store.Revoke(ctx, "some-token", model.TokenKindAccess, -1*time.Second)
		assert.NoError(t, err)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("present entry reports revoked", func(t *testing.T) {
		cache := new(mockCacheClient)
		store := NewRevocationStore(cache)

		cache.On("Get", mock.Anything, "token:blacklist:refresh:some-token").
			Return(redis.NewStringResult("1", nil)).Once()

		revoked, err := store.IsRevoked(ctx, "some-token", model.TokenKindRefresh)
		assert.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("absent entry reports not revoked", func(t *testing.T) {
		cache := new(mockCacheClient)
		store := NewRevocationStore(cache)

		cache.On("Get", mock.Anything, "token:blacklist:access:some-token").
			Return(redis.NewStringResult("", redis.Nil)).Once()

		revoked, err := store.IsRevoked(ctx, "some-token", model.TokenKindAccess)
		assert.NoError(t, err)
		assert.False(t, revoked)
	})
}
