// handler/auth_middleware_test.go
package handler_test

import (
	"context"
	"go-recruit-api/config"
	"go-recruit-api/handler"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"go-recruit-api/service"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	config.AppConfig.JWT.SecretKey = "middleware-test-secret"
	config.AppConfig.JWT.AccessTokenTTL = 15 * time.Minute
	config.AppConfig.JWT.RefreshTokenTTL = 24 * time.Hour
	os.Exit(m.Run())
}

type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) Revoke(ctx context.Context, token string, kind model.TokenKind, remainingTTL time.Duration) error {
	args := m.Called(ctx, token, kind, remainingTTL)
	return args.Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, token string, kind model.TokenKind) (bool, error) {
	args := m.Called(ctx, token, kind)
	return args.Bool(0), args.Error(1)
}

// nextSpy records whether the middleware let the request through and what it
// put on the context.
type nextSpy struct {
	called bool
	userID interface{}
	role   interface{}
	raw    interface{}
}

func (s *nextSpy) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.called = true
		s.userID = r.Context().Value(handler.UserIDKey)
		s.role = r.Context().Value(handler.UserRoleKey)
		s.raw = r.Context().Value(handler.RawTokenKey)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	revocations := new(MockRevocationStore)
	revocations.On("IsRevoked", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	tokens := service.NewTokenService(revocations)

	t.Run("valid access token passes and populates context", func(t *testing.T) {
		issued, err := tokens.Issue(5, "jane", model.RoleSeeker, model.TokenKindAccess)
		assert.NoError(t, err)

		spy := &nextSpy{}
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issued.Value)

		handler.AuthMiddleware(tokens)(spy.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, spy.called)
		assert.Equal(t, 5, spy.userID)
		assert.Equal(t, model.RoleSeeker, spy.role)
		assert.Equal(t, issued.Value, spy.raw)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		spy := &nextSpy{}
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)

		handler.AuthMiddleware(tokens)(spy.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, spy.called)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		spy := &nextSpy{}
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")

		handler.AuthMiddleware(tokens)(spy.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, spy.called)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		spy := &nextSpy{}
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		handler.AuthMiddleware(tokens)(spy.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, spy.called)
	})

	t.Run("refresh token is rejected on ordinary endpoints", func(t *testing.T) {
		issued, err := tokens.Issue(5, "jane", model.RoleSeeker, model.TokenKindRefresh)
		assert.NoError(t, err)

		spy := &nextSpy{}
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issued.Value)

		handler.AuthMiddleware(tokens)(spy.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "refresh token")
		assert.False(t, spy.called)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		revokedStore := new(MockRevocationStore)
		revokedStore.On("IsRevoked", mock.Anything, mock.Anything, model.TokenKindAccess).Return(true, nil)
		revokedTokens := service.NewTokenService(revokedStore)

		issued, err := revokedTokens.Issue(5, "jane", model.RoleSeeker, model.TokenKindAccess)
		assert.NoError(t, err)

		spy := &nextSpy{}
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issued.Value)

		handler.AuthMiddleware(revokedTokens)(spy.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "revoked")
		assert.False(t, spy.called)
	})
}

func TestRequireRole(t *testing.T) {
	withRole := func(role interface{}) *http.Request {
		req, _ := http.NewRequest("GET", "/protected", nil)
		if role != nil {
			req = req.WithContext(context.WithValue(req.Context(), handler.UserRoleKey, role))
		}
		return req
	}

	t.Run("allowed role passes", func(t *testing.T) {
		spy := &nextSpy{}
		rr := httptest.NewRecorder()

		handler.RequireRole(model.RoleHR, model.RoleAdmin)(spy.handler()).ServeHTTP(rr, withRole(model.RoleHR))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, spy.called)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		spy := &nextSpy{}
		rr := httptest.NewRecorder()

		handler.RequireRole(model.RoleHR)(spy.handler()).ServeHTTP(rr, withRole(model.RoleSeeker))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, spy.called)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		spy := &nextSpy{}
		rr := httptest.NewRecorder()

		handler.RequireRole(model.RoleHR)(spy.handler()).ServeHTTP(rr, withRole(nil))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, spy.called)
	})
}
