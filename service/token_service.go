// file: service/token_service.go

package service

import (
	"context"
	"errors"
	"fmt"
	"go-recruit-api/common"
	"go-recruit-api/config"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ITokenService issues and verifies the two credential kinds. Verify has no
// side effects and Issue persists nothing; revocation state lives entirely in
// the revocation store.
type ITokenService interface {
	Issue(userID int, username string, role model.Role, kind model.TokenKind) (model.IssuedToken, error)
	Verify(ctx context.Context, token string) (*model.AppClaims, error)
	RequireKind(claims *model.AppClaims, kind model.TokenKind) error
}

// TokenService signs HS256 tokens with the configured secret. The token kind
// is embedded in the signed claims, so it is immutable once issued.
type TokenService struct {
	revocations IRevocationStore
}

func NewTokenService(revocations IRevocationStore) *TokenService {
	return &TokenService{revocations: revocations}
}

func getJwtKey() []byte {
	return []byte(config.AppConfig.JWT.SecretKey)
}

func ttlForKind(kind model.TokenKind) time.Duration {
	if kind == model.TokenKindRefresh {
		return config.AppConfig.JWT.RefreshTokenTTL
	}
	return config.AppConfig.JWT.AccessTokenTTL
}

// Issue signs a token of the given kind with an absolute expiry strictly in
// the future. It always succeeds for well-formed claims.
func (s *TokenService) Issue(userID int, username string, role model.Role, kind model.TokenKind) (model.IssuedToken, error) {
	now := time.Now()
	expiresAt := now.Add(ttlForKind(kind))

	claims := &model.AppClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getJwtKey())
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign token")
		return model.IssuedToken{}, fmt.Errorf("failed to sign token string: %w", err)
	}

	return model.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the token in a fixed order: structure and signature first,
// then expiry, then revocation. The distinct sentinel errors let callers tell
// a stale token apart from an actively invalidated one.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return getJwtKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil && token.Valid:
		// fall through to the revocation check
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, common.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, common.ErrTokenExpired
	default:
		return nil, common.ErrTokenMalformed
	}

	revoked, err := s.revocations.IsRevoked(ctx, tokenString, claims.Kind)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	return claims, nil
}

// RequireKind rejects an access token where a refresh token is required and
// vice versa. This is what keeps a refresh credential from being used as a
// bearer credential on ordinary endpoints.
func (s *TokenService) RequireKind(claims *model.AppClaims, kind model.TokenKind) error {
	if claims.Kind != kind {
		return common.ErrWrongTokenKind
	}
	return nil
}
