package service

import (
	"context"
	"errors"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"go-recruit-api/repository"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ISessionCloser lets the auth service tear down live channels on
// logout-everywhere without depending on the websocket package.
type ISessionCloser interface {
	CloseUser(userID int)
}

// AuthService handles login, token refresh, and logout.
type AuthService struct {
	userRepo    repository.IUserRepository
	tokens      ITokenService
	revocations IRevocationStore
	sessions    ISessionCloser
}

func NewAuthService(userRepo repository.IUserRepository, tokens ITokenService, revocations IRevocationStore, sessions ISessionCloser) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		revocations: revocations,
		sessions:    sessions,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login verifies the credentials and issues a fresh access/refresh pair.
func (s *AuthService) Login(email, password string) (*model.User, model.TokenPair, error) {
	var pair model.TokenPair

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, pair, ErrInvalidCredentials
	}
	if !s.CheckPasswordHash(password, user.Password) {
		return nil, pair, ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(user.ID, user.Username, user.Role, model.TokenKindAccess)
	if err != nil {
		return nil, pair, err
	}
	refresh, err := s.tokens.Issue(user.ID, user.Username, user.Role, model.TokenKindRefresh)
	if err != nil {
		return nil, pair, err
	}

	pair = model.TokenPair{Access: access, Refresh: refresh}
	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return user, pair, nil
}

// Refresh mints a new token pair from a valid refresh token. An access token
// presented here fails with common.ErrWrongTokenKind.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	var pair model.TokenPair

	claims, err := s.tokens.Verify(ctx, refreshToken)
	if err != nil {
		return pair, err
	}
	if err := s.tokens.RequireKind(claims, model.TokenKindRefresh); err != nil {
		return pair, err
	}

	// Rotate: the old refresh token is revoked for its remaining lifetime so
	// a replay fails with Revoked, not Expired.
	if err := s.revocations.Revoke(ctx, refreshToken, model.TokenKindRefresh, time.Until(claims.ExpiresAt.Time)); err != nil {
		return pair, err
	}

	access, err := s.tokens.Issue(claims.UserID, claims.Username, claims.Role, model.TokenKindAccess)
	if err != nil {
		return pair, err
	}
	refresh, err := s.tokens.Issue(claims.UserID, claims.Username, claims.Role, model.TokenKindRefresh)
	if err != nil {
		return pair, err
	}

	pair = model.TokenPair{Access: access, Refresh: refresh}
	logger.Log.WithField("user_id", claims.UserID).Info("Token pair refreshed")
	return pair, nil
}

// Logout revokes the presented tokens for their remaining lifetimes and
// closes every live channel belonging to the user.
func (s *AuthService) Logout(ctx context.Context, claims *model.AppClaims, accessToken, refreshToken string) error {
	if err := s.revocations.Revoke(ctx, accessToken, model.TokenKindAccess, time.Until(claims.ExpiresAt.Time)); err != nil {
		return err
	}

	if refreshToken != "" {
		refreshClaims, err := s.tokens.Verify(ctx, refreshToken)
		if err == nil {
			if err := s.revocations.Revoke(ctx, refreshToken, model.TokenKindRefresh, time.Until(refreshClaims.ExpiresAt.Time)); err != nil {
				return err
			}
		}
	}

	if s.sessions != nil {
		s.sessions.CloseUser(claims.UserID)
	}

	logger.Log.WithField("user_id", claims.UserID).Info("User logged out")
	return nil
}
