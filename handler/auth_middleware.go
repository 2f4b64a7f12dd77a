package handler

import (
	"context"
	"errors"
	"go-recruit-api/common"
	"go-recruit-api/model"
	"go-recruit-api/service"
	"net/http"
	"strings"
)

type contextKey string

const (
	ClaimsKey   contextKey = "claims"
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
	// RawTokenKey keeps the bearer string around so logout can revoke it.
	RawTokenKey contextKey = "rawToken"
)

// AuthMiddleware verifies the bearer token and requires it to be of access
// kind. Verification failures are surfaced to the caller as 401 and never
// retried; a refresh token on an ordinary endpoint is rejected the same way.
func AuthMiddleware(tokens service.ITokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil).Send(w)
				return
			}

			tokenString := headerParts[1]

			claims, err := tokens.Verify(r.Context(), tokenString)
			if err == nil {
				err = tokens.RequireKind(claims, model.TokenKindAccess)
			}
			if err != nil {
				switch {
				case errors.Is(err, common.ErrTokenExpired):
					common.NewAppError(http.StatusUnauthorized, "Token has expired", err).Send(w)
				case errors.Is(err, common.ErrTokenRevoked):
					common.NewAppError(http.StatusUnauthorized, "Token has been revoked", err).Send(w)
				case errors.Is(err, common.ErrWrongTokenKind):
					common.NewAppError(http.StatusUnauthorized, "A refresh token cannot be used here", err).Send(w)
				default:
					common.NewAppError(http.StatusUnauthorized, "Invalid token", err).Send(w)
				}
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			ctx = context.WithValue(ctx, RawTokenKey, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates an operation on the verified token's role field.
// Ordinary function composition, no runtime interception.
func RequireRole(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(UserRoleKey).(model.Role)
			if !ok {
				common.NewAppError(http.StatusForbidden, "Access denied.", nil).Send(w)
				return
			}

			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			common.NewAppError(http.StatusForbidden, "Access denied. Insufficient privileges.", nil).Send(w)
		})
	}
}
