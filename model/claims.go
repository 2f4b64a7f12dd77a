package model

import "github.com/golang-jwt/jwt/v5"

// TokenKind distinguishes the two credentials issued at login. The kind is
// embedded in the signed claims, so it cannot change after issuance.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// AppClaims is the fixed claim structure carried by every token.
// All fields are explicitly typed; nothing is read out of an untyped map.
type AppClaims struct {
	UserID   int       `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	Kind     TokenKind `json:"kind"`
	jwt.RegisteredClaims
}
