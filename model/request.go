// file: model/request.go

package model

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest defines the payload for minting a new token pair.
// Only a refresh-kind token is accepted here.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest carries the refresh token to revoke alongside the bearer
// access token taken from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
