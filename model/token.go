// file: model/token.go

package model

import "time"

// IssuedToken is a signed token string together with its absolute expiry.
type IssuedToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	Access  IssuedToken `json:"access"`
	Refresh IssuedToken `json:"refresh"`
}
