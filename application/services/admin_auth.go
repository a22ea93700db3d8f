package services

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidPassword is returned when the admin secret does not match
var ErrInvalidPassword = errors.New("invalid password")

// AdminAuthenticator compares input against the shared admin secret.
// It only gates the admin views; there is no session or lockout.
type AdminAuthenticator struct {
	secret []byte
}

// NewAdminAuthenticator creates a new admin authenticator
func NewAdminAuthenticator(secret string) *AdminAuthenticator {
	return &AdminAuthenticator{secret: []byte(secret)}
}

// Authenticate returns ErrInvalidPassword unless input equals the secret.
// An empty secret never matches.
func (a *AdminAuthenticator) Authenticate(input string) error {
	if len(a.secret) == 0 {
		return ErrInvalidPassword
	}
	if subtle.ConstantTimeCompare([]byte(input), a.secret) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
