package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the link monetization service

// ErrEmailTaken is returned when registering with an email that already exists
var ErrEmailTaken = errors.New("user already exists")

// ErrInvalidCredentials is returned on login with an unknown email or wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAliasTaken is returned when a short code (custom or generated) is already claimed
var ErrAliasTaken = errors.New("custom alias already exists")

// ErrShortCodeNotFound is returned when a short code doesn't exist in the database
var ErrShortCodeNotFound = errors.New("short code not found")

// ErrMissingToken is returned when a protected route is called without a bearer token
var ErrMissingToken = errors.New("no token provided")

// ErrInvalidToken is returned when token verification fails for any reason
var ErrInvalidToken = errors.New("invalid token")

// ErrNotAdmin is returned when a non-admin user calls an admin-only route
var ErrNotAdmin = errors.New("access denied")

// ErrAccountingFailed is returned when click/earnings increments fail
type ErrAccountingFailed struct {
	ShortCode string
	Reason    string
}

func (e ErrAccountingFailed) Error() string {
	return fmt.Sprintf("failed to record accounting for link %s: %s", e.ShortCode, e.Reason)
}
