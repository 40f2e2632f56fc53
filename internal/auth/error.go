package auth

import "errors"

var (
	ErrNoToken        = errors.New("not logged in")
	ErrTokenExpired   = errors.New("access token has expired")
	ErrMissingToken   = errors.New("login response carried no access token")
	ErrEmptyIdentifier = errors.New("email or phone number is required")
)
