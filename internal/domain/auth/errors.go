package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid employee id or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrRefreshTokenUnknown = errors.New("refresh token not found")
)
