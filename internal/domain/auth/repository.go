package auth

import "context"

// TokenRepository persists refresh tokens by hash.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	// IsRefreshTokenRevoked returns the owner of token and whether it is
	// revoked or expired. ErrRefreshTokenUnknown when it was never issued.
	IsRefreshTokenRevoked(ctx context.Context, token string) (employeeID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
