package memory

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
)

type tokenRepo struct{ s *Store }

func hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r tokenRepo) CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tokens[hashToken(token)] = tokenRow{employeeID: employeeID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r tokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.tokens[hashToken(token)]
	if !ok {
		return "", false, auth.ErrRefreshTokenUnknown
	}
	return row.employeeID, row.revoked || !row.expiresAt.After(r.s.now()), nil
}

func (r tokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h := hashToken(token)
	row, ok := r.s.tokens[h]
	if !ok {
		return nil
	}
	row.revoked = true
	r.s.tokens[h] = row
	return nil
}
