package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")

	token, expiresAt, err := svc.GenerateAccessToken("E1", user.RoleManager)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "E1", claims["employee_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateRefreshToken_Type(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")

	token, _, err := svc.GenerateRefreshToken("E1")
	require.NoError(t, err)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims["type"])
	_, hasRole := claims["role"]
	assert.False(t, hasRole)
}

func TestInvalidExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon", "24h")
	_, _, err := svc.GenerateAccessToken("E1", user.RoleEmployee)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")
	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}
