package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/servicetest"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testPassword   = "password123"
)

func setupAuth(t *testing.T) (*servicetest.Env, auth.AuthService) {
	// Tokens are checked against the wall clock by jwtauth.
	env := servicetest.New(t, time.Now())

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)

	for _, id := range []string{"E1", "E2"} {
		_, err := env.Store.Employees().Create(context.Background(), employee.Employee{
			ID:           id,
			Name:         id,
			PasswordHash: &hash,
			Role:         user.RoleEmployee,
			Status:       employee.StatusActive,
		})
		require.NoError(t, err)
	}
	require.NoError(t, env.Store.Employees().Deactivate(context.Background(), "E2", time.Now().Add(-time.Hour)))

	svc := NewAuthService(env.Store, env.Store.Employees(), env.Store.Tokens(), jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp), env.Clock)
	return env, svc
}

func TestLogin(t *testing.T) {
	_, svc := setupAuth(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{EmployeeID: "E1", Password: testPassword}, auth.SessionTrackingRequest{UserAgent: "test"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{EmployeeID: "E1", Password: "nope-nope"}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{EmployeeID: "ghost", Password: testPassword}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive employee", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{EmployeeID: "E2", Password: testPassword}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{}, auth.SessionTrackingRequest{})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})
}

func TestRefreshToken(t *testing.T) {
	_, svc := setupAuth(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{EmployeeID: "E1", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		resp, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("revoked after logout", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, login.RefreshToken))
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	})
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	_, svc := setupAuth(t)
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}
