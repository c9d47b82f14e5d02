package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
)

func TestLoginHandler(t *testing.T) {
	srv := newTestServer(t)
	srv.addLoginEmployee(t, "E1", user.RoleEmployee, "bar")

	t.Run("valid credentials", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"employee_id": "E1",
			"password":    handlerTestPassword,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, decodeEnvelope(t, rec).Success)

		var refreshCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "refresh_token" {
				refreshCookie = c
			}
		}
		require.NotNil(t, refreshCookie)
		assert.True(t, refreshCookie.HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"employee_id": "E1",
			"password":    "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "employee_id")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", "not-an-object")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedRoutes(t *testing.T) {
	srv := newTestServer(t)
	srv.addLoginEmployee(t, "A1", user.RoleAdmin)
	srv.addLoginEmployee(t, "M1", user.RoleManager, "bar")
	srv.addLoginEmployee(t, "E1", user.RoleEmployee, "bar")

	admin := srv.login(t, "A1")
	manager := srv.login(t, "M1")
	staff := srv.login(t, "E1")

	t.Run("missing token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/shifts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/shifts", "not.a.jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("employee can view shifts", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/shifts", staff, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee cannot list employees", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/employees", staff, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager cannot manage shifts", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/shifts", manager, map[string]string{
			"code": "F", "name": "Frueh", "start_time": "06:00", "end_time": "14:00",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin creates shift", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/shifts", admin, map[string]string{
			"code": "N", "name": "Nacht", "start_time": "22:00", "end_time": "06:00",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"duration_hours":8`)

		rec = srv.do(t, http.MethodGet, "/api/v1/shifts/N", staff, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("duplicate shift code", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/shifts", admin, map[string]string{
			"code": "N", "name": "Another", "start_time": "21:00", "end_time": "05:00",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid shift", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/shifts", admin, map[string]string{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown shift", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/shifts/ZZ", staff, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/nowhere", staff, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("bad query parameter", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/stats?year=soon", manager, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	srv := newTestServer(t)
	srv.addLoginEmployee(t, "E1", user.RoleEmployee, "bar")
	token := srv.login(t, "E1")

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.jwt.IsTokenRevoked(token))

	rec = srv.do(t, http.MethodGet, "/api/v1/shifts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeactivatedEmployeeIsRejected(t *testing.T) {
	srv := newTestServer(t)
	srv.addLoginEmployee(t, "E1", user.RoleEmployee, "bar")
	token := srv.login(t, "E1")

	require.NoError(t, srv.env.Store.Employees().Deactivate(context.Background(), "E1", srv.env.Clock.Now().Add(-time.Minute)))

	rec := srv.do(t, http.MethodGet, "/api/v1/shifts", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScheduleCalendarFeed(t *testing.T) {
	srv := newTestServer(t)
	srv.addLoginEmployee(t, "M1", user.RoleManager, "bar")
	srv.addLoginEmployee(t, "E1", user.RoleEmployee, "bar")
	srv.env.AddShift(t, "F", "06:00", "14:00")
	manager := srv.login(t, "M1")
	staff := srv.login(t, "E1")

	date := srv.env.Clock.Now().AddDate(0, 0, 3).Format("2006-01-02")
	rec := srv.do(t, http.MethodPost, "/api/v1/schedules/E1/assign", manager, map[string]any{
		"department": "bar",
		"shift_code": "F",
		"position":   employee.PositionService,
		"dates":      []string{date},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/schedules/E1/calendar.ics", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "BEGIN:VEVENT")

	rec = srv.do(t, http.MethodGet, "/api/v1/schedules/M1/calendar.ics", staff, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuditRouteIsAdminOnly(t *testing.T) {
	srv := newTestServer(t)
	srv.addLoginEmployee(t, "A1", user.RoleAdmin)
	srv.addLoginEmployee(t, "M1", user.RoleManager, "bar")
	srv.addLoginEmployee(t, "E1", user.RoleEmployee, "bar")
	admin := srv.login(t, "A1")
	manager := srv.login(t, "M1")

	rec := srv.do(t, http.MethodGet, "/api/v1/audit/E1?year=2024&month=3", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))

	rec = srv.do(t, http.MethodGet, "/api/v1/audit/E1?year=2024&month=3", manager, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/audit/E1", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
