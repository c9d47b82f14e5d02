package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	attendanceService "github.com/cmlabs-hris/worktime-backend-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/worktime-backend-go/internal/service/audit"
	authService "github.com/cmlabs-hris/worktime-backend-go/internal/service/auth"
	dayoffService "github.com/cmlabs-hris/worktime-backend-go/internal/service/dayoff"
	employeeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/worktime-backend-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/worktime-backend-go/internal/service/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/servicetest"
	shiftService "github.com/cmlabs-hris/worktime-backend-go/internal/service/shift"
	statsService "github.com/cmlabs-hris/worktime-backend-go/internal/service/stats"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestPassword   = "password123"
)

type testServer struct {
	env    *servicetest.Env
	jwt    jwt.Service
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	// jwtauth validates expiry against the wall clock.
	env := servicetest.New(t, time.Now())
	store := env.Store
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)

	attendances := attendanceService.NewAttendanceService(attendanceService.Dependencies{
		Attendances: store.Attendances(),
		Schedules:   store.Schedules(),
		Employees:   store.Employees(),
		Audit:       store.Audit(),
		Ledger:      env.Ledger,
		Access:      env.Access,
		Guard:       env.Guard,
		Clock:       env.Clock,
		Rates:       attendance.DefaultCommissionRates(),
		Workers:     2,
	})

	h := Handlers{
		Auth:     NewAuthHandler(jwtService, authService.NewAuthService(store, store.Employees(), store.Tokens(), jwtService, env.Clock)),
		Shift:    NewShiftHandler(shiftService.NewShiftService(store.Shifts())),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(store.Employees(), env.Access, env.Guard, env.Clock)),
		Schedule: NewScheduleHandler(scheduleService.NewScheduleService(scheduleService.Dependencies{
			Schedules:   store.Schedules(),
			Shifts:      store.Shifts(),
			DayOffs:     store.DayOffs(),
			Attendances: store.Attendances(),
			Audit:       store.Audit(),
			Ledger:      env.Ledger,
			Access:      env.Access,
			Guard:       env.Guard,
			Clock:       env.Clock,
		})),
		Attendance: NewAttendanceHandler(attendances),
		Stats:      NewStatsHandler(statsService.NewStatsService(store.Stats(), store.Employees(), env.Access)),
		Payroll: NewPayrollHandler(payrollService.NewPayrollService(payrollService.Dependencies{
			Salaries:    store.Salaries(),
			Stats:       store.Stats(),
			Attendances: store.Attendances(),
			DayOffs:     store.DayOffs(),
			Employees:   store.Employees(),
			Audit:       store.Audit(),
			Access:      env.Access,
			Clock:       env.Clock,
		})),
		DayOff: NewDayOffHandler(dayoffService.NewDayOffService(store.DayOffs(), store.Employees(), store.Audit(), env.Access, env.Guard, env.Clock)),
		Audit:  NewAuditHandler(auditService.NewAuditService(store.Audit(), env.Access)),
	}

	router := NewRouter(RouterConfig{
		Env:                "test",
		Version:            "test",
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           slog.LevelError,
	}, jwtService, middleware.NewActiveEmployeeMiddleware(store.Employees(), env.Clock), h)

	return &testServer{env: env, jwt: jwtService, router: router}
}

// addLoginEmployee stores an active employee that can log in with
// handlerTestPassword.
func (s *testServer) addLoginEmployee(t *testing.T, id string, role user.Role, departments ...string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)

	memberships := make([]employee.Membership, 0, len(departments))
	for i, d := range departments {
		memberships = append(memberships, employee.Membership{Department: d, Positions: []string{employee.PositionService}, Ordinal: i})
	}
	_, err = s.env.Store.Employees().Create(context.Background(), employee.Employee{
		ID:           id,
		Name:         id,
		PasswordHash: &hash,
		Role:         role,
		Status:       employee.StatusActive,
		Departments:  memberships,
	})
	require.NoError(t, err)
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (s *testServer) login(t *testing.T, id string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": id,
		"password":    handlerTestPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}
