// Package servicetest wires services onto the in-memory store for tests.
package servicetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
	statsservice "github.com/cmlabs-hris/worktime-backend-go/internal/service/stats"
)

// Zone stands in for the business timezone without needing tzdata.
var Zone = time.FixedZone("ICT", 7*60*60)

type Env struct {
	Store  *memory.Store
	Clock  *clock.Fixed
	Access *access.Resolver
	Guard  *access.Guard
	Ledger stats.Ledger
}

func New(t testing.TB, now time.Time) *Env {
	t.Helper()
	store := memory.NewStore()
	fixed := clock.NewFixed(now.In(Zone))
	store.SetClock(fixed.Now)
	return &Env{
		Store:  store,
		Clock:  fixed,
		Access: access.NewResolver(store.Employees()),
		Guard:  access.NewGuard(lock.NewLocal(), store, store.Employees()),
		Ledger: statsservice.NewLedger(store.Stats()),
	}
}

// Date is midnight of the given day in Zone.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, Zone)
}

// At is a wall-clock instant in Zone.
func At(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, Zone)
}

// Member builds a department membership.
func Member(department string, positions ...string) employee.Membership {
	return employee.Membership{Department: department, Positions: positions}
}

// AddEmployee stores an active employee with a monthly target in hours.
func (e *Env) AddEmployee(t testing.TB, id string, role user.Role, targetHours, dayOffs int, memberships ...employee.Membership) employee.Employee {
	t.Helper()
	for i := range memberships {
		memberships[i].Ordinal = i
	}
	emp, err := e.Store.Employees().Create(context.Background(), employee.Employee{
		ID:                   id,
		Name:                 id,
		Role:                 role,
		Status:               employee.StatusActive,
		DefaultDayOff:        dayOffs,
		RealisticDayOff:      dayOffs,
		MonthlyTargetMinutes: targetHours * 60,
		Departments:          memberships,
	})
	require.NoError(t, err)
	return emp
}

func (e *Env) AddShift(t testing.TB, code, start, end string) shift.Template {
	t.Helper()
	d, err := shift.DurationBetween(start, end)
	require.NoError(t, err)
	tpl, err := e.Store.Shifts().Create(context.Background(), shift.Template{
		Code:            code,
		Name:            "Shift " + code,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: d,
	})
	require.NoError(t, err)
	return tpl
}

// As returns a context authenticated as employeeID.
func As(employeeID string, role user.Role) context.Context {
	return user.WithCaller(context.Background(), user.Caller{EmployeeID: employeeID, Role: role})
}
