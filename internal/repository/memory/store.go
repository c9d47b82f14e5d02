// Package memory is an in-process implementation of every repository. It
// backs the service tests and the STORE_DRIVER=memory mode of the API.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
)

type periodKey struct {
	employeeID string
	year       int
	month      int
}

type departmentKey struct {
	periodKey
	department string
}

type tokenRow struct {
	employeeID string
	expiresAt  time.Time
	revoked    bool
}

// Store holds all tables behind one lock. Units of work are not isolated:
// writers are expected to hold the employee lock.
type Store struct {
	mu sync.RWMutex

	employees    map[string]employee.Employee
	shifts       map[string]shift.Template
	assignments  []schedule.Assignment
	seq          int64
	attendances  map[string]attendance.Record
	monthly      map[periodKey]stats.Monthly
	departments  map[departmentKey]stats.DepartmentStat
	dayOffs      map[string]dayoff.Period
	consumptions []dayoff.Consumption
	salaries     map[periodKey]payroll.Salary
	audits       []audit.Entry
	tokens       map[string]tokenRow

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		shifts:      make(map[string]shift.Template),
		attendances: make(map[string]attendance.Record),
		monthly:     make(map[periodKey]stats.Monthly),
		departments: make(map[departmentKey]stats.DepartmentStat),
		dayOffs:     make(map[string]dayoff.Period),
		salaries:    make(map[periodKey]payroll.Salary),
		tokens:      make(map[string]tokenRow),
		now:         time.Now,
	}
}

// WithinTx runs fn directly.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Employees() employee.EmployeeRepository       { return employeeRepo{s} }
func (s *Store) Shifts() shift.ShiftRepository                { return shiftRepo{s} }
func (s *Store) Schedules() schedule.ScheduleRepository       { return scheduleRepo{s} }
func (s *Store) Attendances() attendance.AttendanceRepository { return attendanceRepo{s} }
func (s *Store) Stats() stats.StatsRepository                 { return statsRepo{s} }
func (s *Store) DayOffs() dayoff.DayOffRepository             { return dayOffRepo{s} }
func (s *Store) Salaries() payroll.SalaryRepository           { return salaryRepo{s} }
func (s *Store) Audit() audit.AuditRepository                 { return auditRepo{s} }
func (s *Store) Tokens() auth.TokenRepository                 { return tokenRepo{s} }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// SetClock replaces the timestamp source used for created/updated columns.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}
