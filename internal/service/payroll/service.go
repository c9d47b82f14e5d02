package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

type PayrollServiceImpl struct {
	payroll.SalaryRepository
	stats.StatsRepository
	attendance.AttendanceRepository
	dayoff.DayOffRepository
	employee.EmployeeRepository
	audit.AuditRepository
	access *access.Resolver
	clock  clock.Clock
}

type Dependencies struct {
	Salaries    payroll.SalaryRepository
	Stats       stats.StatsRepository
	Attendances attendance.AttendanceRepository
	DayOffs     dayoff.DayOffRepository
	Employees   employee.EmployeeRepository
	Audit       audit.AuditRepository
	Access      *access.Resolver
	Clock       clock.Clock
}

func NewPayrollService(d Dependencies) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		SalaryRepository:     d.Salaries,
		StatsRepository:      d.Stats,
		AttendanceRepository: d.Attendances,
		DayOffRepository:     d.DayOffs,
		EmployeeRepository:   d.Employees,
		AuditRepository:      d.Audit,
		access:               d.Access,
		clock:                d.Clock,
	}
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

// rates picks the requested rates or falls back to the employee's last
// salary.
func (s *PayrollServiceImpl) rates(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.Rates, error) {
	if req.A != nil && req.B != nil {
		return payroll.Rates{A: *req.A, B: *req.B}, nil
	}
	r, err := s.SalaryRepository.LatestRates(ctx, req.EmployeeID)
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		return payroll.Rates{}, payroll.ErrRateRequired
	}
	if err != nil {
		return payroll.Rates{}, fmt.Errorf("failed to load previous rates: %w", err)
	}
	return r, nil
}

// dayOffDays counts the day-off days attributed to the month.
func (s *PayrollServiceImpl) dayOffDays(ctx context.Context, employeeID string, year, month int) (int, error) {
	through, err := s.DayOffRepository.SumConsumed(ctx, employeeID, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to sum day-off consumption: %w", err)
	}
	before, err := s.DayOffRepository.SumConsumed(ctx, employeeID, year, month-1)
	if err != nil {
		return 0, fmt.Errorf("failed to sum day-off consumption: %w", err)
	}
	return through - before, nil
}

// attendanceTotals sums worked hours per department and the kilometres
// driven over the closed records of the month.
func (s *PayrollServiceImpl) attendanceTotals(ctx context.Context, employeeID string, year, month int) (map[string]decimal.Decimal, decimal.Decimal, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.clock.Location())
	to := from.AddDate(0, 1, 0)
	records, err := s.AttendanceRepository.List(ctx, attendance.AttendanceFilter{EmployeeID: &employeeID, From: &from, To: &to})
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to list attendance: %w", err)
	}

	minutes := make(map[string]int)
	km := decimal.Zero
	for _, r := range records {
		if r.Status != attendance.StatusChecked {
			continue
		}
		minutes[r.Department] += r.WorkedMinutes
		if r.Position == employee.PositionDriver && r.Details.TotalKm != nil {
			km = km.Add(*r.Details.TotalKm)
		}
	}

	hours := make(map[string]decimal.Decimal, len(minutes))
	for dept, m := range minutes {
		hours[dept] = payroll.Hours(m).Round(2)
	}
	return hours, km, nil
}

// CalculateSalary implements payroll.PayrollService. The result replaces
// any salary already stored for the month.
func (s *PayrollServiceImpl) CalculateSalary(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}

	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	if !caller.IsManager() {
		return payroll.SalaryResponse{}, user.ErrManagerAccessRequired
	}
	if _, err := s.access.Employee(ctx, scope, req.EmployeeID); err != nil {
		return payroll.SalaryResponse{}, err
	}

	monthly, err := s.StatsRepository.GetMonthly(ctx, req.EmployeeID, req.Year, req.Month)
	if errors.Is(err, stats.ErrStatsNotFound) {
		return payroll.SalaryResponse{}, payroll.ErrStatsNotFound
	}
	if err != nil {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to get monthly statistics: %w", err)
	}

	rates, err := s.rates(ctx, req)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	days, err := s.dayOffDays(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	hours, km, err := s.attendanceTotals(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	var before any
	if prev, err := s.SalaryRepository.Get(ctx, req.EmployeeID, req.Year, req.Month); err == nil {
		before = payroll.ToResponse(prev)
	} else if !errors.Is(err, payroll.ErrSalaryNotFound) {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to get salary: %w", err)
	}

	now := s.clock.Now()
	salary, err := s.SalaryRepository.Upsert(ctx, payroll.Salary{
		EmployeeID:        req.EmployeeID,
		Year:              req.Year,
		Month:             req.Month,
		TotalSalary:       payroll.Total(rates, monthly.TotalMinutes, monthly.OvertimeMinutes, days),
		WorkedMinutes:     monthly.TotalMinutes,
		OvertimeMinutes:   monthly.OvertimeMinutes,
		DayOffDays:        days,
		HoursByDepartment: hours,
		TotalKm:           km,
		Rates:             rates,
		CalculatedAt:      now,
	})
	if err != nil {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to save salary: %w", err)
	}

	resp := payroll.ToResponse(salary)
	entry := audit.NewEntry(uuid.NewString(), now, audit.TypeSalaryCalculation, caller, req.EmployeeID, before, resp)
	if err := s.AuditRepository.Append(ctx, entry); err != nil {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to write audit entry: %w", err)
	}

	slog.Info("Payroll: salary calculated",
		"employee_id", req.EmployeeID,
		"year", req.Year,
		"month", req.Month,
		"total", salary.TotalSalary.String(),
	)
	return resp, nil
}

// ListSalaries implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListSalaries(ctx context.Context, req payroll.ListSalariesRequest) ([]payroll.SalaryResponse, error) {
	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return nil, err
	}

	filter := payroll.SalaryFilter{Year: req.Year, Month: req.Month}
	switch {
	case req.EmployeeID != nil:
		if _, err := s.access.Employee(ctx, scope, *req.EmployeeID); err != nil {
			return nil, err
		}
		filter.EmployeeIDs = []string{*req.EmployeeID}
	case scope.SelfOnly():
		filter.EmployeeIDs = []string{scope.EmployeeID()}
	case !scope.IsUnrestricted():
		members, err := s.EmployeeRepository.List(ctx, employee.EmployeeFilter{Departments: scope.Departments()})
		if err != nil {
			return nil, fmt.Errorf("failed to list employees in scope: %w", err)
		}
		filter.EmployeeIDs = []string{scope.EmployeeID()}
		for _, m := range members {
			filter.EmployeeIDs = append(filter.EmployeeIDs, m.ID)
		}
	}

	salaries, err := s.SalaryRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	resp := make([]payroll.SalaryResponse, 0, len(salaries))
	for _, sal := range salaries {
		resp = append(resp, payroll.ToResponse(sal))
	}
	return resp, nil
}
