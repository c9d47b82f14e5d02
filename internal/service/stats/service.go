package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

// LedgerImpl creates statistics rows on first touch.
type LedgerImpl struct {
	stats.StatsRepository
}

func NewLedger(statsRepository stats.StatsRepository) stats.Ledger {
	return &LedgerImpl{StatsRepository: statsRepository}
}

func (l *LedgerImpl) monthly(ctx context.Context, employeeID string, p stats.Period, targetMinutes int) (stats.Monthly, error) {
	m, err := l.StatsRepository.GetMonthly(ctx, employeeID, p.Year, p.Month)
	if errors.Is(err, stats.ErrStatsNotFound) {
		return stats.NewMonthly(employeeID, p.Year, p.Month, targetMinutes), nil
	}
	if err != nil {
		return stats.Monthly{}, fmt.Errorf("failed to get monthly statistics: %w", err)
	}
	return m, nil
}

// ConsumeScheduled implements stats.Ledger.
func (l *LedgerImpl) ConsumeScheduled(ctx context.Context, employeeID string, p stats.Period, targetMinutes, minutes int) (stats.Monthly, error) {
	m, err := l.monthly(ctx, employeeID, p, targetMinutes)
	if err != nil {
		return stats.Monthly{}, err
	}
	m.ConsumeScheduled(minutes)
	if err := l.StatsRepository.UpsertMonthly(ctx, m); err != nil {
		return stats.Monthly{}, fmt.Errorf("failed to save monthly statistics: %w", err)
	}
	return m, nil
}

// AddWorked implements stats.Ledger.
func (l *LedgerImpl) AddWorked(ctx context.Context, employeeID string, p stats.Period, targetMinutes, minutes int) (stats.Monthly, error) {
	m, err := l.monthly(ctx, employeeID, p, targetMinutes)
	if err != nil {
		return stats.Monthly{}, err
	}
	m.AddWorked(minutes)
	if err := l.StatsRepository.UpsertMonthly(ctx, m); err != nil {
		return stats.Monthly{}, fmt.Errorf("failed to save monthly statistics: %w", err)
	}
	return m, nil
}

// Credit implements stats.Ledger.
func (l *LedgerImpl) Credit(ctx context.Context, employeeID, department string, p stats.Period, credit stats.Credit) (stats.DepartmentStat, error) {
	d, err := l.StatsRepository.GetDepartment(ctx, employeeID, department, p.Year, p.Month)
	if errors.Is(err, stats.ErrStatsNotFound) {
		d = stats.DepartmentStat{EmployeeID: employeeID, Department: department, Year: p.Year, Month: p.Month}
	} else if err != nil {
		return stats.DepartmentStat{}, fmt.Errorf("failed to get department statistics: %w", err)
	}
	d.Apply(credit)
	if err := l.StatsRepository.UpsertDepartment(ctx, d); err != nil {
		return stats.DepartmentStat{}, fmt.Errorf("failed to save department statistics: %w", err)
	}
	return d, nil
}

type StatsServiceImpl struct {
	stats.StatsRepository
	employee.EmployeeRepository
	access *access.Resolver
}

func NewStatsService(statsRepository stats.StatsRepository, employeeRepository employee.EmployeeRepository, resolver *access.Resolver) stats.StatsService {
	return &StatsServiceImpl{
		StatsRepository:    statsRepository,
		EmployeeRepository: employeeRepository,
		access:             resolver,
	}
}

// GetStats implements stats.StatsService. A department filter first
// resolves the department's members, then narrows both result sets.
func (s *StatsServiceImpl) GetStats(ctx context.Context, req stats.GetStatsRequest) (stats.StatsResponse, error) {
	if err := req.Validate(); err != nil {
		return stats.StatsResponse{}, err
	}

	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return stats.StatsResponse{}, err
	}

	ids, err := s.visibleEmployees(ctx, scope, req)
	if err != nil {
		return stats.StatsResponse{}, err
	}

	filter := stats.StatsFilter{EmployeeIDs: ids, Department: req.Department, Year: req.Year, Month: req.Month}

	monthly, err := s.StatsRepository.ListMonthly(ctx, filter)
	if err != nil {
		return stats.StatsResponse{}, fmt.Errorf("failed to list monthly statistics: %w", err)
	}
	departments, err := s.StatsRepository.ListDepartment(ctx, filter)
	if err != nil {
		return stats.StatsResponse{}, fmt.Errorf("failed to list department statistics: %w", err)
	}

	resp := stats.StatsResponse{
		Monthly:     make([]stats.MonthlyResponse, 0, len(monthly)),
		Departments: make([]stats.DepartmentStatResponse, 0, len(departments)),
	}
	for _, m := range monthly {
		resp.Monthly = append(resp.Monthly, stats.ToMonthlyResponse(m))
	}
	for _, d := range departments {
		if !scope.IsUnrestricted() && d.EmployeeID != scope.EmployeeID() && !scope.AllowsDepartment(d.Department) {
			continue
		}
		resp.Departments = append(resp.Departments, stats.ToDepartmentStatResponse(d))
	}
	return resp, nil
}

// visibleEmployees returns the employee ids the query may cover, nil for
// everyone.
func (s *StatsServiceImpl) visibleEmployees(ctx context.Context, scope user.Scope, req stats.GetStatsRequest) ([]string, error) {
	if req.EmployeeID != nil {
		if _, err := s.access.Employee(ctx, scope, *req.EmployeeID); err != nil {
			return nil, err
		}
	}

	var ids []string
	switch {
	case req.Department != nil:
		if !scope.AllowsDepartment(*req.Department) && !scope.SelfOnly() {
			return nil, user.ErrOutOfScope
		}
		members, err := s.EmployeeRepository.IDsByDepartment(ctx, *req.Department)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department members: %w", err)
		}
		ids = members
	case scope.IsUnrestricted():
		ids = nil
	default:
		seen := map[string]bool{scope.EmployeeID(): true}
		for _, dept := range scope.Departments() {
			members, err := s.EmployeeRepository.IDsByDepartment(ctx, dept)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve department members: %w", err)
			}
			for _, id := range members {
				seen[id] = true
			}
		}
		ids = make([]string, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}

	if scope.SelfOnly() {
		ids = intersect(ids, []string{scope.EmployeeID()})
	}
	if req.EmployeeID != nil {
		ids = intersect(ids, []string{*req.EmployeeID})
	}
	return ids, nil
}

// intersect treats a nil set as everything.
func intersect(set, with []string) []string {
	if set == nil {
		return with
	}
	out := []string{}
	for _, a := range set {
		for _, b := range with {
			if a == b {
				out = append(out, a)
			}
		}
	}
	return out
}
