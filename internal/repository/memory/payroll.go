package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
)

type salaryRepo struct{ s *Store }

func (r salaryRepo) Get(ctx context.Context, employeeID string, year, month int) (payroll.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := r.s.salaries[periodKey{employeeID, year, month}]
	if !ok {
		return payroll.Salary{}, payroll.ErrSalaryNotFound
	}
	return s, nil
}

func (r salaryRepo) LatestRates(ctx context.Context, employeeID string) (payroll.Rates, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *payroll.Salary
	for _, s := range r.s.salaries {
		if s.EmployeeID != employeeID {
			continue
		}
		if latest == nil || s.CalculatedAt.After(latest.CalculatedAt) {
			s := s
			latest = &s
		}
	}
	if latest == nil {
		return payroll.Rates{}, payroll.ErrSalaryNotFound
	}
	return latest.Rates, nil
}

func (r salaryRepo) Upsert(ctx context.Context, s payroll.Salary) (payroll.Salary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.salaries[periodKey{s.EmployeeID, s.Year, s.Month}] = s
	return s, nil
}

func (r salaryRepo) List(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []payroll.Salary{}
	for _, s := range r.s.salaries {
		if filter.EmployeeIDs != nil && !containsString(filter.EmployeeIDs, s.EmployeeID) {
			continue
		}
		if filter.Year != nil && s.Year != *filter.Year {
			continue
		}
		if filter.Month != nil && s.Month != *filter.Month {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.EmployeeID < b.EmployeeID
	})
	return out, nil
}
