package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
)

type statsRepo struct{ s *Store }

func matchesPeriod(filter stats.StatsFilter, employeeID string, year, month int) bool {
	if filter.EmployeeIDs != nil && !containsString(filter.EmployeeIDs, employeeID) {
		return false
	}
	if filter.Year != nil && year != *filter.Year {
		return false
	}
	if filter.Month != nil && month != *filter.Month {
		return false
	}
	return true
}

func (r statsRepo) GetMonthly(ctx context.Context, employeeID string, year, month int) (stats.Monthly, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.monthly[periodKey{employeeID, year, month}]
	if !ok {
		return stats.Monthly{}, stats.ErrStatsNotFound
	}
	return m, nil
}

func (r statsRepo) UpsertMonthly(ctx context.Context, m stats.Monthly) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m.UpdatedAt = r.s.now()
	r.s.monthly[periodKey{m.EmployeeID, m.Year, m.Month}] = m
	return nil
}

func (r statsRepo) ListMonthly(ctx context.Context, filter stats.StatsFilter) ([]stats.Monthly, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []stats.Monthly{}
	for _, m := range r.s.monthly {
		if matchesPeriod(filter, m.EmployeeID, m.Year, m.Month) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return out, nil
}

func (r statsRepo) GetDepartment(ctx context.Context, employeeID, department string, year, month int) (stats.DepartmentStat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.departments[departmentKey{periodKey{employeeID, year, month}, department}]
	if !ok {
		return stats.DepartmentStat{}, stats.ErrStatsNotFound
	}
	return d, nil
}

func (r statsRepo) UpsertDepartment(ctx context.Context, d stats.DepartmentStat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.departments[departmentKey{periodKey{d.EmployeeID, d.Year, d.Month}, d.Department}] = d
	return nil
}

func (r statsRepo) ListDepartment(ctx context.Context, filter stats.StatsFilter) ([]stats.DepartmentStat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []stats.DepartmentStat{}
	for _, d := range r.s.departments {
		if !matchesPeriod(filter, d.EmployeeID, d.Year, d.Month) {
			continue
		}
		if filter.Department != nil && d.Department != *filter.Department {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return out, nil
}
