package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
)

type employeeRepo struct{ s *Store }

func cloneEmployee(e employee.Employee) employee.Employee {
	deps := make([]employee.Membership, len(e.Departments))
	for i, m := range e.Departments {
		m.Positions = append([]string(nil), m.Positions...)
		deps[i] = m
	}
	e.Departments = deps
	return e
}

func (r employeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[newEmployee.ID]; ok {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}
	now := r.s.now()
	newEmployee.Version = 1
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.s.employees[newEmployee.ID] = cloneEmployee(newEmployee)
	return cloneEmployee(newEmployee), nil
}

func (r employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r employeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.s.employees {
		if filter.EmployeeID != nil && e.ID != *filter.EmployeeID {
			continue
		}
		if filter.Department != nil {
			if _, ok := e.Membership(*filter.Department); !ok {
				continue
			}
		}
		if filter.Departments != nil && !anyMembership(e, filter.Departments) {
			continue
		}
		if filter.ActiveAt != nil && !e.IsActiveAt(*filter.ActiveAt) {
			continue
		}
		out = append(out, cloneEmployee(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func anyMembership(e employee.Employee, departments []string) bool {
	for _, d := range departments {
		if _, ok := e.Membership(d); ok {
			return true
		}
	}
	return false
}

func (r employeeRepo) IDsByDepartment(ctx context.Context, department string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []string{}
	for _, e := range r.s.employees {
		if _, ok := e.Membership(department); ok {
			ids = append(ids, e.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r employeeRepo) UpdateRealisticDayOff(ctx context.Context, id string, realisticDayOff int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.RealisticDayOff = realisticDayOff
	e.UpdatedAt = r.s.now()
	r.s.employees[id] = e
	return nil
}

func (r employeeRepo) Deactivate(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Status = employee.StatusInactive
	e.InactiveAt = &at
	e.UpdatedAt = r.s.now()
	r.s.employees[id] = e
	return nil
}

func (r employeeRepo) BumpVersion(ctx context.Context, id string, expected int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return 0, employee.ErrEmployeeNotFound
	}
	if e.Version != expected {
		return 0, employee.ErrConcurrentUpdate
	}
	e.Version++
	r.s.employees[id] = e
	return e.Version, nil
}
