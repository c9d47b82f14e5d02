// Package access resolves who is calling and guards writes to one
// employee aggregate.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/lock"
)

type Resolver struct {
	employees employee.EmployeeRepository
}

func NewResolver(employees employee.EmployeeRepository) *Resolver {
	return &Resolver{employees: employees}
}

// Scope returns the caller in ctx and what the caller may see.
func (r *Resolver) Scope(ctx context.Context) (user.Caller, user.Scope, error) {
	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return user.Caller{}, user.Scope{}, err
	}
	if caller.IsAdmin() {
		return caller, user.NewScope(caller, nil), nil
	}

	self, err := r.employees.GetByID(ctx, caller.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.Caller{}, user.Scope{}, user.ErrCallerMissing
		}
		return user.Caller{}, user.Scope{}, fmt.Errorf("failed to load caller: %w", err)
	}
	return caller, user.NewScope(caller, self.DepartmentNames()), nil
}

// Employee loads employeeID and checks it lies within scope.
func (r *Resolver) Employee(ctx context.Context, scope user.Scope, employeeID string) (employee.Employee, error) {
	emp, err := r.employees.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !scope.AllowsEmployee(emp.ID, emp.DepartmentNames()) {
		return employee.Employee{}, user.ErrOutOfScope
	}
	return emp, nil
}

// Guard makes one caller the only writer of an employee aggregate: it
// holds the employee lock, runs the change as a unit of work and bumps the
// aggregate version before the unit commits.
type Guard struct {
	locker    lock.Locker
	tx        database.Transactor
	employees employee.EmployeeRepository
}

func NewGuard(locker lock.Locker, tx database.Transactor, employees employee.EmployeeRepository) *Guard {
	return &Guard{locker: locker, tx: tx, employees: employees}
}

// Lock takes the employee lock. The returned func releases it.
func (g *Guard) Lock(ctx context.Context, employeeID string) (func(), error) {
	unlock, err := g.locker.Lock(ctx, lock.EmployeeKey(employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return unlock, nil
}

// Unit runs fn in a unit of work for an employee whose lock the caller
// already holds.
func (g *Guard) Unit(ctx context.Context, employeeID string, fn func(ctx context.Context, emp employee.Employee) error) error {
	return g.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := g.employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := fn(ctx, emp); err != nil {
			return err
		}
		if _, err := g.employees.BumpVersion(ctx, employeeID, emp.Version); err != nil {
			return err
		}
		return nil
	})
}

// Employee is Lock followed by Unit.
func (g *Guard) Employee(ctx context.Context, employeeID string, fn func(ctx context.Context, emp employee.Employee) error) error {
	unlock, err := g.Lock(ctx, employeeID)
	if err != nil {
		return err
	}
	defer unlock()
	return g.Unit(ctx, employeeID, fn)
}
