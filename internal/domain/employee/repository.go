package employee

import (
	"context"
	"time"
)

type EmployeeFilter struct {
	Department  *string
	Departments []string // scope restriction, nil means any
	EmployeeID  *string
	ActiveAt    *time.Time
}

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	IDsByDepartment(ctx context.Context, department string) ([]string, error)
	UpdateRealisticDayOff(ctx context.Context, id string, realisticDayOff int) error
	Deactivate(ctx context.Context, id string, at time.Time) error
	// BumpVersion advances the aggregate version when it still equals
	// expected and returns the new version. ErrConcurrentUpdate otherwise.
	BumpVersion(ctx context.Context, id string, expected int64) (int64, error)
}
