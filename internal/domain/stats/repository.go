package stats

import "context"

type StatsFilter struct {
	EmployeeIDs []string // nil means any employee
	Department  *string
	Year        *int
	Month       *int
}

type StatsRepository interface {
	GetMonthly(ctx context.Context, employeeID string, year, month int) (Monthly, error)
	UpsertMonthly(ctx context.Context, m Monthly) error
	ListMonthly(ctx context.Context, filter StatsFilter) ([]Monthly, error)

	GetDepartment(ctx context.Context, employeeID, department string, year, month int) (DepartmentStat, error)
	UpsertDepartment(ctx context.Context, d DepartmentStat) error
	ListDepartment(ctx context.Context, filter StatsFilter) ([]DepartmentStat, error)
}
