package payroll

import "context"

type SalaryFilter struct {
	EmployeeIDs []string // nil means any
	Year        *int
	Month       *int
}

type SalaryRepository interface {
	Get(ctx context.Context, employeeID string, year, month int) (Salary, error)
	// LatestRates returns the rates of the employee's most recent salary.
	LatestRates(ctx context.Context, employeeID string) (Rates, error)
	Upsert(ctx context.Context, s Salary) (Salary, error)
	List(ctx context.Context, filter SalaryFilter) ([]Salary, error)
}
