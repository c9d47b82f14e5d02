package payroll

import "context"

type PayrollService interface {
	CalculateSalary(ctx context.Context, req CalculateSalaryRequest) (SalaryResponse, error)
	ListSalaries(ctx context.Context, req ListSalariesRequest) ([]SalaryResponse, error)
}
