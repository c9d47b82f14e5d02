package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, req ListEmployeeRequest) ([]EmployeeResponse, error)
	Deactivate(ctx context.Context, req DeactivateEmployeeRequest) (EmployeeResponse, error)
}
