package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeIDExists  = errors.New("employee ID already registered")
	ErrEmployeeInactive  = errors.New("employee is not active")
	ErrNotInDepartment   = errors.New("employee is not a member of this department")
	ErrPositionNotHeld   = errors.New("employee does not hold this position in the department")
	ErrConcurrentUpdate  = errors.New("employee was modified concurrently, retry the request")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidDeactivate = errors.New("deactivation time must not be in the past")
)
