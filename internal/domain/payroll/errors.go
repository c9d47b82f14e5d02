package payroll

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary not found")
	ErrStatsNotFound  = errors.New("no statistics recorded for this period")
	ErrRateRequired   = errors.New("rates a and b are required on the first calculation")
	ErrInvalidRate    = errors.New("rates must be non-negative")
)
