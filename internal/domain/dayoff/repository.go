package dayoff

import (
	"context"
	"time"
)

type DayOffFilter struct {
	EmployeeID *string
	Status     *Status
	From       *time.Time
	To         *time.Time
}

type DayOffRepository interface {
	// Create fails with ErrDayOffExists on a duplicate (start, end, kind)
	// for the same employee.
	Create(ctx context.Context, p Period) (Period, error)
	GetByID(ctx context.Context, id string) (Period, error)
	Update(ctx context.Context, p Period) error
	// Delete removes the period together with its ledger rows.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter DayOffFilter) ([]Period, error)
	// ListAllowedCovering returns allowed periods of employeeID (global or
	// specific) that include date.
	ListAllowedCovering(ctx context.Context, employeeID string, date time.Time) ([]Period, error)

	// AddConsumption fails with ErrAlreadyConsumed when the employee already
	// consumed the period.
	AddConsumption(ctx context.Context, c Consumption) error
	// SumConsumed totals ledger days of year attributed to months up to and
	// including throughMonth.
	SumConsumed(ctx context.Context, employeeID string, year, throughMonth int) (int, error)
}
