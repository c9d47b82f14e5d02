package attendance

import (
	"context"
	"time"
)

type AttendanceFilter struct {
	EmployeeID *string
	Department *string
	From       *time.Time // inclusive
	To         *time.Time // exclusive
}

type AttendanceRepository interface {
	// Create fails with ErrRecordExists when (employee, date, shift code)
	// already has a record.
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByKey(ctx context.Context, employeeID string, date time.Time, shiftCode string) (Record, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Record, error)
	Update(ctx context.Context, r Record) error
}
