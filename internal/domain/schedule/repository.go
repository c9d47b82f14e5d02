package schedule

import (
	"context"
	"time"
)

type ScheduleFilter struct {
	EmployeeID string
	Department *string
	Date       *time.Time
	From       *time.Time // inclusive
	To         *time.Time // exclusive
}

type ScheduleRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	// ListByEmployeeDate returns every assignment of the employee on date in
	// any department, ordered by Seq.
	ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]Assignment, error)
	List(ctx context.Context, filter ScheduleFilter) ([]Assignment, error)
	DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (int, error)
}
