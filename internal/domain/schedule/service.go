package schedule

import "context"

type ScheduleService interface {
	AssignShift(ctx context.Context, req AssignShiftRequest) (AssignShiftResponse, error)
	GetSchedule(ctx context.Context, req GetScheduleRequest) ([]AssignmentResponse, error)
	DeleteScheduleEntry(ctx context.Context, req DeleteScheduleEntryRequest) error
	Calendar(ctx context.Context, req GetScheduleRequest) ([]byte, error)
}
