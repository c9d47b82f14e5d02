package dayoff

import "context"

type DayOffService interface {
	Create(ctx context.Context, req CreateDayOffRequest) (DayOffResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListDayOffRequest) ([]DayOffResponse, error)
	Request(ctx context.Context, req RequestDayOffRequest) (DayOffResponse, error)
	Decide(ctx context.Context, req DecideRequest) (DayOffResponse, error)
}
