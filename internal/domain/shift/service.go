package shift

import "context"

type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	GetByCode(ctx context.Context, code string) (ShiftResponse, error)
	GetByName(ctx context.Context, name string) (ShiftResponse, error)
	List(ctx context.Context) ([]ShiftResponse, error)
}
