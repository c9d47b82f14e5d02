package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, t Template) (Template, error)
	Update(ctx context.Context, t Template) (Template, error)
	GetByCode(ctx context.Context, code string) (Template, error)
	GetByName(ctx context.Context, name string) (Template, error)
	List(ctx context.Context) ([]Template, error)
}
