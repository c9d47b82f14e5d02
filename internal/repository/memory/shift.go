package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
)

type shiftRepo struct{ s *Store }

func (r shiftRepo) Create(ctx context.Context, t shift.Template) (shift.Template, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shifts[t.Code]; ok {
		return shift.Template{}, shift.ErrShiftCodeExists
	}
	for _, existing := range r.s.shifts {
		if existing.Name == t.Name {
			return shift.Template{}, shift.ErrShiftNameExists
		}
	}
	now := r.s.now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.shifts[t.Code] = t
	return t, nil
}

func (r shiftRepo) Update(ctx context.Context, t shift.Template) (shift.Template, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.shifts[t.Code]
	if !ok {
		return shift.Template{}, shift.ErrShiftNotFound
	}
	for code, existing := range r.s.shifts {
		if code != t.Code && existing.Name == t.Name {
			return shift.Template{}, shift.ErrShiftNameExists
		}
	}
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = r.s.now()
	r.s.shifts[t.Code] = t
	return t, nil
}

func (r shiftRepo) GetByCode(ctx context.Context, code string) (shift.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.shifts[code]
	if !ok {
		return shift.Template{}, shift.ErrShiftNotFound
	}
	return t, nil
}

func (r shiftRepo) GetByName(ctx context.Context, name string) (shift.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.shifts {
		if t.Name == name {
			return t, nil
		}
	}
	return shift.Template{}, shift.ErrShiftNotFound
}

func (r shiftRepo) List(ctx context.Context) ([]shift.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]shift.Template, 0, len(r.s.shifts))
	for _, t := range r.s.shifts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
