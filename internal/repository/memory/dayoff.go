package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
)

type dayOffRepo struct{ s *Store }

func sameEmployee(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r dayOffRepo) Create(ctx context.Context, p dayoff.Period) (dayoff.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.dayOffs {
		if existing.Kind == p.Kind && sameDay(existing.StartDate, p.StartDate) &&
			sameDay(existing.EndDate, p.EndDate) && sameEmployee(existing.EmployeeID, p.EmployeeID) {
			return dayoff.Period{}, dayoff.ErrDayOffExists
		}
	}
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.dayOffs[p.ID] = p
	return p, nil
}

func (r dayOffRepo) GetByID(ctx context.Context, id string) (dayoff.Period, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.dayOffs[id]
	if !ok {
		return dayoff.Period{}, dayoff.ErrDayOffNotFound
	}
	return p, nil
}

func (r dayOffRepo) Update(ctx context.Context, p dayoff.Period) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dayOffs[p.ID]; !ok {
		return dayoff.ErrDayOffNotFound
	}
	p.UpdatedAt = r.s.now()
	r.s.dayOffs[p.ID] = p
	return nil
}

// Delete keeps the consumption ledger; consumed balance is not refunded.
func (r dayOffRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dayOffs[id]; !ok {
		return dayoff.ErrDayOffNotFound
	}
	delete(r.s.dayOffs, id)
	return nil
}

func (r dayOffRepo) List(ctx context.Context, filter dayoff.DayOffFilter) ([]dayoff.Period, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []dayoff.Period{}
	for _, p := range r.s.dayOffs {
		if filter.EmployeeID != nil && !p.AppliesTo(*filter.EmployeeID) {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.From != nil && p.EndDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !p.StartDate.Before(*filter.To) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r dayOffRepo) ListAllowedCovering(ctx context.Context, employeeID string, date time.Time) ([]dayoff.Period, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []dayoff.Period{}
	for _, p := range r.s.dayOffs {
		if p.Allowed && p.AppliesTo(employeeID) && p.Contains(date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r dayOffRepo) AddConsumption(ctx context.Context, c dayoff.Consumption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.consumptions {
		if existing.DayOffID == c.DayOffID && existing.EmployeeID == c.EmployeeID {
			return dayoff.ErrAlreadyConsumed
		}
	}
	r.s.consumptions = append(r.s.consumptions, c)
	return nil
}

func (r dayOffRepo) SumConsumed(ctx context.Context, employeeID string, year, throughMonth int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := 0
	for _, c := range r.s.consumptions {
		if c.EmployeeID == employeeID && c.PeriodYear == year && c.PeriodMonth <= throughMonth {
			total += c.ConsumedDays
		}
	}
	return total, nil
}
