package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
)

type scheduleRepo struct{ s *Store }

func (r scheduleRepo) Create(ctx context.Context, a schedule.Assignment) (schedule.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.assignments {
		if existing.EmployeeID == a.EmployeeID && existing.Department == a.Department &&
			existing.ShiftCode == a.ShiftCode && sameDay(existing.Date, a.Date) {
			return schedule.Assignment{}, schedule.ErrDuplicateShiftCode
		}
	}
	r.s.seq++
	a.Seq = r.s.seq
	a.CreatedAt = r.s.now()
	r.s.assignments = append(r.s.assignments, a)
	return a, nil
}

func (r scheduleRepo) ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.Assignment, error) {
	return r.List(ctx, schedule.ScheduleFilter{EmployeeID: employeeID, Date: &date})
}

func (r scheduleRepo) List(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []schedule.Assignment{}
	for _, a := range r.s.assignments {
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Department != nil && a.Department != *filter.Department {
			continue
		}
		if filter.Date != nil && !sameDay(a.Date, *filter.Date) {
			continue
		}
		if !inRange(a.Date, filter.From, filter.To) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r scheduleRepo) DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.assignments[:0]
	removed := 0
	for _, a := range r.s.assignments {
		if a.EmployeeID == employeeID && sameDay(a.Date, date) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.s.assignments = kept
	return removed, nil
}
