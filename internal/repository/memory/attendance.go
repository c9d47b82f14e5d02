package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
)

type attendanceRepo struct{ s *Store }

func (r attendanceRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.attendances {
		if existing.EmployeeID == rec.EmployeeID && existing.ShiftCode == rec.ShiftCode && sameDay(existing.Date, rec.Date) {
			return attendance.Record{}, attendance.ErrRecordExists
		}
	}
	r.s.attendances[rec.ID] = rec
	return rec, nil
}

func (r attendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.attendances[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r attendanceRepo) GetByKey(ctx context.Context, employeeID string, date time.Time, shiftCode string) (attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.attendances {
		if rec.EmployeeID == employeeID && rec.ShiftCode == shiftCode && sameDay(rec.Date, date) {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (r attendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []attendance.Record{}
	for _, rec := range r.s.attendances {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Department != nil && rec.Department != *filter.Department {
			continue
		}
		if !inRange(rec.Date, filter.From, filter.To) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ShiftCode < out[j].ShiftCode
	})
	return out, nil
}

func (r attendanceRepo) Update(ctx context.Context, rec attendance.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attendances[rec.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.s.attendances[rec.ID] = rec
	return nil
}
