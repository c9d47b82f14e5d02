package attendance

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
)

// WindowMinutes widens a shift on both sides for punching.
const WindowMinutes = 30

type Status string

const (
	StatusOpen    Status = "open"
	StatusChecked Status = "checked"
	StatusMissing Status = "missing"
)

type Punctuality string

const (
	OnTime Punctuality = "on_time"
	Late   Punctuality = "late"
)

// Record is the attendance of one employee for one assigned shift.
// (EmployeeID, Date, ShiftCode) is unique.
type Record struct {
	ID             string
	EmployeeID     string
	Department     string
	Position       string
	ShiftCode      string
	Date           time.Time
	ShiftStart     string
	ShiftEnd       string
	CheckInAt      *time.Time
	CheckInStatus  *Punctuality
	CheckOutAt     *time.Time
	CheckOutStatus *Punctuality
	WorkedMinutes  int
	Status         Status
	Details        Details
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// State is the recorder state of one assignment.
type State int

const (
	StateAwaitingCheckIn State = iota
	StateCheckedIn
	StateCheckedOut
	StateMissing
)

func (r *Record) State() State {
	if r == nil {
		return StateAwaitingCheckIn
	}
	switch r.Status {
	case StatusMissing:
		return StateMissing
	case StatusChecked:
		return StateCheckedOut
	}
	if r.CheckInAt == nil {
		return StateAwaitingCheckIn
	}
	return StateCheckedIn
}

// IsClosed reports whether the record reached a terminal state.
func (r *Record) IsClosed() bool {
	s := r.State()
	return s == StateCheckedOut || s == StateMissing
}

func (r Record) Span() (shift.Span, error) {
	return shift.SpanOn(r.Date, r.ShiftStart, r.ShiftEnd)
}

// NewRecord opens a record for an assignment.
func NewRecord(id string, a schedule.Assignment, now time.Time) Record {
	return Record{
		ID:         id,
		EmployeeID: a.EmployeeID,
		Department: a.Department,
		Position:   a.Position,
		ShiftCode:  a.ShiftCode,
		Date:       a.Date,
		ShiftStart: a.StartTime,
		ShiftEnd:   a.EndTime,
		Status:     StatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CheckIn stamps the arrival.
func (r *Record) CheckIn(at time.Time, p Punctuality) {
	r.CheckInAt = &at
	r.CheckInStatus = &p
	r.UpdatedAt = at
}

// CheckOut closes the record and returns the credit to book.
func (r *Record) CheckOut(at time.Time, p Punctuality, updatedAt time.Time) stats.Credit {
	r.CheckOutAt = &at
	r.CheckOutStatus = &p
	r.WorkedMinutes = WorkedMinutes(*r.CheckInAt, at)
	r.Status = StatusChecked
	r.UpdatedAt = updatedAt
	return CreditFor(*r.CheckInStatus, p)
}

// MarkMissing closes an unattended shift.
func (r *Record) MarkMissing(now time.Time) stats.Credit {
	r.Status = StatusMissing
	r.UpdatedAt = now
	return stats.CreditMissing
}

// WorkedMinutes is the floored minute count between in and out.
func WorkedMinutes(in, out time.Time) int {
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in) / time.Minute)
}

// CreditFor maps the two punch statuses of a closed shift to one day of
// credit: both on time, both late, or half of each.
func CreditFor(in, out Punctuality) stats.Credit {
	switch {
	case in == OnTime && out == OnTime:
		return stats.CreditOnTime
	case in == Late && out == Late:
		return stats.CreditLate
	default:
		return stats.CreditMixed
	}
}

// ClassifyCheckIn grades an arrival at now against span.
func ClassifyCheckIn(span shift.Span, now time.Time) (Punctuality, error) {
	w := WindowMinutes * time.Minute
	switch {
	case now.Before(span.Start.Add(-w)):
		return "", ErrTooEarly
	case now.Before(span.Start):
		return OnTime, nil
	case now.Before(span.End):
		return Late, nil
	default:
		return "", ErrOutOfWindow
	}
}

// ClassifyCheckOut grades a departure at now against span.
func ClassifyCheckOut(span shift.Span, now time.Time) (Punctuality, error) {
	w := WindowMinutes * time.Minute
	switch {
	case now.Before(span.Start), now.After(span.End.Add(w)):
		return "", ErrOutOfWindow
	case !now.After(span.End):
		return OnTime, nil
	default:
		return Late, nil
	}
}

// InWindow reports whether now lies in [start-30, end+30].
func InWindow(span shift.Span, now time.Time) bool {
	w := WindowMinutes * time.Minute
	return !now.Before(span.Start.Add(-w)) && !now.After(span.End.Add(w))
}

// Elapsed reports whether the punch window of span closed before now.
func Elapsed(span shift.Span, now time.Time) bool {
	return now.After(span.End.Add(WindowMinutes * time.Minute))
}
