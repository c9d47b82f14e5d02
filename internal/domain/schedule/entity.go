package schedule

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
)

// BufferMinutes separates two shifts of one employee on the same day.
const BufferMinutes = 30

// Assignment is one shift placed on an employee's calendar. The time slot
// is a snapshot of the shift template at assignment time.
type Assignment struct {
	ID              string
	EmployeeID      string
	Department      string
	Date            time.Time // midnight, business zone
	Position        string
	ShiftCode       string
	ShiftName       string
	StartTime       string
	EndTime         string
	DurationMinutes int
	TimeLeftMinutes int
	Seq             int64
	CreatedAt       time.Time
}

func (a Assignment) Span() (shift.Span, error) {
	return shift.SpanOn(a.Date, a.StartTime, a.EndTime)
}

// Conflicts reports whether candidate collides with existing: it starts or
// ends inside existing, or starts no later than BufferMinutes after
// existing ends. The buffer rule is one-way, so a candidate placed earlier
// on the same day is rejected too.
func Conflicts(candidate, existing shift.Span) bool {
	buf := BufferMinutes * time.Minute
	startsDuring := !candidate.Start.Before(existing.Start) && candidate.Start.Before(existing.End)
	endsDuring := candidate.End.After(existing.Start) && !candidate.End.After(existing.End)
	startsInBuffer := !candidate.Start.After(existing.End.Add(buf))
	return startsDuring || endsDuring || startsInBuffer
}

// Failure explains why one date of a batch was not assigned.
type Failure struct {
	Date   time.Time
	Reason error
}

// BatchResult reports a multi-date operation. Dates are independent.
type BatchResult struct {
	Succeeded []time.Time
	Failed    []Failure
}

func (r *BatchResult) Ok(date time.Time) {
	r.Succeeded = append(r.Succeeded, date)
}

func (r *BatchResult) Fail(date time.Time, reason error) {
	r.Failed = append(r.Failed, Failure{Date: date, Reason: reason})
}
