package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
)

type Operation int

const (
	OpCheckIn Operation = iota
	OpCheckOut
)

// Candidate is an assignment the caller might be punching for.
type Candidate struct {
	Assignment schedule.Assignment
	Span       shift.Span
	Ordinal    int // department rank of the employee
	Record     *Record
}

// Resolution is the shift chosen for a punch and its grading.
type Resolution struct {
	Candidate   Candidate
	Punctuality Punctuality
}

// Resolve picks the shift a punch at now belongs to. Candidates are ordered
// by date, department rank and assignment order; the first one whose window
// holds now and whose record admits op wins. When windows match but none
// admits op, the error of the first match is returned.
func Resolve(candidates []Candidate, now time.Time, op Operation) (Resolution, error) {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Assignment, ordered[j].Assignment
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if ordered[i].Ordinal != ordered[j].Ordinal {
			return ordered[i].Ordinal < ordered[j].Ordinal
		}
		return a.Seq < b.Seq
	})

	var firstErr error
	upcoming := false
	for _, c := range ordered {
		if !InWindow(c.Span, now) {
			if now.Before(c.Span.Start) {
				upcoming = true
			}
			continue
		}
		p, err := admit(c, now, op)
		if err == nil {
			return Resolution{Candidate: c, Punctuality: p}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	switch {
	case firstErr != nil:
		return Resolution{}, firstErr
	case upcoming && op == OpCheckIn:
		return Resolution{}, ErrTooEarly
	default:
		return Resolution{}, ErrNoMatchingShift
	}
}

func admit(c Candidate, now time.Time, op Operation) (Punctuality, error) {
	state := c.Record.State()
	if op == OpCheckIn {
		switch state {
		case StateCheckedIn, StateCheckedOut:
			return "", ErrAlreadyCheckedIn
		case StateMissing:
			return "", ErrAttendanceClosed
		}
		return ClassifyCheckIn(c.Span, now)
	}

	switch state {
	case StateAwaitingCheckIn:
		return "", ErrNotCheckedIn
	case StateCheckedOut:
		return "", ErrAlreadyCheckedOut
	case StateMissing:
		return "", ErrAttendanceClosed
	}
	return ClassifyCheckOut(c.Span, now)
}
