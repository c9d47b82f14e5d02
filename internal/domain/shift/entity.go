package shift

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Template is a reusable shift design.
type Template struct {
	Code            string
	Name            string
	StartTime       string // HH:MM
	EndTime         string // HH:MM
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ParseClock converts HH:MM into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes after midnight into HH:MM.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationBetween returns end - start in minutes, wrapping past midnight.
func DurationBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	d := e - s
	if d < 0 {
		d += minutesPerDay
	}
	return d, nil
}

func (t Template) DurationHours() float64 {
	return float64(t.DurationMinutes) / 60
}

// Span is a shift's time range on a given calendar date. End is after
// Start; overnight shifts end on the following day.
type Span struct {
	Start time.Time
	End   time.Time
}

// SpanOn anchors start/end clock strings to date (midnight, business zone).
func SpanOn(date time.Time, start, end string) (Span, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Span{}, err
	}
	d, err := DurationBetween(start, end)
	if err != nil {
		return Span{}, err
	}
	y, m, day := date.Date()
	from := time.Date(y, m, day, s/60, s%60, 0, 0, date.Location())
	return Span{Start: from, End: from.Add(time.Duration(d) * time.Minute)}, nil
}
