package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule entry not found")
	ErrShiftConflict      = errors.New("shift conflicts with an existing assignment")
	ErrDuplicateShiftCode = errors.New("shift already assigned on this date in this department")
	ErrDateOnDayOff       = errors.New("date falls on an allowed day off")
	ErrNoDates            = errors.New("at least one date is required")
)
