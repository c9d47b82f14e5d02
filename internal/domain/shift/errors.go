package shift

import "errors"

var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftCodeExists = errors.New("shift with this code already exists")
	ErrShiftNameExists = errors.New("shift with this name already exists")
	ErrInvalidClock    = errors.New("invalid time of day, use HH:MM")
)
