package dayoff

import "errors"

var (
	ErrDayOffNotFound        = errors.New("day off not found")
	ErrDayOffExists          = errors.New("a day off with the same dates and kind already exists")
	ErrAlreadyConsumed       = errors.New("day off already consumed for this employee")
	ErrInsufficientBalance   = errors.New("insufficient day-off balance")
	ErrRequestTooSoon        = errors.New("day off must be requested at least one month ahead")
	ErrRequestAlreadyDecided = errors.New("day-off request already decided")
	ErrNotARequest           = errors.New("day off is not an employee request")
)
