package attendance

import "errors"

var (
	// Punch errors
	ErrNoMatchingShift   = errors.New("no assigned shift matches the current time")
	ErrTooEarly          = errors.New("too early to check in")
	ErrAlreadyCheckedIn  = errors.New("you have already checked in for this shift")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrOutOfWindow       = errors.New("outside the allowed time window for this shift")
	ErrAttendanceClosed  = errors.New("attendance was closed as missing")

	// Record errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrRecordExists       = errors.New("attendance record already exists for this shift")

	// Position details errors
	ErrDetailsNotSupported  = errors.New("position has no extra attendance details")
	ErrDetailsBeforeCheckIn = errors.New("details can only be recorded after check-in")
	ErrDetailsAfterCheckOut = errors.New("details can only be recorded after check-out")
	ErrInvalidKilometers    = errors.New("check-out kilometers must not be below check-in kilometers")
)
