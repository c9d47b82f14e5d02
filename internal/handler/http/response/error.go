package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrRefreshTokenUnknown),
		errors.Is(err, user.ErrCallerMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, err.Error())

	// Access
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrOutOfScope),
		errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, shift.ErrShiftNotFound),
		errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, stats.ErrStatsNotFound),
		errors.Is(err, payroll.ErrStatsNotFound),
		errors.Is(err, payroll.ErrSalaryNotFound),
		errors.Is(err, dayoff.ErrDayOffNotFound),
		errors.Is(err, attendance.ErrNoMatchingShift):
		NotFound(w, err.Error())

	// Conflict
	case errors.Is(err, shift.ErrShiftCodeExists),
		errors.Is(err, shift.ErrShiftNameExists),
		errors.Is(err, employee.ErrEmployeeIDExists),
		errors.Is(err, employee.ErrConcurrentUpdate),
		errors.Is(err, schedule.ErrShiftConflict),
		errors.Is(err, schedule.ErrDuplicateShiftCode),
		errors.Is(err, schedule.ErrDateOnDayOff),
		errors.Is(err, dayoff.ErrDayOffExists),
		errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, err.Error())

	// Invalid state
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrTooEarly),
		errors.Is(err, attendance.ErrOutOfWindow),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAttendanceClosed),
		errors.Is(err, attendance.ErrDetailsBeforeCheckIn),
		errors.Is(err, attendance.ErrDetailsAfterCheckOut),
		errors.Is(err, dayoff.ErrRequestAlreadyDecided),
		errors.Is(err, dayoff.ErrNotARequest):
		Conflict(w, err.Error())

	// Invalid input
	case errors.Is(err, attendance.ErrDetailsNotSupported),
		errors.Is(err, attendance.ErrInvalidKilometers),
		errors.Is(err, employee.ErrNotInDepartment),
		errors.Is(err, employee.ErrPositionNotHeld),
		errors.Is(err, employee.ErrInvalidPosition),
		errors.Is(err, employee.ErrInvalidDeactivate),
		errors.Is(err, schedule.ErrNoDates),
		errors.Is(err, shift.ErrInvalidClock),
		errors.Is(err, dayoff.ErrInsufficientBalance),
		errors.Is(err, dayoff.ErrRequestTooSoon),
		errors.Is(err, payroll.ErrRateRequired),
		errors.Is(err, payroll.ErrInvalidRate):
		UnprocessableEntity(w, err.Error())

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
