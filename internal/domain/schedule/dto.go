package schedule

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type AssignShiftRequest struct {
	EmployeeID string   `json:"-"`
	Department string   `json:"department"`
	ShiftCode  string   `json:"shift_code"`
	Position   string   `json:"position"`
	Dates      []string `json:"dates"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.Department) {
		errs.Add("department", "department is required")
	}
	if validator.IsEmpty(r.ShiftCode) {
		errs.Add("shift_code", "shift_code is required")
	}
	if validator.IsEmpty(r.Position) {
		errs.Add("position", "position is required")
	}
	if len(r.Dates) == 0 {
		errs.Add("dates", ErrNoDates.Error())
	}
	for _, d := range r.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs.Add("dates", "invalid date "+d+", use YYYY-MM-DD or MM/DD/YYYY")
		}
	}

	return errs.Err()
}

type GetScheduleRequest struct {
	EmployeeID string
	Department *string
	Year       *int
	Month      *int
	Date       *string
}

func (r *GetScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != nil && !validator.IsValidMonth(*r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if r.Month != nil && r.Year == nil {
		errs.Add("year", "year is required with month")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD or MM/DD/YYYY")
		}
	}

	return errs.Err()
}

type DeleteScheduleEntryRequest struct {
	EmployeeID string
	Date       string
}

func (r *DeleteScheduleEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD or MM/DD/YYYY")
	}

	return errs.Err()
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Department    string  `json:"department"`
	Date          string  `json:"date"`
	Position      string  `json:"position"`
	ShiftCode     string  `json:"shift_code"`
	ShiftName     string  `json:"shift_name"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration"`
	TimeLeftHours float64 `json:"time_left"`
}

func ToAssignmentResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Department:    a.Department,
		Date:          a.Date.Format(dateLayout),
		Position:      a.Position,
		ShiftCode:     a.ShiftCode,
		ShiftName:     a.ShiftName,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		DurationHours: float64(a.DurationMinutes) / 60,
		TimeLeftHours: float64(a.TimeLeftMinutes) / 60,
	}
}

type FailureResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type AssignShiftResponse struct {
	Calendar  []AssignmentResponse `json:"calendar"`
	Succeeded []string             `json:"succeeded"`
	Failed    []FailureResponse    `json:"failed"`
}

func ToAssignShiftResponse(calendar []Assignment, result BatchResult) AssignShiftResponse {
	resp := AssignShiftResponse{
		Calendar:  make([]AssignmentResponse, 0, len(calendar)),
		Succeeded: make([]string, 0, len(result.Succeeded)),
		Failed:    make([]FailureResponse, 0, len(result.Failed)),
	}
	for _, a := range calendar {
		resp.Calendar = append(resp.Calendar, ToAssignmentResponse(a))
	}
	for _, d := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, d.Format(dateLayout))
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, FailureResponse{Date: f.Date.Format(dateLayout), Reason: f.Reason.Error()})
	}
	return resp
}

// FormatDate renders a calendar date the way responses do.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
