package dayoff

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type CreateDayOffRequest struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Kind       string  `json:"kind"`
	EmployeeID *string `json:"employee_id"`
	Reason     *string `json:"reason"`
}

func (r *CreateDayOffRequest) Validate() error {
	var errs validator.ValidationErrors

	validateRange(&errs, r.StartDate, r.EndDate)
	switch Kind(r.Kind) {
	case KindGlobal:
		if r.EmployeeID != nil {
			errs.Add("employee_id", "employee_id must be empty for a global day off")
		}
	case KindSpecific:
		if r.EmployeeID == nil || validator.IsEmpty(*r.EmployeeID) {
			errs.Add("employee_id", "employee_id is required for a specific day off")
		}
	default:
		errs.Add("kind", "kind must be global or specific")
	}

	return errs.Err()
}

type RequestDayOffRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason"`
}

func (r *RequestDayOffRequest) Validate() error {
	var errs validator.ValidationErrors
	validateRange(&errs, r.StartDate, r.EndDate)
	return errs.Err()
}

type DecideRequest struct {
	ID      string `json:"-"`
	Approve bool   `json:"approve"`
}

type ListDayOffRequest struct {
	EmployeeID *string
	Status     *string
}

func (r *ListDayOffRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusPending), string(StatusApproved), string(StatusDenied)}) {
		errs.Add("status", "status must be pending, approved or denied")
	}
	return errs.Err()
}

func validateRange(errs *validator.ValidationErrors, start, end string) {
	s, okStart := validator.IsValidDate(start)
	if !okStart {
		errs.Add("start_date", "start_date must be YYYY-MM-DD or MM/DD/YYYY")
	}
	e, okEnd := validator.IsValidDate(end)
	if !okEnd {
		errs.Add("end_date", "end_date must be YYYY-MM-DD or MM/DD/YYYY")
	}
	if okStart && okEnd && e.Before(s) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

type DayOffResponse struct {
	ID         string  `json:"id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Duration   int     `json:"duration"`
	Kind       string  `json:"kind"`
	Allowed    bool    `json:"allowed"`
	Status     string  `json:"status"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Reason     *string `json:"reason,omitempty"`
	CreatedBy  string  `json:"created_by"`
}

func ToResponse(p Period) DayOffResponse {
	return DayOffResponse{
		ID:         p.ID,
		StartDate:  p.StartDate.Format("2006-01-02"),
		EndDate:    p.EndDate.Format("2006-01-02"),
		Duration:   p.Duration,
		Kind:       string(p.Kind),
		Allowed:    p.Allowed,
		Status:     string(p.Status),
		EmployeeID: p.EmployeeID,
		Reason:     p.Reason,
		CreatedBy:  p.CreatedBy,
	}
}
