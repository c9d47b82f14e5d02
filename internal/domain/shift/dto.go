package shift

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs.Add("code", "code is required")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if !validator.IsValidClock(r.StartTime) {
		errs.Add("start_time", "start_time must be HH:MM")
	}
	if !validator.IsValidClock(r.EndTime) {
		errs.Add("end_time", "end_time must be HH:MM")
	}
	if r.StartTime == r.EndTime && r.StartTime != "" {
		errs.Add("end_time", "end_time must differ from start_time")
	}

	return errs.Err()
}

type UpdateShiftRequest struct {
	Code      string  `json:"-"`
	Name      *string `json:"name"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name cannot be empty")
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs.Add("start_time", "start_time must be HH:MM")
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs.Add("end_time", "end_time must be HH:MM")
	}

	return errs.Err()
}

type ShiftResponse struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func ToResponse(t Template) ShiftResponse {
	return ShiftResponse{
		Code:          t.Code,
		Name:          t.Name,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		DurationHours: t.DurationHours(),
		CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
