package employee

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type MembershipRequest struct {
	Department string   `json:"department"`
	Positions  []string `json:"positions"`
}

type CreateEmployeeRequest struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Email              *string             `json:"email"`
	Password           string              `json:"password"`
	Role               string              `json:"role"`
	DefaultDayOff      int                 `json:"default_day_off"`
	MonthlyTargetHours float64             `json:"total_time_per_month"`
	Departments        []MembershipRequest `json:"departments"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.ID) {
		errs.Add("id", "id must be 2-64 letters, digits, dot, dash or underscore")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}
	if !validator.IsInSlice(r.Role, user.RoleValues) {
		errs.Add("role", "role must be one of: "+strings.Join(user.RoleValues, ", "))
	}
	if r.DefaultDayOff < 0 {
		errs.Add("default_day_off", "default_day_off must be non-negative")
	}
	if r.MonthlyTargetHours < 0 {
		errs.Add("total_time_per_month", "total_time_per_month must be non-negative")
	}
	seen := make(map[string]bool)
	for _, m := range r.Departments {
		if validator.IsEmpty(m.Department) {
			errs.Add("departments", "department name is required")
			continue
		}
		if seen[m.Department] {
			errs.Add("departments", "duplicate department "+m.Department)
		}
		seen[m.Department] = true
		if len(m.Positions) == 0 {
			errs.Add("departments", "department "+m.Department+" needs at least one position")
		}
		for _, p := range m.Positions {
			if !validator.IsInSlice(p, PositionValues) {
				errs.Add("departments", "position must be one of: "+strings.Join(PositionValues, ", "))
			}
		}
	}

	return errs.Err()
}

// MonthlyTargetMinutes converts the requested hour budget to minutes.
func (r *CreateEmployeeRequest) MonthlyTargetMinutes() int {
	return int(math.Round(r.MonthlyTargetHours * 60))
}

type DeactivateEmployeeRequest struct {
	EmployeeID  string `json:"-"`
	EffectiveAt string `json:"effective_at"` // RFC3339, defaults to now
}

type ListEmployeeRequest struct {
	Department *string
	ActiveOnly bool
}

type MembershipResponse struct {
	Department string   `json:"department"`
	Positions  []string `json:"positions"`
}

type EmployeeResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Email              *string              `json:"email,omitempty"`
	Role               string               `json:"role"`
	Status             string               `json:"status"`
	InactiveAt         *string              `json:"inactive_at,omitempty"`
	DefaultDayOff      int                  `json:"default_day_off"`
	RealisticDayOff    int                  `json:"realistic_day_off"`
	MonthlyTargetHours float64              `json:"total_time_per_month"`
	Departments        []MembershipResponse `json:"departments"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Email:              e.Email,
		Role:               string(e.Role),
		Status:             string(e.Status),
		DefaultDayOff:      e.DefaultDayOff,
		RealisticDayOff:    e.RealisticDayOff,
		MonthlyTargetHours: float64(e.MonthlyTargetMinutes) / 60,
		Departments:        make([]MembershipResponse, 0, len(e.Departments)),
	}
	if e.InactiveAt != nil {
		s := e.InactiveAt.Format(time.RFC3339)
		resp.InactiveAt = &s
	}
	for _, m := range e.Departments {
		resp.Departments = append(resp.Departments, MembershipResponse{Department: m.Department, Positions: m.Positions})
	}
	return resp
}
