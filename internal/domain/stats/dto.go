package stats

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type GetStatsRequest struct {
	EmployeeID *string
	Department *string
	Year       *int
	Month      *int
}

func (r *GetStatsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != nil && !validator.IsValidMonth(*r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if r.Year != nil && (*r.Year < 2000 || *r.Year > 2100) {
		errs.Add("year", "year is out of range")
	}

	return errs.Err()
}

type MonthlyResponse struct {
	EmployeeID     string  `json:"employee_id"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	DefaultHours   float64 `json:"default_schedule_times"`
	RealisticHours float64 `json:"realistic_schedule_times"`
	TotalHours     float64 `json:"attendance_total_times"`
	OvertimeHours  float64 `json:"attendance_overtime"`
}

type DepartmentStatResponse struct {
	EmployeeID string  `json:"employee_id"`
	Department string  `json:"department_name"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	OnTime     float64 `json:"date_on_time"`
	Late       float64 `json:"date_late"`
	Missing    float64 `json:"date_missing"`
}

type StatsResponse struct {
	Monthly     []MonthlyResponse        `json:"monthly"`
	Departments []DepartmentStatResponse `json:"departments"`
}

func hours(minutes int) float64 {
	return float64(minutes) / 60
}

func ToMonthlyResponse(m Monthly) MonthlyResponse {
	return MonthlyResponse{
		EmployeeID:     m.EmployeeID,
		Year:           m.Year,
		Month:          m.Month,
		DefaultHours:   hours(m.DefaultMinutes),
		RealisticHours: hours(m.RealisticMinutes),
		TotalHours:     hours(m.TotalMinutes),
		OvertimeHours:  hours(m.OvertimeMinutes),
	}
}

func ToDepartmentStatResponse(d DepartmentStat) DepartmentStatResponse {
	return DepartmentStatResponse{
		EmployeeID: d.EmployeeID,
		Department: d.Department,
		Year:       d.Year,
		Month:      d.Month,
		OnTime:     d.OnTime,
		Late:       d.Late,
		Missing:    d.Missing,
	}
}
