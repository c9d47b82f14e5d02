package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type CalculateSalaryRequest struct {
	EmployeeID string           `json:"employee_id"`
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	A          *decimal.Decimal `json:"a"`
	B          *decimal.Decimal `json:"b"`
}

func (r *CalculateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year is out of range")
	}
	if (r.A == nil) != (r.B == nil) {
		errs.Add("a", "a and b must be given together")
	}
	if r.A != nil && r.A.IsNegative() {
		errs.Add("a", ErrInvalidRate.Error())
	}
	if r.B != nil && r.B.IsNegative() {
		errs.Add("b", ErrInvalidRate.Error())
	}

	return errs.Err()
}

type ListSalariesRequest struct {
	EmployeeID *string
	Year       *int
	Month      *int
}

type SalaryResponse struct {
	EmployeeID        string                     `json:"employee_id"`
	Year              int                        `json:"year"`
	Month             int                        `json:"month"`
	TotalSalary       decimal.Decimal            `json:"total_salary"`
	TotalHours        decimal.Decimal            `json:"total_hours"`
	OvertimeHours     decimal.Decimal            `json:"overtime_hours"`
	DayOffDays        int                        `json:"day_off_days"`
	HoursByDepartment map[string]decimal.Decimal `json:"hours_by_department"`
	TotalKm           decimal.Decimal            `json:"total_km"`
	A                 decimal.Decimal            `json:"a"`
	B                 decimal.Decimal            `json:"b"`
	CalculatedAt      string                     `json:"calculated_at"`
}

func ToResponse(s Salary) SalaryResponse {
	byDept := s.HoursByDepartment
	if byDept == nil {
		byDept = map[string]decimal.Decimal{}
	}
	return SalaryResponse{
		EmployeeID:        s.EmployeeID,
		Year:              s.Year,
		Month:             s.Month,
		TotalSalary:       s.TotalSalary,
		TotalHours:        Hours(s.WorkedMinutes).Round(2),
		OvertimeHours:     Hours(s.OvertimeMinutes).Round(2),
		DayOffDays:        s.DayOffDays,
		HoursByDepartment: byDept,
		TotalKm:           s.TotalKm,
		A:                 s.Rates.A,
		B:                 s.Rates.B,
		CalculatedAt:      s.CalculatedAt.Format(time.RFC3339),
	}
}
