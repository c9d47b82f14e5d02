package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rates are the two pay parameters of a salary: A per worked hour and B
// the monthly base from which a paid day off is derived.
type Rates struct {
	A decimal.Decimal
	B decimal.Decimal
}

// Salary is the computed pay of one employee for one month.
type Salary struct {
	EmployeeID        string
	Year              int
	Month             int
	TotalSalary       decimal.Decimal
	WorkedMinutes     int
	OvertimeMinutes   int
	DayOffDays        int
	HoursByDepartment map[string]decimal.Decimal
	TotalKm           decimal.Decimal
	Rates             Rates
	CalculatedAt      time.Time
}

var (
	dayOffFactor  = decimal.NewFromInt(3)
	dayOffDivisor = decimal.NewFromInt(65)
	sixty         = decimal.NewFromInt(60)
)

// Hours converts minutes to decimal hours.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// DayOffPay is what one paid day off is worth under rate b.
func DayOffPay(b decimal.Decimal) decimal.Decimal {
	return b.Mul(dayOffFactor).Div(dayOffDivisor)
}

// Total computes a × (worked + overtime hours) + dayOffDays × b×3/65,
// rounded to cents. Overtime below zero lowers the total.
func Total(r Rates, workedMinutes, overtimeMinutes, dayOffDays int) decimal.Decimal {
	hours := Hours(workedMinutes).Add(Hours(overtimeMinutes))
	return r.A.Mul(hours).
		Add(decimal.NewFromInt(int64(dayOffDays)).Mul(DayOffPay(r.B))).
		Round(2)
}
