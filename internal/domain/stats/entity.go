package stats

import "time"

// Monthly is the per-employee rollup of scheduled against worked time.
type Monthly struct {
	EmployeeID       string
	Year             int
	Month            int
	DefaultMinutes   int
	RealisticMinutes int
	TotalMinutes     int
	// OvertimeMinutes is TotalMinutes minus DefaultMinutes once work is
	// booked. It is negative while the employee is below target.
	OvertimeMinutes int
	UpdatedAt        time.Time
}

// NewMonthly seeds a period from the employee's monthly target.
func NewMonthly(employeeID string, year, month, targetMinutes int) Monthly {
	return Monthly{
		EmployeeID:       employeeID,
		Year:             year,
		Month:            month,
		DefaultMinutes:   targetMinutes,
		RealisticMinutes: targetMinutes,
	}
}

// ConsumeScheduled lowers the realistic budget by a newly assigned shift.
func (m *Monthly) ConsumeScheduled(minutes int) {
	m.RealisticMinutes -= minutes
}

// AddWorked books worked minutes and recomputes overtime.
func (m *Monthly) AddWorked(minutes int) {
	m.TotalMinutes += minutes
	m.recompute()
}

func (m *Monthly) recompute() {
	m.OvertimeMinutes = m.TotalMinutes - m.DefaultMinutes
}

// DepartmentStat counts attendance days of one employee in one department.
type DepartmentStat struct {
	EmployeeID string
	Department string
	Year       int
	Month      int
	OnTime     float64
	Late       float64
	Missing    float64
}

// Credit is the day-equivalent booked when a shift closes. Every closed
// shift is worth exactly one day.
type Credit struct {
	OnTime  float64
	Late    float64
	Missing float64
}

var (
	CreditOnTime  = Credit{OnTime: 1}
	CreditLate    = Credit{Late: 1}
	CreditMixed   = Credit{OnTime: 0.5, Late: 0.5}
	CreditMissing = Credit{Missing: 1}
)

func (c Credit) Total() float64 {
	return c.OnTime + c.Late + c.Missing
}

func (d *DepartmentStat) Apply(c Credit) {
	d.OnTime += c.OnTime
	d.Late += c.Late
	d.Missing += c.Missing
}

// Period is a calendar month.
type Period struct {
	Year  int
	Month int
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}
