package dayoff

import "time"

type Kind string

const (
	KindGlobal   Kind = "global"   // applies to every active employee
	KindSpecific Kind = "specific" // applies to one employee
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Period is a run of days off. Only allowed periods block scheduling and
// consume balances.
type Period struct {
	ID         string
	StartDate  time.Time
	EndDate    time.Time
	Duration   int
	Kind       Kind
	Allowed    bool
	Status     Status
	EmployeeID *string
	Reason     *string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Duration counts the days from start to end inclusive, in either order.
func Duration(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	d := e.Sub(s)
	if d < 0 {
		d = -d
	}
	return int(d/(24*time.Hour)) + 1
}

// Contains reports whether date falls on a day of the period.
func (p Period) Contains(date time.Time) bool {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, p.StartDate.Location())
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// AppliesTo reports whether the period covers employeeID.
func (p Period) AppliesTo(employeeID string) bool {
	return p.Kind == KindGlobal || p.EmployeeID != nil && *p.EmployeeID == employeeID
}

// Consumption is the ledger row written when a period lowers an employee's
// balance. It is attributed to the month the period starts in.
type Consumption struct {
	DayOffID     string
	EmployeeID   string
	ConsumedDays int
	PeriodYear   int
	PeriodMonth  int
	ConsumedAt   time.Time
}

func NewConsumption(p Period, employeeID string, now time.Time) Consumption {
	return Consumption{
		DayOffID:     p.ID,
		EmployeeID:   employeeID,
		ConsumedDays: p.Duration,
		PeriodYear:   p.StartDate.Year(),
		PeriodMonth:  int(p.StartDate.Month()),
		ConsumedAt:   now,
	}
}

// MinRequestLeadMonths is how far ahead an employee must ask for time off.
const MinRequestLeadMonths = 1
