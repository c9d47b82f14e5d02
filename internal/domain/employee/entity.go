package employee

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
)

type Employee struct {
	ID                   string
	Name                 string
	Email                *string
	PasswordHash         *string
	Role                 user.Role
	Status               Status
	InactiveAt           *time.Time
	DefaultDayOff        int
	RealisticDayOff      int
	MonthlyTargetMinutes int
	Departments          []Membership
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Membership places an employee in a department with one or more positions.
// Ordinal fixes the department order used to break shift resolution ties.
type Membership struct {
	Department string
	Positions  []string
	Ordinal    int
}

const (
	PositionService    = "Service"
	PositionBar        = "Bar"
	PositionKitchen    = "Küche"
	PositionLito       = "Lito"
	PositionDriver     = "Autofahrer"
	PositionCyclist    = "Fahrradfahrer"
	PositionOffice     = "Büro"
	PositionApprentice = "Lehrgang für Azubi"
	PositionFacTech    = "FacTech GmbH"

	// DepartmentSchool holds mandatory training days that are credited
	// without check-in.
	DepartmentSchool   = "School"
	SchoolShiftMinutes = 8 * 60
)

var PositionValues = []string{
	PositionService,
	PositionBar,
	PositionKitchen,
	PositionLito,
	PositionDriver,
	PositionCyclist,
	PositionOffice,
	PositionApprentice,
	PositionFacTech,
}

// IsActiveAt reports whether the employee counts as active at t. A
// deactivation only takes effect once its instant has passed.
func (e Employee) IsActiveAt(t time.Time) bool {
	if e.InactiveAt != nil && !t.Before(*e.InactiveAt) {
		return false
	}
	return e.Status == StatusActive || e.InactiveAt != nil
}

func (e Employee) Membership(department string) (Membership, bool) {
	for _, m := range e.Departments {
		if m.Department == department {
			return m, true
		}
	}
	return Membership{}, false
}

func (e Employee) DepartmentNames() []string {
	names := make([]string, 0, len(e.Departments))
	for _, m := range e.Departments {
		names = append(names, m.Department)
	}
	return names
}

func (e Employee) HasPosition(department, position string) bool {
	m, ok := e.Membership(department)
	if !ok {
		return false
	}
	for _, p := range m.Positions {
		if p == position {
			return true
		}
	}
	return false
}

// DepartmentOrdinal returns the tie-break rank of department, or -1.
func (e Employee) DepartmentOrdinal(department string) int {
	m, ok := e.Membership(department)
	if !ok {
		return -1
	}
	return m.Ordinal
}
