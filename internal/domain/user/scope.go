package user

// Scope is the set of records a caller may read or change. Admins see
// everything, owners and managers see the departments they belong to and
// employees see themselves.
type Scope struct {
	all         bool
	employeeID  string
	departments map[string]struct{}
}

// NewScope builds the scope of caller given the departments the caller is
// a member of.
func NewScope(caller Caller, memberOf []string) Scope {
	s := Scope{employeeID: caller.EmployeeID}
	switch caller.Role {
	case RoleAdmin:
		s.all = true
	case RoleOwner, RoleManager:
		s.departments = make(map[string]struct{}, len(memberOf))
		for _, d := range memberOf {
			s.departments[d] = struct{}{}
		}
	}
	return s
}

// Unrestricted returns the scope used by background jobs.
func Unrestricted() Scope {
	return Scope{all: true}
}

func (s Scope) IsUnrestricted() bool { return s.all }

// AllowsDepartment reports whether department-wide data of dept is visible.
func (s Scope) AllowsDepartment(dept string) bool {
	if s.all {
		return true
	}
	_, ok := s.departments[dept]
	return ok
}

// AllowsEmployee reports whether the employee with the given memberships is
// visible.
func (s Scope) AllowsEmployee(employeeID string, departments []string) bool {
	if s.all || employeeID == s.employeeID && employeeID != "" {
		return true
	}
	for _, d := range departments {
		if s.AllowsDepartment(d) {
			return true
		}
	}
	return false
}

// Departments lists the visible departments, nil when unrestricted.
func (s Scope) Departments() []string {
	if s.all {
		return nil
	}
	out := make([]string, 0, len(s.departments))
	for d := range s.departments {
		out = append(out, d)
	}
	return out
}

// SelfOnly reports whether the scope covers only the caller.
func (s Scope) SelfOnly() bool {
	return !s.all && len(s.departments) == 0
}

func (s Scope) EmployeeID() string { return s.employeeID }
