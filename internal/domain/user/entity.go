package user

type Role string

const (
	RoleAdmin    Role = "admin"    // System operator - every department
	RoleOwner    Role = "owner"    // Inhaber - owns one or more departments
	RoleManager  Role = "manager"  // Runs the departments they belong to
	RoleEmployee Role = "employee" // Sees only their own data
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleOwner),
	string(RoleManager),
	string(RoleEmployee),
}

// Caller is the authenticated principal of a request.
type Caller struct {
	EmployeeID string
	Role       Role
}

// IsManager checks if the caller manages at least one department
func (c Caller) IsManager() bool {
	return c.Role == RoleAdmin || c.Role == RoleOwner || c.Role == RoleManager
}

// IsAdmin checks if the caller is a system admin
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
