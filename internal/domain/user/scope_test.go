package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_Admin(t *testing.T) {
	s := NewScope(Caller{EmployeeID: "A1", Role: RoleAdmin}, nil)

	assert.True(t, s.IsUnrestricted())
	assert.True(t, s.AllowsDepartment("C2"))
	assert.True(t, s.AllowsEmployee("E9", []string{"Other"}))
	assert.Nil(t, s.Departments())
}

func TestScope_ManagerSeesOwnDepartments(t *testing.T) {
	s := NewScope(Caller{EmployeeID: "M1", Role: RoleManager}, []string{"C2", "C6"})

	assert.True(t, s.AllowsDepartment("C2"))
	assert.False(t, s.AllowsDepartment("C Ulm"))
	assert.True(t, s.AllowsEmployee("E1", []string{"C Ulm", "C6"}))
	assert.False(t, s.AllowsEmployee("E2", []string{"C Ulm"}))
	assert.True(t, s.AllowsEmployee("M1", nil))
	assert.ElementsMatch(t, []string{"C2", "C6"}, s.Departments())
	assert.False(t, s.SelfOnly())
}

func TestScope_EmployeeSeesSelfOnly(t *testing.T) {
	s := NewScope(Caller{EmployeeID: "E1", Role: RoleEmployee}, []string{"C2"})

	assert.True(t, s.SelfOnly())
	assert.True(t, s.AllowsEmployee("E1", []string{"C2"}))
	assert.False(t, s.AllowsEmployee("E2", []string{"C2"}))
	assert.False(t, s.AllowsDepartment("C2"))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleOwner, PermissionPayrollCalculate))
	assert.False(t, HasPermission(RoleManager, PermissionPayrollCalculate))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceRecord))
	assert.False(t, HasPermission(RoleEmployee, PermissionScheduleAssign))
	assert.False(t, HasPermission(Role("pending"), PermissionShiftView))
}
