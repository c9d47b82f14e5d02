package user

type Permission string

const (
	// Shift catalog
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Scheduling
	PermissionScheduleViewOwn Permission = "schedule.view_own"
	PermissionScheduleViewAll Permission = "schedule.view_all"
	PermissionScheduleAssign  Permission = "schedule.assign"

	// Attendance
	PermissionAttendanceRecord Permission = "attendance.record"
	PermissionAttendanceEdit   Permission = "attendance.edit"

	// Statistics and payroll
	PermissionStatsViewOwn     Permission = "stats.view_own"
	PermissionStatsViewAll     Permission = "stats.view_all"
	PermissionPayrollView      Permission = "payroll.view"
	PermissionPayrollCalculate Permission = "payroll.calculate"

	// Day off
	PermissionDayOffRequest Permission = "dayoff.request"
	PermissionDayOffDecide  Permission = "dayoff.decide"
	PermissionDayOffManage  Permission = "dayoff.manage"

	// Employees
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"
)

var managerPermissions = []Permission{
	PermissionShiftView,
	PermissionScheduleViewOwn,
	PermissionScheduleViewAll,
	PermissionScheduleAssign,
	PermissionAttendanceRecord,
	PermissionAttendanceEdit,
	PermissionStatsViewOwn,
	PermissionStatsViewAll,
	PermissionPayrollView,
	PermissionDayOffRequest,
	PermissionDayOffDecide,
	PermissionEmployeeView,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append(append([]Permission{}, managerPermissions...),
		PermissionShiftManage,
		PermissionPayrollCalculate,
		PermissionDayOffManage,
		PermissionEmployeeManage,
	),
	RoleOwner: append(append([]Permission{}, managerPermissions...),
		PermissionShiftManage,
		PermissionPayrollCalculate,
		PermissionDayOffManage,
		PermissionEmployeeManage,
	),
	RoleManager: managerPermissions,
	RoleEmployee: {
		PermissionShiftView,
		PermissionScheduleViewOwn,
		PermissionAttendanceRecord,
		PermissionAttendanceEdit,
		PermissionStatsViewOwn,
		PermissionDayOffRequest,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
