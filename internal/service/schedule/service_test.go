package schedule

import (
	"bytes"
	"context"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/servicetest"
)

type fixture struct {
	env *servicetest.Env
	svc schedule.ScheduleService
}

func setup(t *testing.T) fixture {
	env := servicetest.New(t, servicetest.At(2024, 3, 1, 9, 0))
	svc := NewScheduleService(Dependencies{
		Schedules:   env.Store.Schedules(),
		Shifts:      env.Store.Shifts(),
		DayOffs:     env.Store.DayOffs(),
		Attendances: env.Store.Attendances(),
		Audit:       env.Store.Audit(),
		Ledger:      env.Ledger,
		Access:      env.Access,
		Guard:       env.Guard,
		Clock:       env.Clock,
	})

	env.AddEmployee(t, "admin", user.RoleAdmin, 0, 0)
	env.AddEmployee(t, "mgr-b", user.RoleManager, 160, 0, servicetest.Member("B", employee.PositionBar))
	env.AddEmployee(t, "E1", user.RoleEmployee, 160, 5,
		servicetest.Member("A", employee.PositionService),
		servicetest.Member("B", employee.PositionBar),
		servicetest.Member(employee.DepartmentSchool, employee.PositionApprentice),
	)
	env.AddShift(t, "S1", "08:00", "16:30")
	env.AddShift(t, "S2", "16:45", "22:00")
	env.AddShift(t, "S3", "17:31", "23:00")
	env.AddShift(t, "SCH", "08:00", "15:00")

	return fixture{env: env, svc: svc}
}

func assign(dept, code, position string, dates ...string) schedule.AssignShiftRequest {
	return schedule.AssignShiftRequest{EmployeeID: "E1", Department: dept, ShiftCode: code, Position: position, Dates: dates}
}

var admin = servicetest.As("admin", user.RoleAdmin)

func TestAssignShift_ConflictAcrossDepartments(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04"}, resp.Succeeded)

	resp, err = f.svc.AssignShift(admin, assign("B", "S2", employee.PositionBar, "2024-03-04"))
	require.NoError(t, err)
	assert.Empty(t, resp.Succeeded)
	require.Len(t, resp.Failed, 1)
	assert.Contains(t, resp.Failed[0].Reason, schedule.ErrShiftConflict.Error())

	resp, err = f.svc.AssignShift(admin, assign("B", "S3", employee.PositionBar, "2024-03-04"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04"}, resp.Succeeded)
	assert.Len(t, resp.Calendar, 2)
}

func TestAssignShift_RejectsEarlierShiftSameDay(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.AssignShift(admin, assign("B", "S3", employee.PositionBar, "2024-03-04"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04"}, resp.Succeeded)

	resp, err = f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04"))
	require.NoError(t, err)
	assert.Empty(t, resp.Succeeded)
	require.Len(t, resp.Failed, 1)
	assert.Contains(t, resp.Failed[0].Reason, schedule.ErrShiftConflict.Error())
}

func TestAssignShift_DecrementsRealisticMinutes(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04", "2024-03-05"))
	require.NoError(t, err)
	require.Len(t, resp.Succeeded, 2)

	m, err := f.env.Store.Stats().GetMonthly(context.Background(), "E1", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 160*60, m.DefaultMinutes)
	assert.Equal(t, 160*60-2*510, m.RealisticMinutes)

	// time left snapshot follows the running balance
	assert.Equal(t, 160.0-17, resp.Calendar[1].TimeLeftHours)
}

func TestAssignShift_PartialBatch(t *testing.T) {
	f := setup(t)
	e1 := "E1"
	_, err := f.env.Store.DayOffs().Create(context.Background(), dayoff.Period{
		ID:         "off",
		StartDate:  servicetest.Date(2024, 3, 5),
		EndDate:    servicetest.Date(2024, 3, 6),
		Duration:   2,
		Kind:       dayoff.KindSpecific,
		Allowed:    true,
		Status:     dayoff.StatusApproved,
		EmployeeID: &e1,
	})
	require.NoError(t, err)

	_, err = f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04"))
	require.NoError(t, err)

	resp, err := f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04", "2024-03-05", "2024-03-07"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-07"}, resp.Succeeded)
	require.Len(t, resp.Failed, 2)
	assert.Equal(t, schedule.FailureResponse{Date: "2024-03-04", Reason: schedule.ErrDuplicateShiftCode.Error()}, resp.Failed[0])
	assert.Equal(t, schedule.FailureResponse{Date: "2024-03-05", Reason: schedule.ErrDateOnDayOff.Error()}, resp.Failed[1])
}

func TestAssignShift_SchoolCreditsAttendance(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AssignShift(admin, assign(employee.DepartmentSchool, "SCH", employee.PositionApprentice, "2024-03-04"))
	require.NoError(t, err)

	rec, err := f.env.Store.Attendances().GetByKey(context.Background(), "E1", servicetest.Date(2024, 3, 4), "SCH")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusChecked, rec.Status)
	assert.Equal(t, employee.SchoolShiftMinutes, rec.WorkedMinutes)

	d, err := f.env.Store.Stats().GetDepartment(context.Background(), "E1", employee.DepartmentSchool, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.OnTime)

	m, err := f.env.Store.Stats().GetMonthly(context.Background(), "E1", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, employee.SchoolShiftMinutes, m.TotalMinutes)
}

func TestAssignShift_Authorization(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AssignShift(servicetest.As("mgr-b", user.RoleManager), assign("A", "S1", employee.PositionService, "2024-03-04"))
	assert.ErrorIs(t, err, user.ErrOutOfScope)

	_, err = f.svc.AssignShift(servicetest.As("E1", user.RoleEmployee), assign("A", "S1", employee.PositionService, "2024-03-04"))
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = f.svc.AssignShift(servicetest.As("mgr-b", user.RoleManager), assign("B", "S1", employee.PositionBar, "2024-03-04"))
	assert.NoError(t, err)

	_, err = f.svc.AssignShift(admin, assign("A", "S1", employee.PositionBar, "2024-03-04"))
	assert.ErrorIs(t, err, employee.ErrPositionNotHeld)
}

func TestGetSchedule_Filters(t *testing.T) {
	f := setup(t)
	_, err := f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04", "2024-04-01"))
	require.NoError(t, err)
	_, err = f.svc.AssignShift(admin, assign("B", "S3", employee.PositionBar, "2024-03-04"))
	require.NoError(t, err)

	year, month := 2024, 3
	got, err := f.svc.GetSchedule(servicetest.As("E1", user.RoleEmployee), schedule.GetScheduleRequest{EmployeeID: "E1", Year: &year, Month: &month})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.GetSchedule(servicetest.As("mgr-b", user.RoleManager), schedule.GetScheduleRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Department)

	_, err = f.svc.GetSchedule(servicetest.As("mgr-b", user.RoleManager), schedule.GetScheduleRequest{EmployeeID: "admin"})
	assert.ErrorIs(t, err, user.ErrOutOfScope)
}

func TestDeleteScheduleEntry(t *testing.T) {
	f := setup(t)
	_, err := f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteScheduleEntry(admin, schedule.DeleteScheduleEntryRequest{EmployeeID: "E1", Date: "2024-03-04"}))

	got, err := f.svc.GetSchedule(admin, schedule.GetScheduleRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.Empty(t, got)

	err = f.svc.DeleteScheduleEntry(admin, schedule.DeleteScheduleEntryRequest{EmployeeID: "E1", Date: "2024-03-04"})
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)

	entries, err := f.env.Store.Audit().ListByEdited(context.Background(), "E1", 2024, 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.TypeScheduleDelete, entries[0].Type)
}

func TestCalendar(t *testing.T) {
	f := setup(t)
	_, err := f.svc.AssignShift(admin, assign("A", "S1", employee.PositionService, "2024-03-04", "2024-03-05"))
	require.NoError(t, err)

	body, err := f.svc.Calendar(admin, schedule.GetScheduleRequest{EmployeeID: "E1"})
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	start, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(servicetest.At(2024, 3, 4, 8, 0)), start.String())
}
