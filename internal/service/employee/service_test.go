package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/servicetest"
)

var (
	asAdmin = servicetest.As("admin", user.RoleAdmin)
	asMgr   = servicetest.As("mgr", user.RoleManager)
)

func setup(t *testing.T) (*servicetest.Env, employee.EmployeeService) {
	env := servicetest.New(t, servicetest.At(2024, 3, 10, 9, 0))
	env.AddEmployee(t, "admin", user.RoleAdmin, 0, 0)
	env.AddEmployee(t, "mgr", user.RoleManager, 160, 12, servicetest.Member("A", employee.PositionService))
	env.AddEmployee(t, "E2", user.RoleEmployee, 160, 12, servicetest.Member("B", employee.PositionBar))
	return env, NewEmployeeService(env.Store.Employees(), env.Access, env.Guard, env.Clock)
}

func newHire(id, dept string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		ID:                 id,
		Name:               "New Hire",
		Password:           "password123",
		Role:               "employee",
		DefaultDayOff:      20,
		MonthlyTargetHours: 162.5,
		Departments:        []employee.MembershipRequest{{Department: dept, Positions: []string{employee.PositionService}}},
	}
}

func TestCreate(t *testing.T) {
	env, svc := setup(t)

	resp, err := svc.Create(asMgr, newHire("E9", "A"))
	require.NoError(t, err)
	assert.Equal(t, 20, resp.RealisticDayOff)
	assert.Equal(t, 162.5, resp.MonthlyTargetHours)

	stored, err := env.Store.Employees().GetByID(context.Background(), "E9")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("password123")))
	assert.Equal(t, 9750, stored.MonthlyTargetMinutes)

	_, err = svc.Create(asMgr, newHire("E9", "A"))
	assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)

	_, err = svc.Create(asMgr, newHire("E10", "B"))
	assert.ErrorIs(t, err, user.ErrOutOfScope)

	admin := newHire("root2", "A")
	admin.Role = "admin"
	_, err = svc.Create(asMgr, admin)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.Create(servicetest.As("E2", user.RoleEmployee), newHire("E11", "B"))
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestGetAndList_Scoped(t *testing.T) {
	_, svc := setup(t)

	_, err := svc.Get(asMgr, "E2")
	assert.ErrorIs(t, err, user.ErrOutOfScope)

	resp, err := svc.Get(asAdmin, "E2")
	require.NoError(t, err)
	assert.Equal(t, "E2", resp.ID)

	all, err := svc.List(asAdmin, employee.ListEmployeeRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	managed, err := svc.List(asMgr, employee.ListEmployeeRequest{})
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, "mgr", managed[0].ID)

	own, err := svc.List(servicetest.As("E2", user.RoleEmployee), employee.ListEmployeeRequest{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "E2", own[0].ID)
}

func TestDeactivate(t *testing.T) {
	env, svc := setup(t)
	_, err := svc.Create(asMgr, newHire("E9", "A"))
	require.NoError(t, err)

	_, err = svc.Deactivate(asMgr, employee.DeactivateEmployeeRequest{EmployeeID: "E9", EffectiveAt: "2024-03-01T00:00:00+07:00"})
	assert.ErrorIs(t, err, employee.ErrInvalidDeactivate)

	resp, err := svc.Deactivate(asMgr, employee.DeactivateEmployeeRequest{EmployeeID: "E9", EffectiveAt: "2024-03-15T00:00:00+07:00"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)
	require.NotNil(t, resp.InactiveAt)

	stored, err := env.Store.Employees().GetByID(context.Background(), "E9")
	require.NoError(t, err)
	assert.True(t, stored.IsActiveAt(servicetest.At(2024, 3, 14, 23, 0)))
	assert.False(t, stored.IsActiveAt(servicetest.At(2024, 3, 15, 0, 0)))
	assert.Equal(t, int64(2), stored.Version)

	env.Clock.Advance(10 * 24 * time.Hour)
	active, err := svc.List(asAdmin, employee.ListEmployeeRequest{ActiveOnly: true})
	require.NoError(t, err)
	for _, e := range active {
		assert.NotEqual(t, "E9", e.ID)
	}
}
