package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/servicetest"
)

func TestList(t *testing.T) {
	env := servicetest.New(t, servicetest.At(2024, 3, 10, 12, 0))
	env.AddEmployee(t, "admin", user.RoleAdmin, 0, 0)
	env.AddEmployee(t, "mgr", user.RoleManager, 160, 0, servicetest.Member("A", employee.PositionService))
	env.AddEmployee(t, "E1", user.RoleEmployee, 160, 0, servicetest.Member("A", employee.PositionService))
	env.AddEmployee(t, "E2", user.RoleEmployee, 160, 0, servicetest.Member("B", employee.PositionBar))

	editor := user.Caller{EmployeeID: "mgr", Role: user.RoleManager}
	now := env.Clock.Now()
	require.NoError(t, env.Store.Audit().Append(context.Background(),
		audit.NewEntry("a1", now, audit.TypeScheduleDelete, editor, "E1", map[string]string{"shift": "F"}, nil)))
	require.NoError(t, env.Store.Audit().Append(context.Background(),
		audit.NewEntry("a2", now.AddDate(0, 1, 0), audit.TypeSalaryCalculation, editor, "E1", nil, nil)))

	svc := NewAuditService(env.Store.Audit(), env.Access)

	t.Run("admin sees the month", func(t *testing.T) {
		entries, err := svc.List(servicetest.As("admin", user.RoleAdmin), audit.ListAuditRequest{EditedID: "E1", Year: 2024, Month: 3})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a1", entries[0].ID)
		assert.Equal(t, "mgr", entries[0].EditorID)
		assert.JSONEq(t, `{"shift":"F"}`, string(entries[0].Before))
		assert.JSONEq(t, `null`, string(entries[0].After))
	})

	t.Run("manager outside department", func(t *testing.T) {
		_, err := svc.List(servicetest.As("mgr", user.RoleManager), audit.ListAuditRequest{EditedID: "E2", Year: 2024, Month: 3})
		assert.ErrorIs(t, err, user.ErrOutOfScope)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.List(servicetest.As("admin", user.RoleAdmin), audit.ListAuditRequest{EditedID: "ghost", Year: 2024, Month: 3})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := svc.List(servicetest.As("admin", user.RoleAdmin), audit.ListAuditRequest{EditedID: "E1", Month: 13})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "year")
		assert.Contains(t, verrs.ToMap(), "month")
	})
}
