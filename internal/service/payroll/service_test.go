package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/servicetest"
)

var (
	asAdmin = servicetest.As("admin", user.RoleAdmin)
	asMgr   = servicetest.As("mgr", user.RoleManager)
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func setup(t *testing.T) (*servicetest.Env, *PayrollServiceImpl) {
	env := servicetest.New(t, servicetest.At(2024, 4, 2, 9, 0))
	env.AddEmployee(t, "admin", user.RoleAdmin, 0, 0)
	env.AddEmployee(t, "mgr", user.RoleManager, 160, 0, servicetest.Member("A", employee.PositionService))
	env.AddEmployee(t, "E1", user.RoleEmployee, 160, 12,
		servicetest.Member("A", employee.PositionService),
		servicetest.Member("B", employee.PositionDriver),
	)
	env.AddEmployee(t, "E2", user.RoleEmployee, 160, 12, servicetest.Member("C", employee.PositionBar))

	svc := NewPayrollService(Dependencies{
		Salaries:    env.Store.Salaries(),
		Stats:       env.Store.Stats(),
		Attendances: env.Store.Attendances(),
		DayOffs:     env.Store.DayOffs(),
		Employees:   env.Store.Employees(),
		Audit:       env.Store.Audit(),
		Access:      env.Access,
		Clock:       env.Clock,
	})
	return env, svc
}

// seedMarch books 165 worked hours against a 160 hour target, two day-off
// days in March and one in February.
func seedMarch(t *testing.T, env *servicetest.Env) {
	ctx := context.Background()
	_, err := env.Ledger.AddWorked(ctx, "E1", stats.Period{Year: 2024, Month: 3}, 160*60, 165*60)
	require.NoError(t, err)

	require.NoError(t, env.Store.DayOffs().AddConsumption(ctx, dayoff.Consumption{DayOffID: "feb", EmployeeID: "E1", ConsumedDays: 1, PeriodYear: 2024, PeriodMonth: 2}))
	require.NoError(t, env.Store.DayOffs().AddConsumption(ctx, dayoff.Consumption{DayOffID: "mar", EmployeeID: "E1", ConsumedDays: 2, PeriodYear: 2024, PeriodMonth: 3}))

	record := func(id, dept, position string, day, minutes int, km int64) {
		rec := attendance.NewRecord(id, schedule.Assignment{
			EmployeeID: "E1",
			Department: dept,
			Position:   position,
			ShiftCode:  id,
			Date:       servicetest.Date(2024, 3, day),
			StartTime:  "08:00",
			EndTime:    "16:00",
		}, servicetest.At(2024, 3, day, 8, 0))
		in := servicetest.At(2024, 3, day, 8, 0)
		rec.CheckIn(in, attendance.OnTime)
		rec.CheckOut(in.Add(time.Duration(minutes)*time.Minute), attendance.OnTime, in)
		if km > 0 {
			total := decimal.NewFromInt(km)
			rec.Details.TotalKm = &total
		}
		_, err := env.Store.Attendances().Create(ctx, rec)
		require.NoError(t, err)
	}
	record("S1", "A", employee.PositionService, 4, 450, 0)
	record("D1", "B", employee.PositionDriver, 5, 480, 120)
	record("D2", "B", employee.PositionDriver, 6, 480, 35)
}

func TestCalculateSalary_Scenario(t *testing.T) {
	env, svc := setup(t)
	seedMarch(t, env)

	resp, err := svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 3, A: dec(10), B: dec(65)})
	require.NoError(t, err)

	assert.True(t, resp.TotalSalary.Equal(decimal.NewFromInt(1706)), resp.TotalSalary.String())
	assert.Equal(t, 2, resp.DayOffDays)
	assert.True(t, resp.TotalHours.Equal(decimal.NewFromInt(165)))
	assert.True(t, resp.OvertimeHours.Equal(decimal.NewFromInt(5)))
	assert.True(t, resp.TotalKm.Equal(decimal.NewFromInt(155)))
	assert.True(t, resp.HoursByDepartment["A"].Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, resp.HoursByDepartment["B"].Equal(decimal.NewFromInt(16)))

	entries, err := env.Store.Audit().ListByEdited(context.Background(), "E1", 2024, 4)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.TypeSalaryCalculation, entries[0].Type)
	assert.JSONEq(t, "null", string(entries[0].Before))
}

func TestCalculateSalary_BelowTargetLowersPay(t *testing.T) {
	env, svc := setup(t)
	_, err := env.Ledger.AddWorked(context.Background(), "E2", stats.Period{Year: 2024, Month: 3}, 160*60, 100*60)
	require.NoError(t, err)

	resp, err := svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E2", Year: 2024, Month: 3, A: dec(10), B: dec(65)})
	require.NoError(t, err)

	assert.True(t, resp.OvertimeHours.Equal(decimal.NewFromInt(-60)), resp.OvertimeHours.String())
	assert.True(t, resp.TotalSalary.Equal(decimal.NewFromInt(400)), resp.TotalSalary.String())
	assert.Zero(t, resp.DayOffDays)
}

func TestCalculateSalary_ReusesRates(t *testing.T) {
	env, svc := setup(t)
	seedMarch(t, env)

	_, err := svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 3})
	assert.ErrorIs(t, err, payroll.ErrRateRequired)

	_, err = svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 3, A: dec(10), B: dec(65)})
	require.NoError(t, err)

	env.Clock.Advance(time.Hour)
	again, err := svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.True(t, again.A.Equal(decimal.NewFromInt(10)))
	assert.True(t, again.TotalSalary.Equal(decimal.NewFromInt(1706)))

	all, err := env.Store.Salaries().List(context.Background(), payroll.SalaryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCalculateSalary_Errors(t *testing.T) {
	env, svc := setup(t)
	seedMarch(t, env)

	_, err := svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 2, A: dec(10), B: dec(65)})
	assert.ErrorIs(t, err, payroll.ErrStatsNotFound)

	_, err = svc.CalculateSalary(servicetest.As("E1", user.RoleEmployee), payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 3, A: dec(10), B: dec(65)})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = svc.CalculateSalary(asMgr, payroll.CalculateSalaryRequest{EmployeeID: "E2", Year: 2024, Month: 3, A: dec(10), B: dec(65)})
	assert.ErrorIs(t, err, user.ErrOutOfScope)

	_, err = svc.CalculateSalary(asAdmin, payroll.CalculateSalaryRequest{EmployeeID: "E1", Year: 2024, Month: 3, A: dec(10)})
	assert.Error(t, err)
}

func TestListSalaries_Scoped(t *testing.T) {
	env, svc := setup(t)
	ctx := context.Background()
	for _, id := range []string{"E1", "E2"} {
		_, err := env.Store.Salaries().Upsert(ctx, payroll.Salary{EmployeeID: id, Year: 2024, Month: 3, TotalSalary: decimal.NewFromInt(100)})
		require.NoError(t, err)
	}

	all, err := svc.ListSalaries(asAdmin, payroll.ListSalariesRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	managed, err := svc.ListSalaries(asMgr, payroll.ListSalariesRequest{})
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, "E1", managed[0].EmployeeID)

	own, err := svc.ListSalaries(servicetest.As("E2", user.RoleEmployee), payroll.ListSalariesRequest{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "E2", own[0].EmployeeID)
}
