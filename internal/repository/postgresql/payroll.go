package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

// NUMERIC columns travel as text so decimal.Decimal keeps full precision.
const salaryColumns = `employee_id, year, month, total_salary::text, worked_minutes, overtime_minutes,
	day_off_days, hours_by_department, total_km::text, rate_a::text, rate_b::text, calculated_at`

func scanSalary(row pgx.Row) (payroll.Salary, error) {
	var (
		s                       payroll.Salary
		total, km, rateA, rateB string
		hoursByDepartment       []byte
	)
	err := row.Scan(&s.EmployeeID, &s.Year, &s.Month, &total, &s.WorkedMinutes, &s.OvertimeMinutes,
		&s.DayOffDays, &hoursByDepartment, &km, &rateA, &rateB, &s.CalculatedAt)
	if err != nil {
		return payroll.Salary{}, err
	}

	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{{&s.TotalSalary, total}, {&s.TotalKm, km}, {&s.Rates.A, rateA}, {&s.Rates.B, rateB}} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return payroll.Salary{}, fmt.Errorf("failed to parse amount %q: %w", f.src, err)
		}
	}
	if err := json.Unmarshal(hoursByDepartment, &s.HoursByDepartment); err != nil {
		return payroll.Salary{}, fmt.Errorf("failed to decode hours by department: %w", err)
	}
	return s, nil
}

func (r *salaryRepositoryImpl) Get(ctx context.Context, employeeID string, year, month int) (payroll.Salary, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + salaryColumns + " FROM salaries WHERE employee_id = $1 AND year = $2 AND month = $3"
	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Salary{}, payroll.ErrSalaryNotFound
		}
		return payroll.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

func (r *salaryRepositoryImpl) LatestRates(ctx context.Context, employeeID string) (payroll.Rates, error) {
	q := GetQuerier(ctx, r.db)
	var a, b string
	err := q.QueryRow(ctx, `
		SELECT rate_a::text, rate_b::text FROM salaries
		WHERE employee_id = $1
		ORDER BY calculated_at DESC
		LIMIT 1
	`, employeeID).Scan(&a, &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Rates{}, payroll.ErrSalaryNotFound
		}
		return payroll.Rates{}, fmt.Errorf("failed to get latest rates: %w", err)
	}
	var rates payroll.Rates
	if rates.A, err = decimal.NewFromString(a); err != nil {
		return payroll.Rates{}, fmt.Errorf("failed to parse rate a: %w", err)
	}
	if rates.B, err = decimal.NewFromString(b); err != nil {
		return payroll.Rates{}, fmt.Errorf("failed to parse rate b: %w", err)
	}
	return rates, nil
}

func (r *salaryRepositoryImpl) Upsert(ctx context.Context, s payroll.Salary) (payroll.Salary, error) {
	hours := s.HoursByDepartment
	if hours == nil {
		hours = map[string]decimal.Decimal{}
	}
	hoursJSON, err := json.Marshal(hours)
	if err != nil {
		return payroll.Salary{}, fmt.Errorf("failed to encode hours by department: %w", err)
	}

	q := GetQuerier(ctx, r.db)
	_, err = q.Exec(ctx, `
		INSERT INTO salaries (employee_id, year, month, total_salary, worked_minutes, overtime_minutes,
			day_off_days, hours_by_department, total_km, rate_a, rate_b, calculated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9::numeric, $10::numeric, $11::numeric, $12)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			total_salary = EXCLUDED.total_salary,
			worked_minutes = EXCLUDED.worked_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			day_off_days = EXCLUDED.day_off_days,
			hours_by_department = EXCLUDED.hours_by_department,
			total_km = EXCLUDED.total_km,
			rate_a = EXCLUDED.rate_a,
			rate_b = EXCLUDED.rate_b,
			calculated_at = EXCLUDED.calculated_at
	`, s.EmployeeID, s.Year, s.Month, s.TotalSalary.String(), s.WorkedMinutes, s.OvertimeMinutes,
		s.DayOffDays, hoursJSON, s.TotalKm.String(), s.Rates.A.String(), s.Rates.B.String(), s.CalculatedAt)
	if err != nil {
		return payroll.Salary{}, fmt.Errorf("failed to upsert salary: %w", err)
	}
	return s, nil
}

func (r *salaryRepositoryImpl) List(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.Salary, error) {
	var c conditions
	if filter.EmployeeIDs != nil {
		c.add("employee_id = ANY($%d)", filter.EmployeeIDs)
	}
	if filter.Year != nil {
		c.add("year = $%d", *filter.Year)
	}
	if filter.Month != nil {
		c.add("month = $%d", *filter.Month)
	}

	q := GetQuerier(ctx, r.db)
	query := "SELECT " + salaryColumns + " FROM salaries" + c.where() + " ORDER BY year DESC, month DESC, employee_id"
	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	out := []payroll.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
