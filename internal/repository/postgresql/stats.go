package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type statsRepositoryImpl struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) stats.StatsRepository {
	return &statsRepositoryImpl{db: db}
}

const monthlyColumns = `employee_id, year, month, default_minutes, realistic_minutes, total_minutes,
	overtime_minutes, updated_at`

func scanMonthly(row pgx.Row) (stats.Monthly, error) {
	var m stats.Monthly
	err := row.Scan(&m.EmployeeID, &m.Year, &m.Month, &m.DefaultMinutes, &m.RealisticMinutes,
		&m.TotalMinutes, &m.OvertimeMinutes, &m.UpdatedAt)
	return m, err
}

const departmentColumns = "employee_id, department_name, year, month, on_time, late, missing"

func scanDepartment(row pgx.Row) (stats.DepartmentStat, error) {
	var d stats.DepartmentStat
	err := row.Scan(&d.EmployeeID, &d.Department, &d.Year, &d.Month, &d.OnTime, &d.Late, &d.Missing)
	return d, err
}

func periodConditions(filter stats.StatsFilter) *conditions {
	c := &conditions{}
	if filter.EmployeeIDs != nil {
		c.add("employee_id = ANY($%d)", filter.EmployeeIDs)
	}
	if filter.Year != nil {
		c.add("year = $%d", *filter.Year)
	}
	if filter.Month != nil {
		c.add("month = $%d", *filter.Month)
	}
	return c
}

func (r *statsRepositoryImpl) GetMonthly(ctx context.Context, employeeID string, year, month int) (stats.Monthly, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + monthlyColumns + " FROM monthly_stats WHERE employee_id = $1 AND year = $2 AND month = $3"
	m, err := scanMonthly(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return stats.Monthly{}, stats.ErrStatsNotFound
		}
		return stats.Monthly{}, fmt.Errorf("failed to get monthly stats: %w", err)
	}
	return m, nil
}

func (r *statsRepositoryImpl) UpsertMonthly(ctx context.Context, m stats.Monthly) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO monthly_stats (employee_id, year, month, default_minutes, realistic_minutes,
			total_minutes, overtime_minutes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			default_minutes = EXCLUDED.default_minutes,
			realistic_minutes = EXCLUDED.realistic_minutes,
			total_minutes = EXCLUDED.total_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			updated_at = NOW()
	`, m.EmployeeID, m.Year, m.Month, m.DefaultMinutes, m.RealisticMinutes,
		m.TotalMinutes, m.OvertimeMinutes)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly stats: %w", err)
	}
	return nil
}

func (r *statsRepositoryImpl) ListMonthly(ctx context.Context, filter stats.StatsFilter) ([]stats.Monthly, error) {
	c := periodConditions(filter)

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, "SELECT "+monthlyColumns+" FROM monthly_stats"+c.where()+" ORDER BY employee_id, year, month", c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly stats: %w", err)
	}
	defer rows.Close()

	out := []stats.Monthly{}
	for rows.Next() {
		m, err := scanMonthly(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly stats: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *statsRepositoryImpl) GetDepartment(ctx context.Context, employeeID, department string, year, month int) (stats.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + departmentColumns + ` FROM department_stats
		WHERE employee_id = $1 AND department_name = $2 AND year = $3 AND month = $4`
	d, err := scanDepartment(q.QueryRow(ctx, query, employeeID, department, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return stats.DepartmentStat{}, stats.ErrStatsNotFound
		}
		return stats.DepartmentStat{}, fmt.Errorf("failed to get department stats: %w", err)
	}
	return d, nil
}

func (r *statsRepositoryImpl) UpsertDepartment(ctx context.Context, d stats.DepartmentStat) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO department_stats (employee_id, department_name, year, month, on_time, late, missing)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, department_name, year, month) DO UPDATE SET
			on_time = EXCLUDED.on_time,
			late = EXCLUDED.late,
			missing = EXCLUDED.missing
	`, d.EmployeeID, d.Department, d.Year, d.Month, d.OnTime, d.Late, d.Missing)
	if err != nil {
		return fmt.Errorf("failed to upsert department stats: %w", err)
	}
	return nil
}

func (r *statsRepositoryImpl) ListDepartment(ctx context.Context, filter stats.StatsFilter) ([]stats.DepartmentStat, error) {
	c := periodConditions(filter)
	if filter.Department != nil {
		c.add("department_name = $%d", *filter.Department)
	}

	q := GetQuerier(ctx, r.db)
	query := "SELECT " + departmentColumns + " FROM department_stats" + c.where() + " ORDER BY employee_id, department_name, year, month"
	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list department stats: %w", err)
	}
	defer rows.Close()

	out := []stats.DepartmentStat{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department stats: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
