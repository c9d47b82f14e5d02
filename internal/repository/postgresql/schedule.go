package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

// NewScheduleRepository returns a repository whose dates are midnights in
// loc.
func NewScheduleRepository(db *database.DB, loc *time.Location) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db, loc: loc}
}

const assignmentColumns = `id, employee_id, department_name, date, position, shift_code, shift_name,
	start_time, end_time, duration_minutes, time_left_minutes, seq, created_at`

func (r *scheduleRepositoryImpl) scan(row pgx.Row) (schedule.Assignment, error) {
	var a schedule.Assignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Department, &a.Date, &a.Position, &a.ShiftCode, &a.ShiftName,
		&a.StartTime, &a.EndTime, &a.DurationMinutes, &a.TimeLeftMinutes, &a.Seq, &a.CreatedAt,
	)
	a.Date = localDate(a.Date, r.loc)
	return a, err
}

func (r *scheduleRepositoryImpl) Create(ctx context.Context, a schedule.Assignment) (schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO shift_assignments (id, employee_id, department_name, date, position, shift_code, shift_name,
			start_time, end_time, duration_minutes, time_left_minutes)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq, created_at
	`
	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Department, pgDate(a.Date), a.Position, a.ShiftCode, a.ShiftName,
		a.StartTime, a.EndTime, a.DurationMinutes, a.TimeLeftMinutes,
	).Scan(&a.Seq, &a.CreatedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return schedule.Assignment{}, schedule.ErrDuplicateShiftCode
		}
		return schedule.Assignment{}, fmt.Errorf("failed to insert shift assignment: %w", err)
	}
	return a, nil
}

func (r *scheduleRepositoryImpl) ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.Assignment, error) {
	return r.List(ctx, schedule.ScheduleFilter{EmployeeID: employeeID, Date: &date})
}

func (r *scheduleRepositoryImpl) List(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.Assignment, error) {
	var c conditions
	if filter.EmployeeID != "" {
		c.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Department != nil {
		c.add("department_name = $%d", *filter.Department)
	}
	if filter.Date != nil {
		c.add("date = $%d::date", pgDate(*filter.Date))
	}
	if filter.From != nil {
		c.add("date >= $%d::date", pgDate(*filter.From))
	}
	if filter.To != nil {
		c.add("date < $%d::date", pgDate(*filter.To))
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, "SELECT "+assignmentColumns+" FROM shift_assignments"+c.where()+" ORDER BY date, seq", c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	out := []schedule.Assignment{}
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *scheduleRepositoryImpl) DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		DELETE FROM shift_assignments WHERE employee_id = $1 AND date = $2::date
	`, employeeID, pgDate(date))
	if err != nil {
		return 0, fmt.Errorf("failed to delete shift assignments: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
