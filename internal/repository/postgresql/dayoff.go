package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type dayOffRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewDayOffRepository(db *database.DB, loc *time.Location) dayoff.DayOffRepository {
	return &dayOffRepositoryImpl{db: db, loc: loc}
}

const dayOffColumns = `id, start_date, end_date, duration, kind, allowed, status, employee_id, reason,
	created_by, created_at, updated_at`

func (r *dayOffRepositoryImpl) scan(row pgx.Row) (dayoff.Period, error) {
	var (
		p      dayoff.Period
		kind   string
		status string
	)
	err := row.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Duration, &kind, &p.Allowed, &status,
		&p.EmployeeID, &p.Reason, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	p.StartDate = localDate(p.StartDate, r.loc)
	p.EndDate = localDate(p.EndDate, r.loc)
	p.Kind = dayoff.Kind(kind)
	p.Status = dayoff.Status(status)
	return p, err
}

func (r *dayOffRepositoryImpl) Create(ctx context.Context, p dayoff.Period) (dayoff.Period, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO day_offs (id, start_date, end_date, duration, kind, allowed, status, employee_id, reason, created_by)
		VALUES ($1, $2::date, $3::date, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		p.ID, pgDate(p.StartDate), pgDate(p.EndDate), p.Duration, string(p.Kind), p.Allowed, string(p.Status),
		p.EmployeeID, p.Reason, p.CreatedBy,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return dayoff.Period{}, dayoff.ErrDayOffExists
		}
		return dayoff.Period{}, fmt.Errorf("failed to insert day off: %w", err)
	}
	return p, nil
}

func (r *dayOffRepositoryImpl) GetByID(ctx context.Context, id string) (dayoff.Period, error) {
	q := GetQuerier(ctx, r.db)
	p, err := r.scan(q.QueryRow(ctx, "SELECT "+dayOffColumns+" FROM day_offs WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dayoff.Period{}, dayoff.ErrDayOffNotFound
		}
		return dayoff.Period{}, fmt.Errorf("failed to get day off: %w", err)
	}
	return p, nil
}

func (r *dayOffRepositoryImpl) Update(ctx context.Context, p dayoff.Period) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE day_offs
		SET start_date = $2::date, end_date = $3::date, duration = $4, allowed = $5, status = $6,
			reason = $7, updated_at = NOW()
		WHERE id = $1
	`, p.ID, pgDate(p.StartDate), pgDate(p.EndDate), p.Duration, p.Allowed, string(p.Status), p.Reason)
	if err != nil {
		return fmt.Errorf("failed to update day off: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dayoff.ErrDayOffNotFound
	}
	return nil
}

// Delete leaves day_off_members in place so past payroll stays reproducible.
func (r *dayOffRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, "DELETE FROM day_offs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete day off: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dayoff.ErrDayOffNotFound
	}
	return nil
}

func (r *dayOffRepositoryImpl) List(ctx context.Context, filter dayoff.DayOffFilter) ([]dayoff.Period, error) {
	var c conditions
	if filter.EmployeeID != nil {
		c.add("(kind = 'global' OR employee_id = $%d)", *filter.EmployeeID)
	}
	if filter.Status != nil {
		c.add("status = $%d", string(*filter.Status))
	}
	if filter.From != nil {
		c.add("end_date >= $%d::date", pgDate(*filter.From))
	}
	if filter.To != nil {
		c.add("start_date < $%d::date", pgDate(*filter.To))
	}
	return r.list(ctx, "SELECT "+dayOffColumns+" FROM day_offs"+c.where()+" ORDER BY start_date, id", c.args...)
}

func (r *dayOffRepositoryImpl) ListAllowedCovering(ctx context.Context, employeeID string, date time.Time) ([]dayoff.Period, error) {
	query := "SELECT " + dayOffColumns + ` FROM day_offs
		WHERE allowed AND (kind = 'global' OR employee_id = $1)
			AND start_date <= $2::date AND end_date >= $2::date
		ORDER BY start_date, id`
	return r.list(ctx, query, employeeID, pgDate(date))
}

func (r *dayOffRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]dayoff.Period, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list day offs: %w", err)
	}
	defer rows.Close()

	out := []dayoff.Period{}
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day off: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *dayOffRepositoryImpl) AddConsumption(ctx context.Context, c dayoff.Consumption) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO day_off_members (day_off_id, employee_id, consumed_days, period_year, period_month, consumed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.DayOffID, c.EmployeeID, c.ConsumedDays, c.PeriodYear, c.PeriodMonth, c.ConsumedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return dayoff.ErrAlreadyConsumed
		}
		return fmt.Errorf("failed to record day-off consumption: %w", err)
	}
	return nil
}

func (r *dayOffRepositoryImpl) SumConsumed(ctx context.Context, employeeID string, year, throughMonth int) (int, error) {
	q := GetQuerier(ctx, r.db)
	var total int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(consumed_days), 0)::int FROM day_off_members
		WHERE employee_id = $1 AND period_year = $2 AND period_month <= $3
	`, employeeID, year, throughMonth).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum day-off consumption: %w", err)
	}
	return total, nil
}
