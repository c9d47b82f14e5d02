package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = "code, name, start_time, end_time, duration_minutes, created_at, updated_at"

func scanShift(row pgx.Row) (shift.Template, error) {
	var t shift.Template
	err := row.Scan(&t.Code, &t.Name, &t.StartTime, &t.EndTime, &t.DurationMinutes, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func shiftConflict(err error) error {
	name, ok := uniqueConstraint(err)
	if !ok {
		return nil
	}
	if name == "shifts_name_key" {
		return shift.ErrShiftNameExists
	}
	return shift.ErrShiftCodeExists
}

func (r *shiftRepositoryImpl) Create(ctx context.Context, t shift.Template) (shift.Template, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO shifts (code, name, start_time, end_time, duration_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + shiftColumns
	created, err := scanShift(q.QueryRow(ctx, query, t.Code, t.Name, t.StartTime, t.EndTime, t.DurationMinutes))
	if err != nil {
		if conflict := shiftConflict(err); conflict != nil {
			return shift.Template{}, conflict
		}
		return shift.Template{}, fmt.Errorf("failed to insert shift: %w", err)
	}
	return created, nil
}

func (r *shiftRepositoryImpl) Update(ctx context.Context, t shift.Template) (shift.Template, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE shifts
		SET name = $2, start_time = $3, end_time = $4, duration_minutes = $5, updated_at = NOW()
		WHERE code = $1
		RETURNING ` + shiftColumns
	updated, err := scanShift(q.QueryRow(ctx, query, t.Code, t.Name, t.StartTime, t.EndTime, t.DurationMinutes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Template{}, shift.ErrShiftNotFound
		}
		if conflict := shiftConflict(err); conflict != nil {
			return shift.Template{}, conflict
		}
		return shift.Template{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return updated, nil
}

func (r *shiftRepositoryImpl) GetByCode(ctx context.Context, code string) (shift.Template, error) {
	return r.getBy(ctx, "code", code)
}

func (r *shiftRepositoryImpl) GetByName(ctx context.Context, name string) (shift.Template, error) {
	return r.getBy(ctx, "name", name)
}

func (r *shiftRepositoryImpl) getBy(ctx context.Context, column, value string) (shift.Template, error) {
	q := GetQuerier(ctx, r.db)
	t, err := scanShift(q.QueryRow(ctx, "SELECT "+shiftColumns+" FROM shifts WHERE "+column+" = $1", value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Template{}, shift.ErrShiftNotFound
		}
		return shift.Template{}, fmt.Errorf("failed to get shift by %s: %w", column, err)
	}
	return t, nil
}

func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Template, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, "SELECT "+shiftColumns+" FROM shifts ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	out := []shift.Template{}
	for rows.Next() {
		t, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
