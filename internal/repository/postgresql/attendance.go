package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db, loc: loc}
}

const attendanceColumns = `id, employee_id, department_name, position, shift_code, date, shift_start, shift_end,
	check_in_at, check_in_status, check_out_at, check_out_status, worked_minutes, status, details,
	created_at, updated_at`

func (r *attendanceRepositoryImpl) scan(row pgx.Row) (attendance.Record, error) {
	var (
		rec            attendance.Record
		checkInStatus  *string
		checkOutStatus *string
		status         string
		details        []byte
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Department, &rec.Position, &rec.ShiftCode, &rec.Date,
		&rec.ShiftStart, &rec.ShiftEnd, &rec.CheckInAt, &checkInStatus, &rec.CheckOutAt, &checkOutStatus,
		&rec.WorkedMinutes, &status, &details, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Date = localDate(rec.Date, r.loc)
	rec.Status = attendance.Status(status)
	rec.CheckInStatus = punctuality(checkInStatus)
	rec.CheckOutStatus = punctuality(checkOutStatus)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to decode attendance details: %w", err)
		}
	}
	return rec, nil
}

func punctuality(s *string) *attendance.Punctuality {
	if s == nil {
		return nil
	}
	p := attendance.Punctuality(*s)
	return &p
}

func punctualityText(p *attendance.Punctuality) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to encode attendance details: %w", err)
	}

	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendances (id, employee_id, department_name, position, shift_code, date, shift_start, shift_end,
			check_in_at, check_in_status, check_out_at, check_out_status, worked_minutes, status, details,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.Department, rec.Position, rec.ShiftCode, pgDate(rec.Date),
		rec.ShiftStart, rec.ShiftEnd, rec.CheckInAt, punctualityText(rec.CheckInStatus),
		rec.CheckOutAt, punctualityText(rec.CheckOutStatus), rec.WorkedMinutes, string(rec.Status), details,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return attendance.Record{}, attendance.ErrRecordExists
		}
		return attendance.Record{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	rec, err := r.scan(q.QueryRow(ctx, "SELECT "+attendanceColumns+" FROM attendances WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByKey(ctx context.Context, employeeID string, date time.Time, shiftCode string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + attendanceColumns + " FROM attendances WHERE employee_id = $1 AND date = $2::date AND shift_code = $3"
	rec, err := r.scan(q.QueryRow(ctx, query, employeeID, pgDate(date), shiftCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by shift: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	var c conditions
	if filter.EmployeeID != nil {
		c.add("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Department != nil {
		c.add("department_name = $%d", *filter.Department)
	}
	if filter.From != nil {
		c.add("date >= $%d::date", pgDate(*filter.From))
	}
	if filter.To != nil {
		c.add("date < $%d::date", pgDate(*filter.To))
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, "SELECT "+attendanceColumns+" FROM attendances"+c.where()+" ORDER BY date, shift_start, employee_id", c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	out := []attendance.Record{}
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("failed to encode attendance details: %w", err)
	}

	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET check_in_at = $2, check_in_status = $3, check_out_at = $4, check_out_status = $5,
			worked_minutes = $6, status = $7, details = $8, updated_at = $9
		WHERE id = $1
	`, rec.ID, rec.CheckInAt, punctualityText(rec.CheckInStatus), rec.CheckOutAt, punctualityText(rec.CheckOutStatus),
		rec.WorkedMinutes, string(rec.Status), details, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
