package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Append(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (id, year, month, date, type, editor_id, editor_role, edited_id,
			before_data, after_data, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.Year, e.Month, pgDate(e.Date), string(e.Type), e.EditorID, e.EditorRole, e.EditedID,
		[]byte(e.Before), []byte(e.After), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

func (r *auditRepositoryImpl) ListByEdited(ctx context.Context, editedID string, year, month int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, year, month, date, type, editor_id, editor_role, edited_id, before_data, after_data, created_at
		FROM audit_logs
		WHERE edited_id = $1 AND year = $2 AND month = $3
		ORDER BY created_at
	`, editedID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	out := []audit.Entry{}
	for rows.Next() {
		var (
			e             audit.Entry
			entryType     string
			before, after []byte
		)
		if err := rows.Scan(&e.ID, &e.Year, &e.Month, &e.Date, &entryType, &e.EditorID, &e.EditorRole,
			&e.EditedID, &before, &after, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		e.Type = audit.Type(entryType)
		e.Before, e.After = before, after
		out = append(out, e)
	}
	return out, rows.Err()
}
