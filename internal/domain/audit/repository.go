package audit

import "context"

type AuditRepository interface {
	Append(ctx context.Context, e Entry) error
	ListByEdited(ctx context.Context, editedID string, year, month int) ([]Entry, error)
}
