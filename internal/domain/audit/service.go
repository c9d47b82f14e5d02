package audit

import "context"

type AuditService interface {
	List(ctx context.Context, req ListAuditRequest) ([]EntryResponse, error)
}
