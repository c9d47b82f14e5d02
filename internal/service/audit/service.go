package audit

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

type AuditServiceImpl struct {
	audit.AuditRepository
	access *access.Resolver
}

func NewAuditService(auditRepository audit.AuditRepository, resolver *access.Resolver) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepository, access: resolver}
}

// List implements audit.AuditService. Entries about employees outside the
// caller's scope are refused as a whole.
func (s *AuditServiceImpl) List(ctx context.Context, req audit.ListAuditRequest) ([]audit.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Employee(ctx, scope, req.EditedID); err != nil {
		return nil, err
	}

	entries, err := s.AuditRepository.ListByEdited(ctx, req.EditedID, req.Year, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	resp := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, audit.ToEntryResponse(e))
	}
	return resp, nil
}
