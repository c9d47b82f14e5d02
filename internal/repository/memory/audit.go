package memory

import (
	"context"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
)

type auditRepo struct{ s *Store }

func (r auditRepo) Append(ctx context.Context, e audit.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.audits = append(r.s.audits, e)
	return nil
}

func (r auditRepo) ListByEdited(ctx context.Context, editedID string, year, month int) ([]audit.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []audit.Entry{}
	for _, e := range r.s.audits {
		if e.EditedID == editedID && e.Year == year && e.Month == month {
			out = append(out, e)
		}
	}
	return out, nil
}
