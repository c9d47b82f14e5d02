package audit

import (
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type ListAuditRequest struct {
	EditedID string
	Year     int
	Month    int
}

func (r *ListAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EditedID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.Year < 1 {
		errs.Add("year", "year is required")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}

	return errs.Err()
}

type EntryResponse struct {
	ID         string          `json:"id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Date       string          `json:"date"`
	Type       Type            `json:"type"`
	EditorID   string          `json:"editor_id"`
	EditorRole string          `json:"editor_role"`
	EditedID   string          `json:"edited_id"`
	Before     json.RawMessage `json:"before"`
	After      json.RawMessage `json:"after"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Year:       e.Year,
		Month:      e.Month,
		Date:       e.Date.Format(time.RFC3339),
		Type:       e.Type,
		EditorID:   e.EditorID,
		EditorRole: e.EditorRole,
		EditedID:   e.EditedID,
		Before:     e.Before,
		After:      e.After,
	}
}
