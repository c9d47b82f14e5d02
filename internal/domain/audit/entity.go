package audit

import (
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
)

type Type string

const (
	TypeAttendanceDetails Type = "attendance_details"
	TypeScheduleDelete    Type = "schedule_delete"
	TypeDayOffDecision    Type = "day_off_decision"
	TypeDayOffDelete      Type = "day_off_delete"
	TypeSalaryCalculation Type = "salary_calculation"
)

// Entry records who changed what. Before and After hold JSON snapshots.
type Entry struct {
	ID         string
	Year       int
	Month      int
	Date       time.Time
	Type       Type
	EditorID   string
	EditorRole string
	EditedID   string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}

// Snapshot marshals v for an audit entry. Marshal failures yield null.
func Snapshot(v any) json.RawMessage {
	if v == nil {
		return json.RawMessage("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}

func NewEntry(id string, now time.Time, t Type, editor user.Caller, editedID string, before, after any) Entry {
	return Entry{
		ID:         id,
		Year:       now.Year(),
		Month:      int(now.Month()),
		Date:       now,
		Type:       t,
		EditorID:   editor.EmployeeID,
		EditorRole: string(editor.Role),
		EditedID:   editedID,
		Before:     Snapshot(before),
		After:      Snapshot(after),
		CreatedAt:  now,
	}
}
