package attendance

import (
	"time"
)

// PunchRequest targets the caller by default. Managers may punch for an
// employee in their scope.
type PunchRequest struct {
	EmployeeID string `json:"employee_id"`
}

type UpdateDetailsRequest struct {
	RecordID string `json:"-"`
	Details
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Department     string   `json:"department"`
	Position       string   `json:"position"`
	ShiftCode      string   `json:"shift_code"`
	Date           string   `json:"date"`
	ShiftStart     string   `json:"shift_start"`
	ShiftEnd       string   `json:"shift_end"`
	CheckInAt      *string  `json:"check_in,omitempty"`
	CheckInStatus  *string  `json:"check_in_status,omitempty"`
	CheckOutAt     *string  `json:"check_out,omitempty"`
	CheckOutStatus *string  `json:"check_out_status,omitempty"`
	WorkedHours    int      `json:"worked_hours"`
	WorkedMinutes  int      `json:"worked_minutes"`
	Status         string   `json:"status"`
	Details        *Details `json:"details,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func formatPunctuality(p *Punctuality) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func ToResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Department:     r.Department,
		Position:       r.Position,
		ShiftCode:      r.ShiftCode,
		Date:           r.Date.Format("2006-01-02"),
		ShiftStart:     r.ShiftStart,
		ShiftEnd:       r.ShiftEnd,
		CheckInAt:      formatTime(r.CheckInAt),
		CheckInStatus:  formatPunctuality(r.CheckInStatus),
		CheckOutAt:     formatTime(r.CheckOutAt),
		CheckOutStatus: formatPunctuality(r.CheckOutStatus),
		WorkedHours:    r.WorkedMinutes / 60,
		WorkedMinutes:  r.WorkedMinutes % 60,
		Status:         string(r.Status),
	}
	if r.Details != (Details{}) {
		d := r.Details
		resp.Details = &d
	}
	return resp
}

// ReconcileReport summarizes one reconciler sweep.
type ReconcileReport struct {
	Employees int `json:"employees"`
	Missing   int `json:"missing"`
	ForcedOut int `json:"forced_out"`
	Failed    int `json:"failed"`
}
