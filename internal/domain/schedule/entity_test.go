package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
)

func span(t *testing.T, start, end string) shift.Span {
	t.Helper()
	s, err := shift.SpanOn(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start, end)
	require.NoError(t, err)
	return s
}

func TestConflicts(t *testing.T) {
	existing := span(t, "08:00", "16:30")

	tests := []struct {
		name      string
		start     string
		end       string
		conflicts bool
	}{
		{"inside buffer after existing", "16:45", "22:00", true},
		{"exactly at buffer edge", "17:00", "22:00", true},
		{"past buffer", "17:31", "22:00", false},
		{"starts during", "12:00", "18:00", true},
		{"ends during", "06:00", "09:00", true},
		{"contains existing", "07:00", "18:00", true},
		{"ends inside buffer before existing", "04:00", "07:45", true},
		{"earlier the same day", "01:00", "07:00", true},
		{"overnight far after", "18:00", "02:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflicts, Conflicts(span(t, tt.start, tt.end), existing))
		})
	}
}

func TestBatchResult(t *testing.T) {
	var r BatchResult
	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	r.Ok(d)
	r.Fail(d.AddDate(0, 0, 1), ErrShiftConflict)

	resp := ToAssignShiftResponse(nil, r)
	assert.Equal(t, []string{"2024-03-04"}, resp.Succeeded)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "2024-03-05", resp.Failed[0].Date)
	assert.Equal(t, ErrShiftConflict.Error(), resp.Failed[0].Reason)
}
