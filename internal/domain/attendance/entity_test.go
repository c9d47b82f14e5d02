package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
)

var day = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func at(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func mustSpan(t *testing.T, start, end string) shift.Span {
	t.Helper()
	s, err := shift.SpanOn(day, start, end)
	require.NoError(t, err)
	return s
}

func TestClassifyCheckIn(t *testing.T) {
	span := mustSpan(t, "09:00", "17:00")

	tests := []struct {
		name string
		now  time.Time
		want Punctuality
		err  error
	}{
		{"too early", at(8, 29), "", ErrTooEarly},
		{"window opens", at(8, 30), OnTime, nil},
		{"before start", at(8, 59), OnTime, nil},
		{"at start", at(9, 0), Late, nil},
		{"mid shift", at(13, 0), Late, nil},
		{"after end", at(17, 10), "", ErrOutOfWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyCheckIn(span, tt.now)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyCheckOut(t *testing.T) {
	span := mustSpan(t, "09:00", "17:00")

	tests := []struct {
		name string
		now  time.Time
		want Punctuality
		err  error
	}{
		{"before start", at(8, 50), "", ErrOutOfWindow},
		{"early leave", at(15, 0), OnTime, nil},
		{"at end", at(17, 0), OnTime, nil},
		{"after end", at(17, 20), Late, nil},
		{"window closed", at(17, 31), "", ErrOutOfWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyCheckOut(span, tt.now)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreditFor(t *testing.T) {
	assert.Equal(t, stats.CreditOnTime, CreditFor(OnTime, OnTime))
	assert.Equal(t, stats.CreditLate, CreditFor(Late, Late))
	assert.Equal(t, stats.CreditMixed, CreditFor(OnTime, Late))
	assert.Equal(t, stats.CreditMixed, CreditFor(Late, OnTime))
}

func TestRecord_CheckOutFloorsMinutes(t *testing.T) {
	r := Record{Status: StatusOpen}
	r.CheckIn(at(8, 58).Add(30*time.Second), OnTime)
	credit := r.CheckOut(at(17, 0), OnTime, at(17, 0))

	assert.Equal(t, 481, r.WorkedMinutes)
	assert.Equal(t, StatusChecked, r.Status)
	assert.Equal(t, StateCheckedOut, r.State())
	assert.Equal(t, stats.CreditOnTime, credit)
}

func candidate(t *testing.T, code string, ordinal int, seq int64, start, end string, rec *Record) Candidate {
	return Candidate{
		Assignment: schedule.Assignment{ShiftCode: code, Date: day, Seq: seq, StartTime: start, EndTime: end},
		Span:       mustSpan(t, start, end),
		Ordinal:    ordinal,
		Record:     rec,
	}
}

func TestResolve_OrdersByDepartmentThenAssignment(t *testing.T) {
	cands := []Candidate{
		candidate(t, "B", 1, 1, "09:00", "12:00", nil),
		candidate(t, "A", 0, 2, "09:00", "12:00", nil),
	}

	res, err := Resolve(cands, at(8, 45), OpCheckIn)
	require.NoError(t, err)
	assert.Equal(t, "A", res.Candidate.Assignment.ShiftCode)
	assert.Equal(t, OnTime, res.Punctuality)
}

func TestResolve_SkipsCandidatesThatDoNotAdmit(t *testing.T) {
	checkedIn := at(8, 40)
	onTime := OnTime
	open := &Record{Status: StatusOpen, CheckInAt: &checkedIn, CheckInStatus: &onTime}
	cands := []Candidate{
		candidate(t, "A", 0, 1, "09:00", "12:00", open),
		candidate(t, "B", 1, 2, "11:00", "15:00", nil),
	}

	res, err := Resolve(cands, at(10, 45), OpCheckIn)
	require.NoError(t, err)
	assert.Equal(t, "B", res.Candidate.Assignment.ShiftCode)

	_, err = Resolve(cands[:1], at(10, 45), OpCheckIn)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestResolve_Errors(t *testing.T) {
	cands := []Candidate{candidate(t, "A", 0, 1, "09:00", "12:00", nil)}

	_, err := Resolve(cands, at(7, 0), OpCheckIn)
	assert.ErrorIs(t, err, ErrTooEarly)

	_, err = Resolve(cands, at(20, 0), OpCheckIn)
	assert.ErrorIs(t, err, ErrNoMatchingShift)

	_, err = Resolve(nil, at(10, 0), OpCheckIn)
	assert.ErrorIs(t, err, ErrNoMatchingShift)

	_, err = Resolve(cands, at(10, 0), OpCheckOut)
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	missing := &Record{Status: StatusMissing}
	_, err = Resolve([]Candidate{candidate(t, "A", 0, 1, "09:00", "12:00", missing)}, at(10, 0), OpCheckOut)
	assert.ErrorIs(t, err, ErrAttendanceClosed)
}

func TestResolve_OvernightShiftFromYesterday(t *testing.T) {
	yesterday := day.AddDate(0, 0, -1)
	span, err := shift.SpanOn(yesterday, "22:00", "06:00")
	require.NoError(t, err)

	in := yesterday.Add(21*time.Hour + 50*time.Minute)
	onTime := OnTime
	c := Candidate{
		Assignment: schedule.Assignment{ShiftCode: "N", Date: yesterday, StartTime: "22:00", EndTime: "06:00"},
		Span:       span,
		Record:     &Record{Status: StatusOpen, CheckInAt: &in, CheckInStatus: &onTime},
	}

	res, err := Resolve([]Candidate{c}, at(6, 10), OpCheckOut)
	require.NoError(t, err)
	assert.Equal(t, Late, res.Punctuality)
}
