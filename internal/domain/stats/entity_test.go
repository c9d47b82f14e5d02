package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthly_AddWorkedRecomputesOvertime(t *testing.T) {
	m := NewMonthly("E1", 2024, 3, 160*60)
	assert.Zero(t, m.OvertimeMinutes)

	m.AddWorked(150 * 60)
	assert.Equal(t, -10*60, m.OvertimeMinutes)

	m.AddWorked(20 * 60)
	assert.Equal(t, 170*60, m.TotalMinutes)
	assert.Equal(t, 10*60, m.OvertimeMinutes)
}

func TestMonthly_ConsumeScheduled(t *testing.T) {
	m := NewMonthly("E1", 2024, 3, 600)
	m.ConsumeScheduled(480)
	assert.Equal(t, 120, m.RealisticMinutes)
	assert.Equal(t, 600, m.DefaultMinutes)
}

func TestCredit_EveryOutcomeIsOneDay(t *testing.T) {
	for _, c := range []Credit{CreditOnTime, CreditLate, CreditMixed, CreditMissing} {
		assert.InDelta(t, 1.0, c.Total(), 1e-9)
	}
}

func TestDepartmentStat_Apply(t *testing.T) {
	d := DepartmentStat{}
	d.Apply(CreditMixed)
	d.Apply(CreditOnTime)
	d.Apply(CreditMissing)
	assert.Equal(t, 1.5, d.OnTime)
	assert.Equal(t, 0.5, d.Late)
	assert.Equal(t, 1.0, d.Missing)
}
