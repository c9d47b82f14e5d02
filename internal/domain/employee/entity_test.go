package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_IsActiveAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, Employee{Status: StatusActive}.IsActiveAt(now))
	assert.False(t, Employee{Status: StatusInactive}.IsActiveAt(now))
	assert.True(t, Employee{Status: StatusInactive, InactiveAt: &future}.IsActiveAt(now))
	assert.False(t, Employee{Status: StatusInactive, InactiveAt: &past}.IsActiveAt(now))
}

func TestEmployee_Membership(t *testing.T) {
	e := Employee{Departments: []Membership{
		{Department: "C2", Positions: []string{PositionService}, Ordinal: 0},
		{Department: "C6", Positions: []string{PositionDriver, PositionLito}, Ordinal: 1},
	}}

	assert.True(t, e.HasPosition("C6", PositionDriver))
	assert.False(t, e.HasPosition("C2", PositionDriver))
	assert.False(t, e.HasPosition("C Ulm", PositionService))
	assert.Equal(t, []string{"C2", "C6"}, e.DepartmentNames())
	assert.Equal(t, 1, e.DepartmentOrdinal("C6"))
	assert.Equal(t, -1, e.DepartmentOrdinal("X"))
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{
		ID:                 "E001",
		Name:               "Anna",
		Password:           "password123",
		Role:               "employee",
		DefaultDayOff:      12,
		MonthlyTargetHours: 160,
		Departments:        []MembershipRequest{{Department: "C2", Positions: []string{PositionService}}},
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, 9600, req.MonthlyTargetMinutes())

	req.Departments = append(req.Departments, MembershipRequest{Department: "C2", Positions: []string{"Pilot"}})
	assert.Error(t, req.Validate())
}
