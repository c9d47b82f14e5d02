package shift

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/memory"
)

func newService() shift.ShiftService {
	return NewShiftService(memory.NewStore().Shifts())
}

func TestCreate_ComputesDuration(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	day, err := svc.Create(ctx, shift.CreateShiftRequest{Code: "F", Name: "Frueh", StartTime: "08:00", EndTime: "16:30"})
	require.NoError(t, err)
	assert.Equal(t, 8.5, day.DurationHours)

	night, err := svc.Create(ctx, shift.CreateShiftRequest{Code: "N", Name: "Nacht", StartTime: "22:00", EndTime: "06:00"})
	require.NoError(t, err)
	assert.Equal(t, 8.0, night.DurationHours)
}

func TestCreate_Uniqueness(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Create(ctx, shift.CreateShiftRequest{Code: "F", Name: "Frueh", StartTime: "08:00", EndTime: "16:00"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, shift.CreateShiftRequest{Code: "F", Name: "Other", StartTime: "08:00", EndTime: "16:00"})
	assert.ErrorIs(t, err, shift.ErrShiftCodeExists)

	_, err = svc.Create(ctx, shift.CreateShiftRequest{Code: "G", Name: "Frueh", StartTime: "08:00", EndTime: "16:00"})
	assert.ErrorIs(t, err, shift.ErrShiftNameExists)
}

func TestCreate_Validation(t *testing.T) {
	_, err := newService().Create(context.Background(), shift.CreateShiftRequest{Code: "F", Name: "x", StartTime: "8:00", EndTime: "25:00"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_time")
	assert.Contains(t, verrs.ToMap(), "end_time")
}

func TestUpdate_RecomputesDuration(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Create(ctx, shift.CreateShiftRequest{Code: "F", Name: "Frueh", StartTime: "08:00", EndTime: "16:00"})
	require.NoError(t, err)

	end := "18:00"
	updated, err := svc.Update(ctx, shift.UpdateShiftRequest{Code: "F", EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, 10.0, updated.DurationHours)

	byName, err := svc.GetByName(ctx, "Frueh")
	require.NoError(t, err)
	assert.Equal(t, "18:00", byName.EndTime)

	_, err = svc.Update(ctx, shift.UpdateShiftRequest{Code: "X", EndTime: &end})
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}
