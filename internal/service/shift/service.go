package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(shiftRepository shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{ShiftRepository: shiftRepository}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	duration, err := shift.DurationBetween(req.StartTime, req.EndTime)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Template{
		Code:            req.Code,
		Name:            req.Name,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
	})
	if err != nil {
		if errors.Is(err, shift.ErrShiftCodeExists) || errors.Is(err, shift.ErrShiftNameExists) {
			return shift.ShiftResponse{}, err
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift.ToResponse(created), nil
}

// Update implements shift.ShiftService. Assignments keep the slot they
// were created with.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.ShiftRepository.GetByCode(ctx, req.Code)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.StartTime != nil {
		current.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		current.EndTime = *req.EndTime
	}
	if current.StartTime == current.EndTime {
		return shift.ShiftResponse{}, fmt.Errorf("%w: start and end must differ", shift.ErrInvalidClock)
	}
	current.DurationMinutes, err = shift.DurationBetween(current.StartTime, current.EndTime)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	updated, err := s.ShiftRepository.Update(ctx, current)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNameExists) || errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, err
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift.ToResponse(updated), nil
}

// GetByCode implements shift.ShiftService.
func (s *ShiftServiceImpl) GetByCode(ctx context.Context, code string) (shift.ShiftResponse, error) {
	t, err := s.ShiftRepository.GetByCode(ctx, code)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(t), nil
}

// GetByName implements shift.ShiftService.
func (s *ShiftServiceImpl) GetByName(ctx context.Context, name string) (shift.ShiftResponse, error) {
	t, err := s.ShiftRepository.GetByName(ctx, name)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(t), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	templates, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	out := make([]shift.ShiftResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, shift.ToResponse(t))
	}
	return out, nil
}
