package dayoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

type DayOffServiceImpl struct {
	dayoff.DayOffRepository
	employee.EmployeeRepository
	audit.AuditRepository
	access *access.Resolver
	guard  *access.Guard
	clock  clock.Clock
}

func NewDayOffService(
	dayOffRepository dayoff.DayOffRepository,
	employeeRepository employee.EmployeeRepository,
	auditRepository audit.AuditRepository,
	resolver *access.Resolver,
	guard *access.Guard,
	c clock.Clock,
) *DayOffServiceImpl {
	return &DayOffServiceImpl{
		DayOffRepository:   dayOffRepository,
		EmployeeRepository: employeeRepository,
		AuditRepository:    auditRepository,
		access:             resolver,
		guard:              guard,
		clock:              c,
	}
}

var _ dayoff.DayOffService = (*DayOffServiceImpl)(nil)

func (s *DayOffServiceImpl) period(start, end string) (time.Time, time.Time) {
	loc := s.clock.Location()
	from, _ := validator.ParseDateIn(start, loc)
	to, _ := validator.ParseDateIn(end, loc)
	return from, to
}

// consume lowers the employee's balance by the period duration the first
// time the period is applied to them.
func (s *DayOffServiceImpl) consume(ctx context.Context, p dayoff.Period, employeeID string) error {
	return s.guard.Employee(ctx, employeeID, func(ctx context.Context, emp employee.Employee) error {
		err := s.DayOffRepository.AddConsumption(ctx, dayoff.NewConsumption(p, emp.ID, s.clock.Now()))
		if errors.Is(err, dayoff.ErrAlreadyConsumed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to record day-off consumption: %w", err)
		}
		if err := s.EmployeeRepository.UpdateRealisticDayOff(ctx, emp.ID, emp.RealisticDayOff-p.Duration); err != nil {
			return fmt.Errorf("failed to update day-off balance: %w", err)
		}
		return nil
	})
}

// Create implements dayoff.DayOffService. Created periods are allowed
// immediately. A global period is admin-only and consumes the balance of
// every employee active now.
func (s *DayOffServiceImpl) Create(ctx context.Context, req dayoff.CreateDayOffRequest) (dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return dayoff.DayOffResponse{}, err
	}

	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}
	if !caller.IsManager() {
		return dayoff.DayOffResponse{}, user.ErrManagerAccessRequired
	}

	kind := dayoff.Kind(req.Kind)
	var targets []string
	switch kind {
	case dayoff.KindGlobal:
		if !scope.IsUnrestricted() {
			return dayoff.DayOffResponse{}, user.ErrInsufficientPermissions
		}
		now := s.clock.Now()
		active, err := s.EmployeeRepository.List(ctx, employee.EmployeeFilter{ActiveAt: &now})
		if err != nil {
			return dayoff.DayOffResponse{}, fmt.Errorf("failed to list active employees: %w", err)
		}
		for _, e := range active {
			targets = append(targets, e.ID)
		}
	case dayoff.KindSpecific:
		if _, err := s.access.Employee(ctx, scope, *req.EmployeeID); err != nil {
			return dayoff.DayOffResponse{}, err
		}
		targets = []string{*req.EmployeeID}
	}

	start, end := s.period(req.StartDate, req.EndDate)
	p, err := s.DayOffRepository.Create(ctx, dayoff.Period{
		ID:         uuid.NewString(),
		StartDate:  start,
		EndDate:    end,
		Duration:   dayoff.Duration(start, end),
		Kind:       kind,
		Allowed:    true,
		Status:     dayoff.StatusApproved,
		EmployeeID: req.EmployeeID,
		Reason:     req.Reason,
		CreatedBy:  caller.EmployeeID,
	})
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	for _, id := range targets {
		if err := s.consume(ctx, p, id); err != nil {
			return dayoff.DayOffResponse{}, fmt.Errorf("failed to apply day off to %s: %w", id, err)
		}
	}

	slog.Info("DayOff: created", "id", p.ID, "kind", p.Kind, "duration", p.Duration, "employees", len(targets))
	return dayoff.ToResponse(p), nil
}

// checkPeriod verifies the caller may manage p.
func (s *DayOffServiceImpl) checkPeriod(ctx context.Context, scope user.Scope, p dayoff.Period) error {
	if p.Kind == dayoff.KindGlobal {
		if !scope.IsUnrestricted() {
			return user.ErrInsufficientPermissions
		}
		return nil
	}
	_, err := s.access.Employee(ctx, scope, *p.EmployeeID)
	return err
}

// Delete implements dayoff.DayOffService. Ledger rows go with the period;
// balances already lowered stay as they are.
func (s *DayOffServiceImpl) Delete(ctx context.Context, id string) error {
	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return err
	}
	if !caller.IsManager() {
		return user.ErrManagerAccessRequired
	}

	p, err := s.DayOffRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkPeriod(ctx, scope, p); err != nil {
		return err
	}

	if err := s.DayOffRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete day off: %w", err)
	}

	edited := string(dayoff.KindGlobal)
	if p.EmployeeID != nil {
		edited = *p.EmployeeID
	}
	entry := audit.NewEntry(uuid.NewString(), s.clock.Now(), audit.TypeDayOffDelete, caller, edited, dayoff.ToResponse(p), nil)
	if err := s.AuditRepository.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// List implements dayoff.DayOffService. Employees see the periods that
// apply to them; managers see global periods and those of employees in
// their departments.
func (s *DayOffServiceImpl) List(ctx context.Context, req dayoff.ListDayOffRequest) ([]dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return nil, err
	}

	filter := dayoff.DayOffFilter{EmployeeID: req.EmployeeID}
	if req.Status != nil {
		status := dayoff.Status(*req.Status)
		filter.Status = &status
	}
	if scope.SelfOnly() {
		self := scope.EmployeeID()
		filter.EmployeeID = &self
	}
	if filter.EmployeeID != nil {
		if _, err := s.access.Employee(ctx, scope, *filter.EmployeeID); err != nil {
			return nil, err
		}
	}

	periods, err := s.DayOffRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list day offs: %w", err)
	}

	visible := make(map[string]bool)
	resp := make([]dayoff.DayOffResponse, 0, len(periods))
	for _, p := range periods {
		if p.Kind == dayoff.KindSpecific && !scope.IsUnrestricted() {
			id := *p.EmployeeID
			ok, seen := visible[id]
			if !seen {
				_, err := s.access.Employee(ctx, scope, id)
				ok = err == nil
				visible[id] = ok
			}
			if !ok {
				continue
			}
		}
		resp = append(resp, dayoff.ToResponse(p))
	}
	return resp, nil
}

// Request implements dayoff.DayOffService. The caller asks for days off
// for themselves; the period stays pending until a manager decides.
func (s *DayOffServiceImpl) Request(ctx context.Context, req dayoff.RequestDayOffRequest) (dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return dayoff.DayOffResponse{}, err
	}

	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, caller.EmployeeID)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	start, end := s.period(req.StartDate, req.EndDate)
	duration := dayoff.Duration(start, end)
	if emp.RealisticDayOff <= 0 || duration > emp.RealisticDayOff {
		return dayoff.DayOffResponse{}, dayoff.ErrInsufficientBalance
	}
	earliest := clock.Today(s.clock).AddDate(0, dayoff.MinRequestLeadMonths, 0)
	if start.Before(earliest) {
		return dayoff.DayOffResponse{}, dayoff.ErrRequestTooSoon
	}

	p, err := s.DayOffRepository.Create(ctx, dayoff.Period{
		ID:         uuid.NewString(),
		StartDate:  start,
		EndDate:    end,
		Duration:   duration,
		Kind:       dayoff.KindSpecific,
		Status:     dayoff.StatusPending,
		EmployeeID: &emp.ID,
		Reason:     req.Reason,
		CreatedBy:  emp.ID,
	})
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	slog.Info("DayOff: requested", "id", p.ID, "employee_id", emp.ID, "duration", duration)
	return dayoff.ToResponse(p), nil
}

// Decide implements dayoff.DayOffService. Approval allows the period and
// consumes the balance once; denial removes the period.
func (s *DayOffServiceImpl) Decide(ctx context.Context, req dayoff.DecideRequest) (dayoff.DayOffResponse, error) {
	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}
	if !caller.IsManager() {
		return dayoff.DayOffResponse{}, user.ErrManagerAccessRequired
	}

	p, err := s.DayOffRepository.GetByID(ctx, req.ID)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}
	if p.EmployeeID == nil || p.CreatedBy != *p.EmployeeID {
		return dayoff.DayOffResponse{}, dayoff.ErrNotARequest
	}
	if p.Status != dayoff.StatusPending {
		return dayoff.DayOffResponse{}, dayoff.ErrRequestAlreadyDecided
	}
	if _, err := s.access.Employee(ctx, scope, *p.EmployeeID); err != nil {
		return dayoff.DayOffResponse{}, err
	}
	before := dayoff.ToResponse(p)

	if req.Approve {
		p.Allowed = true
		p.Status = dayoff.StatusApproved
		if err := s.DayOffRepository.Update(ctx, p); err != nil {
			return dayoff.DayOffResponse{}, fmt.Errorf("failed to approve day off: %w", err)
		}
		if err := s.consume(ctx, p, *p.EmployeeID); err != nil {
			return dayoff.DayOffResponse{}, err
		}
	} else {
		p.Status = dayoff.StatusDenied
		if err := s.DayOffRepository.Delete(ctx, p.ID); err != nil {
			return dayoff.DayOffResponse{}, fmt.Errorf("failed to remove denied day off: %w", err)
		}
	}

	after := dayoff.ToResponse(p)
	entry := audit.NewEntry(uuid.NewString(), s.clock.Now(), audit.TypeDayOffDecision, caller, *p.EmployeeID, before, after)
	if err := s.AuditRepository.Append(ctx, entry); err != nil {
		return dayoff.DayOffResponse{}, fmt.Errorf("failed to write audit entry: %w", err)
	}

	slog.Info("DayOff: request decided", "id", p.ID, "employee_id", *p.EmployeeID, "status", p.Status)
	return after, nil
}
