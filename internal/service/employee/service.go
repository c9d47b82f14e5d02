package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	access *access.Resolver
	guard  *access.Guard
	clock  clock.Clock
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, resolver *access.Resolver, guard *access.Guard, c clock.Clock) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		access:             resolver,
		guard:              guard,
		clock:              c,
	}
}

func (s *EmployeeServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create implements employee.EmployeeService. Managers register staff
// into their own departments only; admins may be created by admins only.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !caller.IsManager() {
		return employee.EmployeeResponse{}, user.ErrManagerAccessRequired
	}
	if user.Role(req.Role) == user.RoleAdmin && !caller.IsAdmin() {
		return employee.EmployeeResponse{}, user.ErrAdminPrivilegeRequired
	}

	memberships := make([]employee.Membership, 0, len(req.Departments))
	for i, m := range req.Departments {
		if !scope.AllowsDepartment(m.Department) {
			return employee.EmployeeResponse{}, user.ErrOutOfScope
		}
		memberships = append(memberships, employee.Membership{Department: m.Department, Positions: m.Positions, Ordinal: i})
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		ID:                   req.ID,
		Name:                 req.Name,
		Email:                req.Email,
		PasswordHash:         &hash,
		Role:                 user.Role(req.Role),
		Status:               employee.StatusActive,
		DefaultDayOff:        req.DefaultDayOff,
		RealisticDayOff:      req.DefaultDayOff,
		MonthlyTargetMinutes: req.MonthlyTargetMinutes(),
		Departments:          memberships,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee: created", "employee_id", created.ID, "role", created.Role, "created_by", caller.EmployeeID)
	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp, err := s.access.Employee(ctx, scope, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeeRequest) ([]employee.EmployeeResponse, error) {
	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return nil, err
	}

	filter := employee.EmployeeFilter{Department: req.Department}
	switch {
	case scope.SelfOnly():
		self := scope.EmployeeID()
		filter.EmployeeID = &self
	case !scope.IsUnrestricted():
		filter.Departments = scope.Departments()
	}
	if req.ActiveOnly {
		now := s.clock.Now()
		filter.ActiveAt = &now
	}

	employees, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.ToResponse(e))
	}
	return resp, nil
}

// Deactivate implements employee.EmployeeService. The employee stays active
// until EffectiveAt, which defaults to now.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, req employee.DeactivateEmployeeRequest) (employee.EmployeeResponse, error) {
	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !caller.IsManager() {
		return employee.EmployeeResponse{}, user.ErrManagerAccessRequired
	}
	if _, err := s.access.Employee(ctx, scope, req.EmployeeID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	now := s.clock.Now()
	at := now
	if !validator.IsEmpty(req.EffectiveAt) {
		parsed, err := time.Parse(time.RFC3339, req.EffectiveAt)
		if err != nil {
			var errs validator.ValidationErrors
			errs.Add("effective_at", "effective_at must be an RFC3339 timestamp")
			return employee.EmployeeResponse{}, errs.Err()
		}
		if parsed.Before(now) {
			return employee.EmployeeResponse{}, employee.ErrInvalidDeactivate
		}
		at = parsed.In(s.clock.Location())
	}

	var updated employee.Employee
	err = s.guard.Employee(ctx, req.EmployeeID, func(ctx context.Context, emp employee.Employee) error {
		if err := s.EmployeeRepository.Deactivate(ctx, emp.ID, at); err != nil {
			return fmt.Errorf("failed to deactivate employee: %w", err)
		}
		updated, err = s.EmployeeRepository.GetByID(ctx, emp.ID)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee: deactivated", "employee_id", updated.ID, "effective_at", at.Format(time.RFC3339))
	return employee.ToResponse(updated), nil
}
