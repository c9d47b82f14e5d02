package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	schedule.ScheduleRepository
	employee.EmployeeRepository
	audit.AuditRepository
	ledger  stats.Ledger
	access  *access.Resolver
	guard   *access.Guard
	clock   clock.Clock
	rates   attendance.CommissionRates
	workers int
}

type Dependencies struct {
	Attendances attendance.AttendanceRepository
	Schedules   schedule.ScheduleRepository
	Employees   employee.EmployeeRepository
	Audit       audit.AuditRepository
	Ledger      stats.Ledger
	Access      *access.Resolver
	Guard       *access.Guard
	Clock       clock.Clock
	Rates       attendance.CommissionRates
	// Workers bounds how many employees a reconcile sweep handles at once.
	Workers int
}

func NewAttendanceService(d Dependencies) *AttendanceServiceImpl {
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: d.Attendances,
		ScheduleRepository:   d.Schedules,
		EmployeeRepository:   d.Employees,
		AuditRepository:      d.Audit,
		ledger:               d.Ledger,
		access:               d.Access,
		guard:                d.Guard,
		clock:                d.Clock,
		rates:                d.Rates,
		workers:              workers,
	}
}

var (
	_ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
	_ attendance.Reconciler        = (*AttendanceServiceImpl)(nil)
)

// punchTarget resolves whose shift a punch is for. Employees punch only for
// themselves; managers may punch for employees in their departments.
func (s *AttendanceServiceImpl) punchTarget(ctx context.Context, req attendance.PunchRequest) (string, user.Scope, error) {
	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return "", user.Scope{}, err
	}
	if req.EmployeeID == "" || req.EmployeeID == caller.EmployeeID {
		return caller.EmployeeID, scope, nil
	}
	if scope.SelfOnly() {
		return "", user.Scope{}, user.ErrInsufficientPermissions
	}
	if _, err := s.access.Employee(ctx, scope, req.EmployeeID); err != nil {
		return "", user.Scope{}, err
	}
	return req.EmployeeID, scope, nil
}

// candidates lists the assignments of yesterday and today with their
// records. Yesterday is included for shifts that run past midnight.
func (s *AttendanceServiceImpl) candidates(ctx context.Context, emp employee.Employee, now time.Time) ([]attendance.Candidate, error) {
	today := clock.StartOfDay(now)
	from := today.AddDate(0, 0, -1)
	to := today.AddDate(0, 0, 1)

	assignments, err := s.ScheduleRepository.List(ctx, schedule.ScheduleFilter{EmployeeID: emp.ID, From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	out := make([]attendance.Candidate, 0, len(assignments))
	for _, a := range assignments {
		span, err := a.Span()
		if err != nil {
			return nil, err
		}
		c := attendance.Candidate{Assignment: a, Span: span, Ordinal: emp.DepartmentOrdinal(a.Department)}

		rec, err := s.AttendanceRepository.GetByKey(ctx, emp.ID, a.Date, a.ShiftCode)
		switch {
		case err == nil:
			c.Record = &rec
		case !errors.Is(err, attendance.ErrAttendanceNotFound):
			return nil, fmt.Errorf("failed to load attendance: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *AttendanceServiceImpl) resolve(ctx context.Context, emp employee.Employee, scope user.Scope, now time.Time, op attendance.Operation) (attendance.Resolution, error) {
	if !emp.IsActiveAt(now) {
		return attendance.Resolution{}, employee.ErrEmployeeInactive
	}
	cands, err := s.candidates(ctx, emp, now)
	if err != nil {
		return attendance.Resolution{}, err
	}
	res, err := attendance.Resolve(cands, now, op)
	if err != nil {
		return attendance.Resolution{}, err
	}
	if emp.ID != scope.EmployeeID() && !scope.AllowsDepartment(res.Candidate.Assignment.Department) {
		return attendance.Resolution{}, user.ErrOutOfScope
	}
	return res, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	target, scope, err := s.punchTarget(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var rec attendance.Record
	err = s.guard.Employee(ctx, target, func(ctx context.Context, emp employee.Employee) error {
		now := s.clock.Now()
		res, err := s.resolve(ctx, emp, scope, now, attendance.OpCheckIn)
		if err != nil {
			return err
		}

		rec = attendance.NewRecord(uuid.NewString(), res.Candidate.Assignment, now)
		rec.CheckIn(now, res.Punctuality)
		if rec, err = s.AttendanceRepository.Create(ctx, rec); err != nil {
			if errors.Is(err, attendance.ErrRecordExists) {
				return attendance.ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance: checked in", "employee_id", target, "shift_code", rec.ShiftCode, "status", *rec.CheckInStatus)
	return attendance.ToResponse(rec), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	target, scope, err := s.punchTarget(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var rec attendance.Record
	err = s.guard.Employee(ctx, target, func(ctx context.Context, emp employee.Employee) error {
		now := s.clock.Now()
		res, err := s.resolve(ctx, emp, scope, now, attendance.OpCheckOut)
		if err != nil {
			return err
		}
		rec = *res.Candidate.Record
		credit := rec.CheckOut(now, res.Punctuality, now)
		return s.close(ctx, emp, rec, credit)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance: checked out", "employee_id", target, "shift_code", rec.ShiftCode, "worked_minutes", rec.WorkedMinutes)
	return attendance.ToResponse(rec), nil
}

// close persists a record that just reached checked-out and books its
// worked time and credit against the month of the shift date.
func (s *AttendanceServiceImpl) close(ctx context.Context, emp employee.Employee, rec attendance.Record, credit stats.Credit) error {
	if err := s.AttendanceRepository.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	period := stats.PeriodOf(rec.Date)
	if _, err := s.ledger.AddWorked(ctx, emp.ID, period, emp.MonthlyTargetMinutes, rec.WorkedMinutes); err != nil {
		return err
	}
	if _, err := s.ledger.Credit(ctx, emp.ID, rec.Department, period, credit); err != nil {
		return err
	}
	return nil
}

// UpdatePositionDetails implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdatePositionDetails(ctx context.Context, req attendance.UpdateDetailsRequest) (attendance.AttendanceResponse, error) {
	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := s.AttendanceRepository.GetByID(ctx, req.RecordID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if current.EmployeeID != caller.EmployeeID && !scope.AllowsDepartment(current.Department) {
		return attendance.AttendanceResponse{}, user.ErrOutOfScope
	}

	var rec attendance.Record
	err = s.guard.Employee(ctx, current.EmployeeID, func(ctx context.Context, emp employee.Employee) error {
		rec, err = s.AttendanceRepository.GetByID(ctx, req.RecordID)
		if err != nil {
			return err
		}
		before := rec.Details
		if err := attendance.ApplyDetails(&rec, req.Details, s.rates); err != nil {
			return err
		}
		rec.UpdatedAt = s.clock.Now()
		if err := s.AttendanceRepository.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		entry := audit.NewEntry(uuid.NewString(), s.clock.Now(), audit.TypeAttendanceDetails, caller, emp.ID, before, rec.Details)
		if err := s.AuditRepository.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to write audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(rec), nil
}
