package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	shift.ShiftRepository
	dayoff.DayOffRepository
	attendance.AttendanceRepository
	audit.AuditRepository
	ledger stats.Ledger
	access *access.Resolver
	guard  *access.Guard
	clock  clock.Clock
}

type Dependencies struct {
	Schedules   schedule.ScheduleRepository
	Shifts      shift.ShiftRepository
	DayOffs     dayoff.DayOffRepository
	Attendances attendance.AttendanceRepository
	Audit       audit.AuditRepository
	Ledger      stats.Ledger
	Access      *access.Resolver
	Guard       *access.Guard
	Clock       clock.Clock
}

func NewScheduleService(d Dependencies) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepository:   d.Schedules,
		ShiftRepository:      d.Shifts,
		DayOffRepository:     d.DayOffs,
		AttendanceRepository: d.Attendances,
		AuditRepository:      d.Audit,
		ledger:               d.Ledger,
		access:               d.Access,
		guard:                d.Guard,
		clock:                d.Clock,
	}
}

// rejections are per-date outcomes reported in the batch result instead of
// failing the whole request.
var rejections = []error{
	schedule.ErrDateOnDayOff,
	schedule.ErrShiftConflict,
	schedule.ErrDuplicateShiftCode,
	attendance.ErrRecordExists,
	employee.ErrConcurrentUpdate,
}

func isRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// AssignShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) AssignShift(ctx context.Context, req schedule.AssignShiftRequest) (schedule.AssignShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignShiftResponse{}, err
	}

	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return schedule.AssignShiftResponse{}, err
	}
	if scope.SelfOnly() {
		return schedule.AssignShiftResponse{}, user.ErrManagerAccessRequired
	}
	if !scope.AllowsDepartment(req.Department) {
		return schedule.AssignShiftResponse{}, user.ErrOutOfScope
	}

	target, err := s.access.Employee(ctx, scope, req.EmployeeID)
	if err != nil {
		return schedule.AssignShiftResponse{}, err
	}
	if _, ok := target.Membership(req.Department); !ok {
		return schedule.AssignShiftResponse{}, employee.ErrNotInDepartment
	}
	if !target.HasPosition(req.Department, req.Position) {
		return schedule.AssignShiftResponse{}, employee.ErrPositionNotHeld
	}

	template, err := s.ShiftRepository.GetByCode(ctx, req.ShiftCode)
	if err != nil {
		return schedule.AssignShiftResponse{}, err
	}

	loc := s.clock.Location()
	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, _ := validator.ParseDateIn(raw, loc)
		dates = append(dates, d)
	}

	unlock, err := s.guard.Lock(ctx, target.ID)
	if err != nil {
		return schedule.AssignShiftResponse{}, err
	}
	defer unlock()

	var result schedule.BatchResult
	for _, date := range dates {
		err := s.guard.Unit(ctx, target.ID, func(ctx context.Context, emp employee.Employee) error {
			return s.assignOne(ctx, emp, req, template, date)
		})
		switch {
		case err == nil:
			result.Ok(date)
		case isRejection(err):
			result.Fail(date, err)
		default:
			return schedule.AssignShiftResponse{}, fmt.Errorf("failed to assign shift on %s: %w", schedule.FormatDate(date), err)
		}
	}

	calendar, err := s.ScheduleRepository.List(ctx, schedule.ScheduleFilter{EmployeeID: target.ID})
	if err != nil {
		return schedule.AssignShiftResponse{}, fmt.Errorf("failed to load calendar: %w", err)
	}

	slog.Info("Schedule: shift assigned",
		"employee_id", target.ID,
		"shift_code", template.Code,
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return schedule.ToAssignShiftResponse(calendar, result), nil
}

func (s *ScheduleServiceImpl) assignOne(ctx context.Context, emp employee.Employee, req schedule.AssignShiftRequest, template shift.Template, date time.Time) error {
	offs, err := s.DayOffRepository.ListAllowedCovering(ctx, emp.ID, date)
	if err != nil {
		return fmt.Errorf("failed to check day offs: %w", err)
	}
	if len(offs) > 0 {
		return schedule.ErrDateOnDayOff
	}

	candidate, err := shift.SpanOn(date, template.StartTime, template.EndTime)
	if err != nil {
		return err
	}

	existing, err := s.ScheduleRepository.ListByEmployeeDate(ctx, emp.ID, date)
	if err != nil {
		return fmt.Errorf("failed to load assignments: %w", err)
	}
	for _, ex := range existing {
		if ex.Department == req.Department && ex.ShiftCode == template.Code {
			return schedule.ErrDuplicateShiftCode
		}
	}
	for _, ex := range existing {
		span, err := ex.Span()
		if err != nil {
			return err
		}
		if schedule.Conflicts(candidate, span) {
			return fmt.Errorf("%w: %s %s-%s in %s", schedule.ErrShiftConflict, ex.ShiftCode, ex.StartTime, ex.EndTime, ex.Department)
		}
	}

	monthly, err := s.ledger.ConsumeScheduled(ctx, emp.ID, stats.PeriodOf(date), emp.MonthlyTargetMinutes, template.DurationMinutes)
	if err != nil {
		return err
	}

	assignment, err := s.ScheduleRepository.Create(ctx, schedule.Assignment{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		Department:      req.Department,
		Date:            date,
		Position:        req.Position,
		ShiftCode:       template.Code,
		ShiftName:       template.Name,
		StartTime:       template.StartTime,
		EndTime:         template.EndTime,
		DurationMinutes: template.DurationMinutes,
		TimeLeftMinutes: monthly.RealisticMinutes,
	})
	if err != nil {
		return err
	}

	if req.Department == employee.DepartmentSchool {
		return s.creditSchoolDay(ctx, emp, assignment, candidate)
	}
	return nil
}

// creditSchoolDay records a training day as attended on time for a fixed
// eight hours.
func (s *ScheduleServiceImpl) creditSchoolDay(ctx context.Context, emp employee.Employee, a schedule.Assignment, span shift.Span) error {
	now := s.clock.Now()
	rec := attendance.NewRecord(uuid.NewString(), a, now)
	rec.CheckIn(span.Start, attendance.OnTime)
	credit := rec.CheckOut(span.Start.Add(employee.SchoolShiftMinutes*time.Minute), attendance.OnTime, now)

	if _, err := s.AttendanceRepository.Create(ctx, rec); err != nil {
		return err
	}
	period := stats.PeriodOf(a.Date)
	if _, err := s.ledger.AddWorked(ctx, emp.ID, period, emp.MonthlyTargetMinutes, rec.WorkedMinutes); err != nil {
		return err
	}
	if _, err := s.ledger.Credit(ctx, emp.ID, a.Department, period, credit); err != nil {
		return err
	}
	return nil
}

// GetSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, req schedule.GetScheduleRequest) ([]schedule.AssignmentResponse, error) {
	assignments, err := s.list(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, schedule.ToAssignmentResponse(a))
	}
	return out, nil
}

func (s *ScheduleServiceImpl) list(ctx context.Context, req schedule.GetScheduleRequest) ([]schedule.Assignment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, scope, err := s.access.Scope(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Employee(ctx, scope, req.EmployeeID); err != nil {
		return nil, err
	}

	loc := s.clock.Location()
	filter := schedule.ScheduleFilter{EmployeeID: req.EmployeeID, Department: req.Department}
	if req.Date != nil {
		d, _ := validator.ParseDateIn(*req.Date, loc)
		filter.Date = &d
	}
	if req.Year != nil {
		from := time.Date(*req.Year, time.January, 1, 0, 0, 0, 0, loc)
		to := from.AddDate(1, 0, 0)
		if req.Month != nil {
			from = time.Date(*req.Year, time.Month(*req.Month), 1, 0, 0, 0, 0, loc)
			to = from.AddDate(0, 1, 0)
		}
		filter.From, filter.To = &from, &to
	}

	assignments, err := s.ScheduleRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}

	if !scope.IsUnrestricted() && req.EmployeeID != scope.EmployeeID() {
		visible := assignments[:0]
		for _, a := range assignments {
			if scope.AllowsDepartment(a.Department) {
				visible = append(visible, a)
			}
		}
		assignments = visible
	}
	return assignments, nil
}

// DeleteScheduleEntry implements schedule.ScheduleService. Attendance
// records of the date are kept.
func (s *ScheduleServiceImpl) DeleteScheduleEntry(ctx context.Context, req schedule.DeleteScheduleEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	caller, scope, err := s.access.Scope(ctx)
	if err != nil {
		return err
	}
	if scope.SelfOnly() {
		return user.ErrManagerAccessRequired
	}
	if _, err := s.access.Employee(ctx, scope, req.EmployeeID); err != nil {
		return err
	}

	date, _ := validator.ParseDateIn(req.Date, s.clock.Location())

	return s.guard.Employee(ctx, req.EmployeeID, func(ctx context.Context, emp employee.Employee) error {
		before, err := s.ScheduleRepository.ListByEmployeeDate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to load schedule entry: %w", err)
		}
		for _, a := range before {
			if !scope.AllowsDepartment(a.Department) {
				return user.ErrOutOfScope
			}
		}

		removed, err := s.ScheduleRepository.DeleteByEmployeeDate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to delete schedule entry: %w", err)
		}
		if removed == 0 {
			return schedule.ErrScheduleNotFound
		}

		entry := audit.NewEntry(uuid.NewString(), s.clock.Now(), audit.TypeScheduleDelete, caller, emp.ID, before, nil)
		if err := s.AuditRepository.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to write audit entry: %w", err)
		}
		return nil
	})
}
