package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
)

// Reconcile implements attendance.Reconciler. It closes every shift of
// yesterday and today whose punch window ended before at: unattended
// shifts become missing, open ones are checked out late at their nominal
// end. Closed records are left alone, so repeated sweeps are no-ops.
func (s *AttendanceServiceImpl) Reconcile(ctx context.Context, at time.Time) (attendance.ReconcileReport, error) {
	at = at.In(s.clock.Location())
	employees, err := s.EmployeeRepository.List(ctx, employee.EmployeeFilter{ActiveAt: &at})
	if err != nil {
		return attendance.ReconcileReport{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	var (
		mu     sync.Mutex
		report = attendance.ReconcileReport{Employees: len(employees)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, emp := range employees {
		id := emp.ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			missing, forced, err := s.reconcileEmployee(gctx, id, at)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				report.Failed++
				slog.Error("Reconcile: employee failed", "employee_id", id, "error", err)
				return nil
			}
			report.Missing += missing
			report.ForcedOut += forced
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	slog.Info("Reconcile: sweep finished",
		"at", at.Format(time.RFC3339),
		"employees", report.Employees,
		"missing", report.Missing,
		"forced_out", report.ForcedOut,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *AttendanceServiceImpl) reconcileEmployee(ctx context.Context, employeeID string, at time.Time) (missing, forced int, err error) {
	err = s.guard.Employee(ctx, employeeID, func(ctx context.Context, emp employee.Employee) error {
		missing, forced = 0, 0

		today := clock.StartOfDay(at)
		from := today.AddDate(0, 0, -1)
		to := today.AddDate(0, 0, 1)
		assignments, err := s.ScheduleRepository.List(ctx, schedule.ScheduleFilter{EmployeeID: emp.ID, From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to load assignments: %w", err)
		}

		for _, a := range assignments {
			span, err := a.Span()
			if err != nil {
				return err
			}
			if !attendance.Elapsed(span, at) {
				continue
			}

			rec, err := s.AttendanceRepository.GetByKey(ctx, emp.ID, a.Date, a.ShiftCode)
			switch {
			case errors.Is(err, attendance.ErrAttendanceNotFound):
				if err := s.markMissing(ctx, emp, a, at); err != nil {
					return err
				}
				missing++
			case err != nil:
				return fmt.Errorf("failed to load attendance: %w", err)
			case rec.State() == attendance.StateCheckedIn:
				credit := rec.CheckOut(span.End, attendance.Late, at)
				if err := s.close(ctx, emp, rec, credit); err != nil {
					return err
				}
				forced++
			}
		}
		return nil
	})
	return missing, forced, err
}

func (s *AttendanceServiceImpl) markMissing(ctx context.Context, emp employee.Employee, a schedule.Assignment, at time.Time) error {
	rec := attendance.NewRecord(uuid.NewString(), a, at)
	credit := rec.MarkMissing(at)
	if _, err := s.AttendanceRepository.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to create missing attendance: %w", err)
	}
	if _, err := s.ledger.Credit(ctx, emp.ID, a.Department, stats.PeriodOf(a.Date), credit); err != nil {
		return err
	}
	return nil
}
