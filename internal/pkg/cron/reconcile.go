package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
)

// ReconcileJobs closes elapsed shifts on a fixed interval.
type ReconcileJobs struct {
	reconciler attendance.Reconciler
	clock      clock.Clock
	interval   time.Duration
}

func NewReconcileJobs(reconciler attendance.Reconciler, c clock.Clock, interval time.Duration) *ReconcileJobs {
	return &ReconcileJobs{
		reconciler: reconciler,
		clock:      c,
		interval:   interval,
	}
}

func (j *ReconcileJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "reconcile_attendance",
		Interval: j.interval,
		// A sweep must finish before the next tick starts another.
		Timeout: j.interval,
		Fn:      j.ReconcileAttendance,
	})
}

func (j *ReconcileJobs) ReconcileAttendance(ctx context.Context) error {
	now := j.clock.Now()
	slog.Info("Cron: Starting attendance reconciliation", "at", now.Format(time.RFC3339))

	report, err := j.reconciler.Reconcile(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to reconcile attendance: %w", err)
	}
	if report.Failed > 0 {
		slog.Warn("Cron: Reconciliation finished with failures", "failed", report.Failed)
	}

	slog.Info("Cron: Reconciled attendance",
		"employees", report.Employees,
		"missing", report.Missing,
		"forced_out", report.ForcedOut,
	)
	return nil
}
