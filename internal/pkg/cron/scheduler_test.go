package cron

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
)

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.AddJob(Job{Name: "count", Interval: 10 * time.Millisecond, Fn: func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}})

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_StopsWithParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewScheduler(parent)
	stopped := make(chan struct{})
	s.AddJob(Job{Name: "block", Interval: time.Hour, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	}})

	s.Start()
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("job did not observe cancellation")
	}
	s.Stop()
}

func TestScheduler_TimeoutBoundsRun(t *testing.T) {
	s := NewScheduler(context.Background())
	var got error
	s.AddJob(Job{Name: "slow", Interval: time.Hour, Timeout: 10 * time.Millisecond, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		got = ctx.Err()
		return got
	}})

	s.RunOnce(context.Background())
	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

type fakeReconciler struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeReconciler) Reconcile(ctx context.Context, at time.Time) (attendance.ReconcileReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, at)
	return attendance.ReconcileReport{Employees: 2, Missing: 1}, f.err
}

func TestReconcileJobs_UsesClock(t *testing.T) {
	now := time.Date(2024, 3, 4, 17, 31, 0, 0, time.UTC)
	rec := &fakeReconciler{}
	jobs := NewReconcileJobs(rec, clock.NewFixed(now), 15*time.Minute)

	s := NewScheduler(context.Background())
	jobs.RegisterJobs(s)
	s.RunOnce(context.Background())

	require.Len(t, rec.calls, 1)
	assert.True(t, rec.calls[0].Equal(now))
}

func TestReconcileJobs_WrapsError(t *testing.T) {
	rec := &fakeReconciler{err: errors.New("boom")}
	jobs := NewReconcileJobs(rec, clock.NewFixed(time.Now()), time.Minute)

	err := jobs.ReconcileAttendance(context.Background())
	assert.ErrorContains(t, err, "failed to reconcile attendance")
}
