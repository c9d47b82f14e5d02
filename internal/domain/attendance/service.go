package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req PunchRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req PunchRequest) (AttendanceResponse, error)
	UpdatePositionDetails(ctx context.Context, req UpdateDetailsRequest) (AttendanceResponse, error)
}

// Reconciler closes shifts whose punch window has elapsed.
type Reconciler interface {
	Reconcile(ctx context.Context, at time.Time) (ReconcileReport, error)
}
