package stats

import "context"

// Ledger applies attendance and scheduling events to the statistics rows,
// creating rows lazily. Callers run it inside their unit of work.
type Ledger interface {
	ConsumeScheduled(ctx context.Context, employeeID string, period Period, targetMinutes, minutes int) (Monthly, error)
	AddWorked(ctx context.Context, employeeID string, period Period, targetMinutes, minutes int) (Monthly, error)
	Credit(ctx context.Context, employeeID, department string, period Period, credit Credit) (DepartmentStat, error)
}

type StatsService interface {
	GetStats(ctx context.Context, req GetStatsRequest) (StatsResponse, error)
}
