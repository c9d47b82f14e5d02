package stats

import "errors"

var (
	ErrStatsNotFound = errors.New("statistics not found for this period")
)
