// Package lock serializes read-modify-write cycles on one employee.
package lock

import (
	"context"
	"errors"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker hands out exclusive leases keyed by an arbitrary string.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EmployeeKey is the lock key guarding one employee aggregate.
func EmployeeKey(employeeID string) string {
	return "employee:" + employeeID
}
