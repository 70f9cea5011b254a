// Package lock serializes read-modify-write cycles on per-user documents.
package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrLockTimeout is returned when the context ends before the lock is acquired.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker grants exclusive access to a key until the returned unlock is called.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// DayKey guards one user's workout day document.
func DayKey(userID, date string) string {
	return fmt.Sprintf("lock::day::%s::%s", userID, date)
}

// ProgressKey guards one user's progress record.
func ProgressKey(userID string) string {
	return fmt.Sprintf("lock::progress::%s", userID)
}
