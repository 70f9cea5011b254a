package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/lock"
	"alcyxob/fitness-tracker/internal/metrics"
)

var (
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidExerciseID = errors.New("invalid exercise id")
	// ErrWriteConflict is returned when another writer holds the day or progress lock too long.
	ErrWriteConflict = lock.ErrLockTimeout
)

const (
	DefaultLockTimeout = 5 * time.Second
	maxExerciseIDLen   = 64
)

// CacheInvalidator drops cached per-user derived data after a write.
type CacheInvalidator interface {
	Invalidate(userID string)
}

func parseDate(date string) (time.Time, error) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// validateExerciseID rejects ids that cannot be used as a document field name.
func validateExerciseID(id string) error {
	switch {
	case strings.TrimSpace(id) == "",
		len(id) > maxExerciseIDLen,
		strings.ContainsAny(id, ".\x00"),
		strings.HasPrefix(id, "$"):
		return fmt.Errorf("%w: %q", ErrInvalidExerciseID, id)
	}
	return nil
}

// acquire waits at most timeout for key.
func acquire(ctx context.Context, locker lock.Locker, m *metrics.Manager, timeout time.Duration, key string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	unlock, err := locker.Lock(lockCtx, key)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			m.CounterLockTimeouts.Inc()
		}
		return nil, err
	}
	return unlock, nil
}
