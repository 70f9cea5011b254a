package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/lock"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/progress"
	"alcyxob/fitness-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyWorkout        = errors.New("workout has no exercises")
	ErrInvalidWeeklyTarget = fmt.Errorf("weekly target must be between %d and %d", MinWeeklyTarget, MaxWeeklyTarget)
)

const (
	MinWeeklyTarget     = 1
	MaxWeeklyTarget     = 14
	DefaultWeeklyTarget = 3
)

// ProgressService owns the streak record of each user.
type ProgressService interface {
	// CompleteWorkout applies the completion of date to the streaks, at most once per day.
	CompleteWorkout(ctx context.Context, userID primitive.ObjectID, date string) (*domain.UserProgressState, error)
	GetProgress(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgressState, error)
	SetWeeklyTarget(ctx context.Context, userID primitive.ObjectID, target int) (*domain.UserProgressState, error)
}

type progressService struct {
	progressRepo  repository.ProgressRepository
	dayRepo       repository.WorkoutDayRepository
	locker        lock.Locker
	metrics       *metrics.Manager
	defaultTarget int
	lockTimeout   time.Duration
	now           func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	dayRepo repository.WorkoutDayRepository,
	locker lock.Locker,
	metricsManager *metrics.Manager,
	defaultTarget int,
	lockTimeout time.Duration,
) ProgressService {
	if defaultTarget < MinWeeklyTarget || defaultTarget > MaxWeeklyTarget {
		defaultTarget = DefaultWeeklyTarget
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &progressService{
		progressRepo:  progressRepo,
		dayRepo:       dayRepo,
		locker:        locker,
		metrics:       metricsManager,
		defaultTarget: defaultTarget,
		lockTimeout:   lockTimeout,
		now:           time.Now,
	}
}

func (s *progressService) CompleteWorkout(ctx context.Context, userID primitive.ObjectID, date string) (*domain.UserProgressState, error) {
	workoutDate, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	// progress before day, the workout service only ever takes the day lock
	unlockProgress, err := acquire(ctx, s.locker, s.metrics, s.lockTimeout, lock.ProgressKey(userID.Hex()))
	if err != nil {
		return nil, err
	}
	defer unlockProgress()
	unlockDay, err := acquire(ctx, s.locker, s.metrics, s.lockTimeout, lock.DayKey(userID.Hex(), date))
	if err != nil {
		return nil, err
	}
	defer unlockDay()

	day, err := s.dayRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}
	if len(day.Exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if day.IsCompleted() {
		return state, nil
	}

	target := state.WeeklyFrequencyTarget
	if target <= 0 {
		target = s.defaultTarget
	}
	next := progress.ApplyWorkoutCompleted(*state, workoutDate, target)

	if err = s.progressRepo.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	completedAt := s.now().UTC()
	day.CompletedAt = &completedAt
	if err = s.dayRepo.Upsert(ctx, day); err != nil {
		// streaks are already saved; a retry of this day would count it twice
		log.WithFields(log.Fields{"user": userID.Hex(), "date": date}).
			Errorf("mark workout day completed: %s", err)
		return nil, fmt.Errorf("mark workout day completed: %w", err)
	}

	s.metrics.CounterStreakTransitions.Inc()
	return &next, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgressState, error) {
	return s.loadState(ctx, userID)
}

func (s *progressService) SetWeeklyTarget(ctx context.Context, userID primitive.ObjectID, target int) (*domain.UserProgressState, error) {
	if target < MinWeeklyTarget || target > MaxWeeklyTarget {
		return nil, ErrInvalidWeeklyTarget
	}

	unlock, err := acquire(ctx, s.locker, s.metrics, s.lockTimeout, lock.ProgressKey(userID.Hex()))
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.WeeklyFrequencyTarget = target

	if err = s.progressRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return state, nil
}

// loadState returns the stored record or a zero record for first-time users.
func (s *progressService) loadState(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgressState, error) {
	state, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		state = &domain.UserProgressState{UserID: userID}
	}
	if state.WeeklyFrequencyTarget <= 0 {
		state.WeeklyFrequencyTarget = s.defaultTarget
	}
	return state, nil
}
