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
	ErrWorkoutDayNotFound = errors.New("workout day not found")
	ErrExerciseNotInLog   = errors.New("exercise not found in this day's log")
	// ErrDayCompleted is returned for set writes to a day that was already completed.
	ErrDayCompleted = errors.New("workout day is already completed")
	// ErrNoValidSet matches every merge ValidationError.
	ErrNoValidSet = progress.ErrNoValidSet
)

// DayDetails are the day-level fields a client may change.
type DayDetails struct {
	DurationMinutes *int
	RestSeconds     *int
}

// WorkoutService is the write path of workout days.
type WorkoutService interface {
	GetDay(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutDay, error)
	// SaveExerciseSets merges patch into the day's log of meta.ExerciseID. When no
	// set has weight and reps it returns the stored log (nil if none) and an error
	// matching ErrNoValidSet; nothing is written. Completed days are read-only
	// (ErrDayCompleted).
	SaveExerciseSets(ctx context.Context, userID primitive.ObjectID, date string, meta domain.ExerciseMeta, patch domain.SetPatch) (*domain.ExerciseLog, error)
	UpdateDayDetails(ctx context.Context, userID primitive.ObjectID, date string, details DayDetails) (*domain.WorkoutDay, error)
	DeleteExercise(ctx context.Context, userID primitive.ObjectID, date, exerciseID string) (*domain.WorkoutDay, error)
}

type workoutService struct {
	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.ExerciseRepository
	locker       lock.Locker
	cache        CacheInvalidator
	metrics      *metrics.Manager
	lockTimeout  time.Duration
}

func NewWorkoutService(
	dayRepo repository.WorkoutDayRepository,
	exerciseRepo repository.ExerciseRepository,
	locker lock.Locker,
	cache CacheInvalidator,
	metricsManager *metrics.Manager,
	lockTimeout time.Duration,
) WorkoutService {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &workoutService{
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		locker:       locker,
		cache:        cache,
		metrics:      metricsManager,
		lockTimeout:  lockTimeout,
	}
}

func (s *workoutService) GetDay(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutDay, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	day, err := s.dayRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}
	return day, nil
}

func (s *workoutService) SaveExerciseSets(ctx context.Context, userID primitive.ObjectID, date string, meta domain.ExerciseMeta, patch domain.SetPatch) (*domain.ExerciseLog, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	if err := validateExerciseID(meta.ExerciseID); err != nil {
		return nil, err
	}

	unlock, err := acquire(ctx, s.locker, s.metrics, s.lockTimeout, lock.DayKey(userID.Hex(), date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	day, err := s.loadOrNewDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if day.IsCompleted() {
		return nil, ErrDayCompleted
	}

	var existing *domain.ExerciseLog
	if stored, ok := day.Exercises[meta.ExerciseID]; ok {
		existing = &stored
	}

	meta, err = s.completeMeta(ctx, userID, meta, existing)
	if err != nil {
		return nil, err
	}

	result, err := progress.MergeSets(existing, patch, meta)
	if err != nil {
		s.metrics.CounterSetMerges.WithLabelValues(metrics.MergeResultInvalid).Inc()
		return existing, err
	}
	if result.Corrupted {
		s.metrics.CounterCorruptedLogs.Inc()
		log.WithFields(log.Fields{
			"user":     userID.Hex(),
			"date":     date,
			"exercise": meta.ExerciseID,
		}).Warn("stored exercise log had mismatched set arrays, missing sets read as empty")
	}

	merged := result.Log
	merged.MuscleGroup = progress.NormalizeMuscleGroup(merged.MuscleGroup)

	if day.Exercises == nil {
		day.Exercises = make(map[string]domain.ExerciseLog)
	}
	day.Exercises[merged.ExerciseID] = merged

	if err = s.dayRepo.Upsert(ctx, day); err != nil {
		return nil, fmt.Errorf("save workout day: %w", err)
	}
	s.cache.Invalidate(userID.Hex())
	s.metrics.CounterSetMerges.WithLabelValues(metrics.MergeResultSaved).Inc()

	return &merged, nil
}

func (s *workoutService) UpdateDayDetails(ctx context.Context, userID primitive.ObjectID, date string, details DayDetails) (*domain.WorkoutDay, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	if (details.DurationMinutes != nil && *details.DurationMinutes < 0) ||
		(details.RestSeconds != nil && *details.RestSeconds < 0) {
		return nil, fmt.Errorf("%w: duration and rest must not be negative", ErrValidationFailed)
	}

	unlock, err := acquire(ctx, s.locker, s.metrics, s.lockTimeout, lock.DayKey(userID.Hex(), date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	day, err := s.loadOrNewDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if details.DurationMinutes != nil {
		day.DurationMinutes = *details.DurationMinutes
	}
	if details.RestSeconds != nil {
		day.RestSeconds = *details.RestSeconds
	}

	if err = s.dayRepo.Upsert(ctx, day); err != nil {
		return nil, fmt.Errorf("save workout day: %w", err)
	}
	return day, nil
}

func (s *workoutService) DeleteExercise(ctx context.Context, userID primitive.ObjectID, date, exerciseID string) (*domain.WorkoutDay, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	unlock, err := acquire(ctx, s.locker, s.metrics, s.lockTimeout, lock.DayKey(userID.Hex(), date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	day, err := s.dayRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}
	if day.IsCompleted() {
		return nil, ErrDayCompleted
	}
	if _, ok := day.Exercises[exerciseID]; !ok {
		return nil, ErrExerciseNotInLog
	}

	delete(day.Exercises, exerciseID)
	if err = s.dayRepo.Upsert(ctx, day); err != nil {
		return nil, fmt.Errorf("save workout day: %w", err)
	}
	s.cache.Invalidate(userID.Hex())
	return day, nil
}

func (s *workoutService) loadOrNewDay(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutDay, error) {
	day, err := s.dayRepo.GetByUserAndDate(ctx, userID, date)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &domain.WorkoutDay{
		UserID:    userID,
		Date:      date,
		Exercises: make(map[string]domain.ExerciseLog),
	}, nil
}

// completeMeta fills a missing name or muscle group from the stored log or,
// when the exercise id is a catalog id, from the user's catalog.
func (s *workoutService) completeMeta(ctx context.Context, userID primitive.ObjectID, meta domain.ExerciseMeta, existing *domain.ExerciseLog) (domain.ExerciseMeta, error) {
	if existing != nil {
		if meta.Name == "" {
			meta.Name = existing.Name
		}
		if meta.MuscleGroup == "" {
			meta.MuscleGroup = existing.MuscleGroup
		}
	}
	if meta.Name != "" && meta.MuscleGroup != "" {
		return meta, nil
	}

	catalogID, err := primitive.ObjectIDFromHex(meta.ExerciseID)
	if err != nil {
		return meta, nil
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, catalogID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return meta, nil
		}
		return meta, fmt.Errorf("lookup exercise %s: %w", meta.ExerciseID, err)
	}
	if meta.Name == "" {
		meta.Name = exercise.Name
	}
	if meta.MuscleGroup == "" {
		meta.MuscleGroup = exercise.MuscleGroup
	}
	return meta, nil
}
