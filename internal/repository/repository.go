package repository

import (
	"context"

	"alcyxob/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -source=$GOFILE -destination=../service/repository_mocks_test.go -package=service_test

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository stores the per-user exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	// GetByID only returns exercises owned by userID.
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
}

// WorkoutDayRepository stores one document per (user, calendar date).
type WorkoutDayRepository interface {
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutDay, error)
	// Upsert replaces the whole day document, creating it when absent.
	Upsert(ctx context.Context, day *domain.WorkoutDay) error
	// ListByUserInRange returns days with from <= date <= to, oldest first.
	ListByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WorkoutDay, error)
}

// ProgressRepository stores one streak record per user.
type ProgressRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgressState, error)
	Save(ctx context.Context, state *domain.UserProgressState) error
}

// ExportRepository stores metadata of CSV history exports.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Export, error)
}
