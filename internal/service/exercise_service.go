package service

import (
	"context"
	"errors"
	"strings"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/progress"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrExerciseAlreadyExists = errors.New("exercise with this name already exists")
	ErrValidationFailed      = errors.New("validation failed")
)

// ExerciseService manages the per-user exercise catalog.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID primitive.ObjectID, name, muscleGroup, description string) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise adds an exercise to the user's catalog. The muscle group is
// stored under its canonical name when it is a known synonym.
func (s *exerciseService) CreateExercise(ctx context.Context, userID primitive.ObjectID, name, muscleGroup, description string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	muscleGroup = progress.NormalizeMuscleGroup(muscleGroup)
	if name == "" || muscleGroup == "" {
		return nil, ErrValidationFailed
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		UserID:      userID,
		Name:        name,
		MuscleGroup: muscleGroup,
		Description: strings.TrimSpace(description),
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseAlreadyExists
		}
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByUserID(ctx, userID)
}
