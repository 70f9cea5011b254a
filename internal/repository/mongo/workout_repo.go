package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutDayCollectionName = "workout_days"

// mongoWorkoutDayRepository implements repository.WorkoutDayRepository
type mongoWorkoutDayRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutDayRepository creates a new WorkoutDay repository backed by MongoDB.
func NewMongoWorkoutDayRepository(db *mongo.Database) repository.WorkoutDayRepository {
	return &mongoWorkoutDayRepository{
		collection: db.Collection(workoutDayCollectionName),
	}
}

// GetByUserAndDate retrieves the day document for one user and calendar date.
func (r *mongoWorkoutDayRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	filter := bson.M{"userId": userID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// Upsert writes the whole day document keyed by (userId, date).
// The caller is expected to hold the per-day write lock.
func (r *mongoWorkoutDayRepository) Upsert(ctx context.Context, day *domain.WorkoutDay) error {
	if day.UserID == primitive.NilObjectID || day.Date == "" {
		return errors.New("workout day requires userId and date")
	}

	now := time.Now().UTC()
	if day.CreatedAt.IsZero() {
		day.CreatedAt = now
	}
	day.UpdatedAt = now

	filter := bson.M{"userId": day.UserID, "date": day.Date}
	result, err := r.collection.ReplaceOne(ctx, filter, day, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}

	if upsertedID, ok := result.UpsertedID.(primitive.ObjectID); ok {
		day.ID = upsertedID
	}
	return nil
}

// ListByUserInRange returns the user's days between from and to inclusive, oldest first.
// Dates are "YYYY-MM-DD" so string comparison orders them chronologically.
func (r *mongoWorkoutDayRepository) ListByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WorkoutDay, error) {
	days := []domain.WorkoutDay{}
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// EnsureWorkoutDayIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutDayIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_date_unique"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
