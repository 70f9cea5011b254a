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

const progressCollectionName = "progress"

// mongoProgressRepository implements repository.ProgressRepository.
// Documents are keyed by the user ID.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

func (r *mongoProgressRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgressState, error) {
	var state domain.UserProgressState
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// Save replaces the user's progress record, creating it on first use.
func (r *mongoProgressRepository) Save(ctx context.Context, state *domain.UserProgressState) error {
	if state.UserID == primitive.NilObjectID {
		return errors.New("progress state requires a user ID")
	}
	state.UpdatedAt = time.Now().UTC()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": state.UserID}, state, options.Replace().SetUpsert(true))
	return err
}
