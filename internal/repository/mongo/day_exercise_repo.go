package mongo

import (
	"context"
	"errors"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dayExerciseCollectionName = "day_exercises"

type mongoDayExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoDayExerciseRepository creates a new DayExercise repository.
func NewMongoDayExerciseRepository(db *mongo.Database) repository.DayExerciseRepository {
	return &mongoDayExerciseRepository{
		collection: db.Collection(dayExerciseCollectionName),
	}
}

func (r *mongoDayExerciseRepository) Create(ctx context.Context, item *domain.DayExercise) (primitive.ObjectID, error) {
	if item.DayID == primitive.NilObjectID || item.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("day exercise requires a day and an exercise")
	}
	item.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoDayExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DayExercise, error) {
	var item domain.DayExercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetByDayIDs retrieves the rows of the given days sorted by day then order.
func (r *mongoDayExerciseRepository) GetByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) ([]domain.DayExercise, error) {
	if len(dayIDs) == 0 {
		return []domain.DayExercise{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "dayId", Value: 1}, {Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"dayId": bson.M{"$in": dayIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []domain.DayExercise{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the non-nil fields of patch and returns the updated row.
func (r *mongoDayExerciseRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.DayExercisePatch) (*domain.DayExercise, error) {
	set := bson.M{}
	if patch.Series != nil {
		set["series"] = *patch.Series
	}
	if patch.RepMin != nil {
		set["repMin"] = *patch.RepMin
	}
	if patch.RepMax != nil {
		set["repMax"] = *patch.RepMax
	}
	if patch.RestSeconds != nil {
		set["restSeconds"] = *patch.RestSeconds
	}
	if patch.ExerciseID != nil {
		set["exerciseId"] = *patch.ExerciseID
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item domain.DayExercise
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *mongoDayExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoDayExerciseRepository) DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) error {
	if len(dayIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"dayId": bson.M{"$in": dayIDs}})
	return err
}

// EnsureDayExerciseIndexes creates necessary indexes for the day_exercises collection.
func EnsureDayExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dayId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	})
}
