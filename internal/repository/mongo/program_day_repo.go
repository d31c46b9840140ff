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

const programDayCollectionName = "program_days"

type mongoProgramDayRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramDayRepository creates a new ProgramDay repository.
func NewMongoProgramDayRepository(db *mongo.Database) repository.ProgramDayRepository {
	return &mongoProgramDayRepository{
		collection: db.Collection(programDayCollectionName),
	}
}

func (r *mongoProgramDayRepository) Create(ctx context.Context, day *domain.ProgramDay) (primitive.ObjectID, error) {
	if day.ProgramID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program day requires a program")
	}
	day.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoProgramDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramDay, error) {
	var day domain.ProgramDay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByProgramID retrieves the days of a program sorted by order.
func (r *mongoProgramDayRepository) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramDay, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"programId": programID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := []domain.ProgramDay{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *mongoProgramDayRepository) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"programId": programID})
	return err
}

// EnsureProgramDayIndexes creates necessary indexes for the program_days collection.
func EnsureProgramDayIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
