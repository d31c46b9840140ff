package mongo

import (
	"context"
	"errors"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new Program repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program. CreatedAt is set here unless already given.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program owner is required")
	}

	program.ID = primitive.NewObjectID()
	if program.CreatedAt.IsZero() {
		program.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetOwned retrieves a program only if ownerID owns it.
func (r *mongoProgramRepository) GetOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Program, error) {
	return r.findOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, options.FindOne())
}

// GetByID retrieves a program regardless of owner.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne())
}

// Latest retrieves the newest program of ownerID. Ties on createdAt are
// broken by _id, which grows with insertion time.
func (r *mongoProgramRepository) Latest(ctx context.Context, ownerID primitive.ObjectID) (*domain.Program, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.findOne(ctx, bson.M{"ownerId": ownerID}, opts)
}

func (r *mongoProgramRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Program, error) {
	var program domain.Program
	err := r.collection.FindOne(ctx, filter, opts).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// ListByOwner retrieves all programs of ownerID, newest first.
func (r *mongoProgramRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Program, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	programs := []domain.Program{}
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// CountMachineGeneratedSince counts the machine generated programs of ownerID
// created at or after since.
func (r *mongoProgramRepository) CountMachineGeneratedSince(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (int64, error) {
	filter := bson.M{
		"ownerId":          ownerID,
		"machineGenerated": true,
		"createdAt":        bson.M{"$gte": since},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// UpdateOwned applies the non-nil fields of patch and returns the updated program.
func (r *mongoProgramRepository) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch repository.ProgramPatch) (*domain.Program, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Objective != nil {
		set["objective"] = *patch.Objective
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	if len(set) == 0 {
		return r.findOne(ctx, filter, options.FindOne())
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var program domain.Program
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// DeleteOwned removes the program if ownerID owns it.
func (r *mongoProgramRepository) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// Delete removes a program by ID.
func (r *mongoProgramRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "machineGenerated", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
