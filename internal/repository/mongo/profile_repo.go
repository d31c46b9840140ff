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

const profileCollectionName = "profiles"

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new UserProfile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert replaces the profile of profile.OwnerID, inserting it when missing.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.OwnerID == primitive.NilObjectID {
		return errors.New("profile owner is required")
	}
	profile.UpdatedAt = time.Now().UTC()

	filter := bson.M{"ownerId": profile.OwnerID}
	update := bson.M{
		"$set": bson.M{
			"objective":         profile.Objective,
			"sex":               profile.Sex,
			"age":               profile.Age,
			"weightKg":          profile.WeightKg,
			"heightCm":          profile.HeightCm,
			"limitations":       profile.Limitations,
			"daysPerWeek":       profile.DaysPerWeek,
			"minutesPerSession": profile.MinutesPerSession,
			"experienceLevel":   profile.ExperienceLevel,
			"gymAccess":         profile.GymAccess,
			"homeEquipment":     profile.HomeEquipment,
			"updatedAt":         profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByOwner retrieves the profile of a user.
func (r *mongoProfileRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes. Call during startup.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
