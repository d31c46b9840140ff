package mongo

import (
	"context"
	"errors"
	"ironai/workout-app/internal/repository"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping against the primary.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the app.
// Failures are logged; the app keeps running without the missing index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureUserIndexes(ctx, db.Collection(userCollectionName))
	EnsureProfileIndexes(ctx, db.Collection(profileCollectionName))
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
	EnsureProgramIndexes(ctx, db.Collection(programCollectionName))
	EnsureProgramDayIndexes(ctx, db.Collection(programDayCollectionName))
	EnsureDayExerciseIndexes(ctx, db.Collection(dayExerciseCollectionName))
	EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName), db.Collection(recordCollectionName))
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.WithError(err).Warnf("failed to create indexes for collection %s", collection.Name())
	}
}

// insertedObjectID asserts the type of an InsertOne result ID.
func insertedObjectID(result *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return id, nil
}

// NewRepositories builds the MongoDB backed repositories of db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:        NewMongoUserRepository(db),
		Profiles:     NewMongoProfileRepository(db),
		Programs:     NewMongoProgramRepository(db),
		Days:         NewMongoProgramDayRepository(db),
		DayExercises: NewMongoDayExerciseRepository(db),
		Exercises:    NewMongoExerciseRepository(db),
		Sessions:     NewMongoSessionRepository(db),
	}
}
