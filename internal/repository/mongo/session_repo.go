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

const (
	sessionCollectionName = "sessions"
	recordCollectionName  = "execution_records"
)

// mongoSessionRepository stores completed sessions and their execution records.
type mongoSessionRepository struct {
	sessions *mongo.Collection
	records  *mongo.Collection
}

// NewMongoSessionRepository creates a new Session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		sessions: db.Collection(sessionCollectionName),
		records:  db.Collection(recordCollectionName),
	}
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.CompletedSession) (primitive.ObjectID, error) {
	if session.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session owner is required")
	}
	session.ID = primitive.NewObjectID()
	if session.PerformedAt.IsZero() {
		session.PerformedAt = time.Now().UTC()
	}

	result, err := r.sessions.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// LatestCompleted retrieves the newest completed session of ownerID.
func (r *mongoSessionRepository) LatestCompleted(ctx context.Context, ownerID primitive.ObjectID) (*domain.CompletedSession, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "performedAt", Value: -1}, {Key: "_id", Value: -1}})
	var session domain.CompletedSession
	err := r.sessions.FindOne(ctx, bson.M{"ownerId": ownerID, "completed": true}, opts).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ListCompleted retrieves up to limit completed sessions, newest first.
// A limit of zero or less means no limit.
func (r *mongoSessionRepository) ListCompleted(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]domain.CompletedSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "performedAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.sessions.Find(ctx, bson.M{"ownerId": ownerID, "completed": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.CompletedSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Delete removes a session together with its execution records.
func (r *mongoSessionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.records.DeleteMany(ctx, bson.M{"sessionId": id}); err != nil {
		return err
	}
	_, err := r.sessions.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CreateRecords inserts all records in one batch.
func (r *mongoSessionRepository) CreateRecords(ctx context.Context, records []domain.ExecutionRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for i := range records {
		records[i].ID = primitive.NewObjectID()
		docs = append(docs, records[i])
	}
	_, err := r.records.InsertMany(ctx, docs)
	return err
}

func (r *mongoSessionRepository) GetRecords(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExecutionRecord, error) {
	cursor, err := r.records.Find(ctx, bson.M{"sessionId": sessionID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.ExecutionRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureSessionIndexes creates the indexes of the sessions and execution_records collections.
func EnsureSessionIndexes(ctx context.Context, sessions, records *mongo.Collection) {
	createIndexes(ctx, sessions, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "completed", Value: 1}, {Key: "performedAt", Value: -1}},
			Options: options.Index(),
		},
	})
	createIndexes(ctx, records, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index(),
		},
	})
}
