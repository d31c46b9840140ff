package mongo

import (
	"context"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoUserRepository(mt.DB)

		id, err := repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@x.io", PasswordHash: "h"})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@x.io", PasswordHash: "h"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@x.io"},
			{Key: "passwordHash", Value: "h"},
		}))
		repo := NewMongoUserRepository(mt.DB)

		u, err := repo.GetByEmail(context.Background(), "ana@x.io")
		require.NoError(mt, err)
		assert.Equal(mt, id, u.ID)
		assert.Equal(mt, "Ana", u.Name)
	})

	mt.Run("get by email not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.GetByEmail(context.Background(), "nobody@x.io")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestProgramRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create requires owner", func(mt *mtest.T) {
		repo := NewMongoProgramRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.Program{Name: "A"})
		assert.Error(mt, err)
	})

	mt.Run("latest not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.programs", mtest.FirstBatch))
		repo := NewMongoProgramRepository(mt.DB)

		_, err := repo.Latest(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("count machine generated", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.programs", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}))
		repo := NewMongoProgramRepository(mt.DB)

		n, err := repo.CountMachineGeneratedSince(context.Background(), primitive.NewObjectID(), time.Now().UTC())
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})

	mt.Run("delete owned", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})
		repo := NewMongoProgramRepository(mt.DB)

		deleted, err := repo.DeleteOwned(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, deleted)
	})
}

func TestSessionRepository_ListCompleted(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes sessions", func(mt *mtest.T) {
		owner := primitive.NewObjectID()
		first := mtest.CreateCursorResponse(1, "test.sessions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "ownerId", Value: owner},
			{Key: "dayId", Value: primitive.NewObjectID()},
			{Key: "durationMinutes", Value: 45},
			{Key: "completed", Value: true},
		})
		last := mtest.CreateCursorResponse(0, "test.sessions", mtest.NextBatch)
		mt.AddMockResponses(first, last)
		repo := NewMongoSessionRepository(mt.DB)

		sessions, err := repo.ListCompleted(context.Background(), owner, 10)
		require.NoError(mt, err)
		require.Len(mt, sessions, 1)
		assert.Equal(mt, 45, sessions[0].DurationMinutes)
	})
}
