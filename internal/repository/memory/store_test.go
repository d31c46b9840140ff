package memory

import (
	"context"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	_, err := repos.Users.Create(ctx, &domain.User{Name: "Ana", Email: "ana@x.io", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repos.Users.Create(ctx, &domain.User{Name: "Ana 2", Email: "ana@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := repos.Users.GetByEmail(ctx, "ana@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = repos.Users.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileRepository_UpsertKeepsID(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	first := &domain.UserProfile{OwnerID: owner, Age: 30}
	require.NoError(t, repos.Profiles.Upsert(ctx, first))

	second := &domain.UserProfile{OwnerID: owner, Age: 31}
	require.NoError(t, repos.Profiles.Upsert(ctx, second))

	got, err := repos.Profiles.GetByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 31, got.Age)
}

func TestProgramRepository_LatestBreaksTiesByInsertion(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := repos.Programs.Create(ctx, &domain.Program{OwnerID: owner, Name: "A", CreatedAt: at})
	require.NoError(t, err)
	idB, err := repos.Programs.Create(ctx, &domain.Program{OwnerID: owner, Name: "B", CreatedAt: at})
	require.NoError(t, err)

	latest, err := repos.Programs.Latest(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, idB, latest.ID)

	_, err = repos.Programs.Latest(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProgramRepository_OwnershipScopedOperations(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	owner, stranger := primitive.NewObjectID(), primitive.NewObjectID()

	id, err := repos.Programs.Create(ctx, &domain.Program{OwnerID: owner, Name: "Push Pull"})
	require.NoError(t, err)

	_, err = repos.Programs.GetOwned(ctx, id, stranger)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	name := "Renamed"
	_, err = repos.Programs.UpdateOwned(ctx, id, stranger, repository.ProgramPatch{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := repos.Programs.UpdateOwned(ctx, id, owner, repository.ProgramPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	deleted, err := repos.Programs.DeleteOwned(ctx, id, stranger)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repos.Programs.DeleteOwned(ctx, id, owner)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestProgramRepository_CountMachineGeneratedSince(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	dayStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range []domain.Program{
		{OwnerID: owner, Name: "yesterday", MachineGenerated: true, CreatedAt: dayStart.Add(-time.Minute)},
		{OwnerID: owner, Name: "manual", CreatedAt: dayStart.Add(time.Hour)},
		{OwnerID: owner, Name: "today", MachineGenerated: true, CreatedAt: dayStart},
		{OwnerID: primitive.NewObjectID(), Name: "other", MachineGenerated: true, CreatedAt: dayStart.Add(time.Hour)},
	} {
		p := p
		_, err := repos.Programs.Create(ctx, &p)
		require.NoError(t, err)
	}

	n, err := repos.Programs.CountMachineGeneratedSince(ctx, owner, dayStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestProgramDayRepository_SortedByOrder(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	programID := primitive.NewObjectID()

	for _, order := range []int{3, 1, 2} {
		_, err := repos.Days.Create(ctx, &domain.ProgramDay{ProgramID: programID, Order: order})
		require.NoError(t, err)
	}

	days, err := repos.Days.GetByProgramID(ctx, programID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{days[0].Order, days[1].Order, days[2].Order})

	require.NoError(t, repos.Days.DeleteByProgramID(ctx, programID))
	days, err = repos.Days.GetByProgramID(ctx, programID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestDayExerciseRepository_UpdateAndDelete(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	dayID := primitive.NewObjectID()

	id, err := repos.DayExercises.Create(ctx, &domain.DayExercise{
		DayID: dayID, ExerciseID: primitive.NewObjectID(), Order: 1, Series: 3, RepMin: 8, RepMax: 12, RestSeconds: 60,
	})
	require.NoError(t, err)

	series := 5
	updated, err := repos.DayExercises.Update(ctx, id, repository.DayExercisePatch{Series: &series})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Series)
	assert.Equal(t, 12, updated.RepMax)

	require.NoError(t, repos.DayExercises.Delete(ctx, id))
	assert.ErrorIs(t, repos.DayExercises.Delete(ctx, id), repository.ErrNotFound)
}

func TestExerciseRepository_NameKeyUnique(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	_, err := repos.Exercises.Create(ctx, &domain.Exercise{Name: "Supino Reto"})
	require.NoError(t, err)

	_, err = repos.Exercises.Create(ctx, &domain.Exercise{Name: "supino  reto"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	e, err := repos.Exercises.GetByNameKey(ctx, domain.ExerciseNameKey("SUPINO RETO"))
	require.NoError(t, err)
	assert.Equal(t, "Supino Reto", e.Name)
}

func TestSessionRepository_DeleteRemovesRecords(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	id, err := repos.Sessions.Create(ctx, &domain.CompletedSession{OwnerID: owner, DayID: primitive.NewObjectID(), Completed: true})
	require.NoError(t, err)
	require.NoError(t, repos.Sessions.CreateRecords(ctx, []domain.ExecutionRecord{
		{SessionID: id, ExerciseID: primitive.NewObjectID(), Weights: []float64{20}, Reps: []int{10}, RestSeconds: []int{60}},
	}))

	records, err := repos.Sessions.GetRecords(ctx, id)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, repos.Sessions.Delete(ctx, id))
	records, err = repos.Sessions.GetRecords(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = repos.Sessions.LatestCompleted(ctx, owner)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_ListCompletedLimit(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		_, err := repos.Sessions.Create(ctx, &domain.CompletedSession{
			OwnerID: owner, DayID: primitive.NewObjectID(), Completed: true, PerformedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	sessions, err := repos.Sessions.ListCompleted(ctx, owner, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, base.Add(3*time.Hour), sessions[0].PerformedAt)
}
