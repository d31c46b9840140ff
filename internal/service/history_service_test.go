package service

import (
	"context"
	"errors"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/metrics"
	"ironai/workout-app/internal/repository"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func doneSet(weight string, reps int) SetInput {
	return SetInput{Weight: domain.TextValue(weight), Reps: domain.NumberValue(reps), Rest: domain.NumberValue(60), Done: true}
}

func TestHistoryService_RecordPartialCompletion(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	m := metrics.NewTestManager()
	svc := NewHistoryService(repos, m)
	uid := newUser(t, repos)
	detail := createProgram(t, NewProgramService(repos), uid, twoDayDraft())
	dayA := detail.Days[0]
	bench, fly := dayA.Exercises[0], dayA.Exercises[1]

	sessionID, err := svc.Record(ctx, uid, SessionInput{
		DayID:           dayA.ID,
		DurationSeconds: 3630,
		Exercises: []ExerciseLog{
			{ID: bench.ID, Note: " pesado ", Sets: []SetInput{
				doneSet("60", 10),
				doneSet("62,5", 8),
				{Weight: domain.TextValue("65"), Reps: domain.NumberValue(6)},
				doneSet("abc", 6),
				{Weight: domain.TextValue("65"), Reps: domain.NumberValue(6)},
			}},
			{ID: fly.ID, Sets: []SetInput{
				{Weight: domain.TextValue("10"), Reps: domain.NumberValue(12)},
			}},
		},
	})
	require.NoError(t, err)

	records, err := repos.Sessions.GetRecords(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, records, 1, "exercises without done sets are omitted")

	r := records[0]
	assert.Equal(t, bench.ExerciseID, r.ExerciseID)
	assert.Equal(t, bench.ID, r.DayExerciseID)
	assert.Equal(t, []float64{60, 62.5, 0}, r.Weights)
	assert.Equal(t, []int{10, 8, 6}, r.Reps)
	assert.Equal(t, []int{60, 60, 60}, r.RestSeconds)
	assert.Equal(t, "pesado", r.Note)

	sessions, err := svc.List(ctx, uid, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 61, sessions[0].DurationMinutes)
	assert.True(t, sessions[0].Completed)
	assert.Len(t, sessions[0].Records, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterSessionsRecorded))
}

func TestHistoryService_RecordByExerciseDefinition(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewHistoryService(repos, nil)
	uid := newUser(t, repos)
	detail := createProgram(t, NewProgramService(repos), uid, twoDayDraft())
	exerciseID := detail.Days[0].Exercises[0].ExerciseID

	sessionID, err := svc.Record(ctx, uid, SessionInput{
		DayID:     detail.Days[0].ID,
		Exercises: []ExerciseLog{{ID: exerciseID, Sets: []SetInput{doneSet("40", 12)}}},
	})
	require.NoError(t, err)

	records, err := repos.Sessions.GetRecords(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exerciseID, records[0].ExerciseID)
	assert.True(t, records[0].DayExerciseID.IsZero())
}

func TestHistoryService_RecordRejects(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewHistoryService(repos, nil)
	owner := newUser(t, repos)
	detail := createProgram(t, NewProgramService(repos), owner, twoDayDraft())
	dayID := detail.Days[0].ID

	t.Run("foreign day", func(t *testing.T) {
		_, err := svc.Record(ctx, newUser(t, repos), SessionInput{DayID: dayID})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown day", func(t *testing.T) {
		_, err := svc.Record(ctx, owner, SessionInput{DayID: primitive.NewObjectID()})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing day", func(t *testing.T) {
		_, err := svc.Record(ctx, owner, SessionInput{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		_, err := svc.Record(ctx, owner, SessionInput{
			DayID:     dayID,
			Exercises: []ExerciseLog{{ID: primitive.NewObjectID(), Sets: []SetInput{doneSet("10", 10)}}},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	sessions, err := repos.Sessions.ListCompleted(ctx, owner, 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

type failingRecords struct {
	repository.SessionRepository
}

func (failingRecords) CreateRecords(context.Context, []domain.ExecutionRecord) error {
	return errors.New("insert failed")
}

func TestHistoryService_RecordFailureRemovesSession(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	uid := newUser(t, repos)
	detail := createProgram(t, NewProgramService(repos), uid, twoDayDraft())
	item := detail.Days[0].Exercises[0]

	broken := repos
	broken.Sessions = failingRecords{repos.Sessions}
	_, err := NewHistoryService(broken, nil).Record(ctx, uid, SessionInput{
		DayID:     detail.Days[0].ID,
		Exercises: []ExerciseLog{{ID: item.ID, Sets: []SetInput{doneSet("10", 10)}}},
	})
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = repos.Sessions.LatestCompleted(ctx, uid)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
