package service

import (
	"context"
	"ironai/workout-app/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDashboardService_NoProgram(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewDashboardService(repos)
	uid := newUser(t, repos)

	_, err := svc.Next(ctx, uid)
	assert.ErrorIs(t, err, ErrNoProgram)

	overview, err := svc.Overview(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, overview.Next)
	assert.NotEmpty(t, overview.Name)
}

func TestDashboardService_ProgramWithoutDays(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	uid := newUser(t, repos)
	_, err := repos.Programs.Create(ctx, &domain.Program{OwnerID: uid, Name: "Empty"})
	require.NoError(t, err)

	_, err = NewDashboardService(repos).Next(ctx, uid)
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestDashboardService_Rotation(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewDashboardService(repos)
	uid := newUser(t, repos)
	detail := createProgram(t, NewProgramService(repos), uid, twoDayDraft())
	dayA, dayB := detail.Days[0], detail.Days[1]

	next, err := svc.Next(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, dayA.ID, next.DayID)
	assert.Equal(t, "Push Pull", next.ProgramName)
	assert.Equal(t, EstimatedSessionMinutes, next.EstimatedMinutes)
	assert.Equal(t, DefaultIntensity, next.Intensity)

	start := time.Now().Add(-time.Hour)
	record := func(dayID primitive.ObjectID, at time.Time) {
		_, err := repos.Sessions.Create(ctx, &domain.CompletedSession{OwnerID: uid, DayID: dayID, PerformedAt: at, Completed: true})
		require.NoError(t, err)
	}

	record(dayA.ID, start)
	next, err = svc.Next(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, dayB.ID, next.DayID)
	assert.Equal(t, "Costas", next.Focus)

	record(dayB.ID, start.Add(time.Minute))
	next, err = svc.Next(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, dayA.ID, next.DayID, "wraps to the first day")

	// unfinished sessions do not move the rotation
	_, err = repos.Sessions.Create(ctx, &domain.CompletedSession{OwnerID: uid, DayID: dayA.ID, PerformedAt: start.Add(2 * time.Minute)})
	require.NoError(t, err)
	next, err = svc.Next(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, dayA.ID, next.DayID)
}

func TestDashboardService_NewProgramRestartsRotation(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewDashboardService(repos)
	programs := NewProgramService(repos)
	uid := newUser(t, repos)

	old := createProgram(t, programs, uid, twoDayDraft())
	_, err := repos.Sessions.Create(ctx, &domain.CompletedSession{OwnerID: uid, DayID: old.Days[0].ID, Completed: true})
	require.NoError(t, err)

	current := twoDayDraft()
	current.Name = "Current"
	fresh := createProgram(t, programs, uid, current)

	next, err := svc.Next(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, fresh.Days[0].ID, next.DayID)
	assert.Equal(t, "Current", next.ProgramName)
}
