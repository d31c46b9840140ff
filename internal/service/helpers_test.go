package service

import (
	"context"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"ironai/workout-app/internal/repository/memory"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func newRepos() repository.Repositories {
	return memory.NewRepositories()
}

// newUser stores a user with a fake identity and returns its ID.
func newUser(t *testing.T, repos repository.Repositories) primitive.ObjectID {
	t.Helper()
	id, err := repos.Users.Create(context.Background(), &domain.User{
		Name:         gofakeit.Name(),
		Email:        NormalizeEmail(gofakeit.Email()),
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}

func targets(series, min, max, rest int) Targets {
	return Targets{Series: series, RepMin: min, RepMax: max, RestSeconds: rest}
}

// twoDayDraft is a manual program with "Day A" (two exercises) and "Day B".
func twoDayDraft() ProgramDraft {
	return ProgramDraft{
		Name:      "Push Pull",
		Objective: domain.ObjectiveHypertrophy,
		Days: []DaySpec{
			{Name: "Day A", Focus: "Peito", Exercises: []ExerciseSpec{
				{Name: "Supino Reto", Equipment: "Barra", Targets: targets(4, 8, 10, 90)},
				{Name: "Crucifixo", Targets: targets(3, 12, 12, 60)},
			}},
			{Name: "Day B", Focus: "Costas", Exercises: []ExerciseSpec{
				{Name: "Remada Curvada", Targets: targets(4, 6, 8, 120)},
			}},
		},
	}
}

func createProgram(t *testing.T, svc ProgramService, userID primitive.ObjectID, draft ProgramDraft) *ProgramDetail {
	t.Helper()
	ctx := context.Background()
	id, err := svc.Create(ctx, userID, draft)
	require.NoError(t, err)
	detail, err := svc.Detail(ctx, userID, id)
	require.NoError(t, err)
	return detail
}
