package service

import (
	"fmt"
	"ironai/workout-app/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeDays(n int) []domain.ProgramDay {
	days := make([]domain.ProgramDay, n)
	for i := range days {
		days[i] = domain.ProgramDay{ID: primitive.NewObjectID(), Name: fmt.Sprintf("Day %d", i+1), Order: i + 1}
	}
	return days
}

func TestNextDay_Cycles(t *testing.T) {
	for n := 1; n <= 6; n++ {
		days := makeDays(n)
		for i := 0; i < n; i++ {
			last := days[i].ID
			next, ok := NextDay(days, &last)
			require.True(t, ok)
			assert.Equal(t, days[(i+1)%n].ID, next.ID, "n=%d i=%d", n, i)
		}
	}
}

func TestNextDay_ColdStart(t *testing.T) {
	days := makeDays(3)
	next, ok := NextDay(days, nil)
	require.True(t, ok)
	assert.Equal(t, days[0].ID, next.ID)
}

func TestNextDay_StaleReference(t *testing.T) {
	days := makeDays(3)
	stale := primitive.NewObjectID()
	next, ok := NextDay(days, &stale)
	require.True(t, ok)
	assert.Equal(t, days[0].ID, next.ID)
}

func TestNextDay_NoDays(t *testing.T) {
	last := primitive.NewObjectID()
	_, ok := NextDay(nil, &last)
	assert.False(t, ok)
}

func TestNextDay_Idempotent(t *testing.T) {
	days := makeDays(4)
	last := days[1].ID
	first, _ := NextDay(days, &last)
	second, _ := NextDay(days, &last)
	assert.Equal(t, first, second)
}
