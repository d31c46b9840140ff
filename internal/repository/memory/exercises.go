package memory

import (
	"context"
	"errors"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepository struct {
	s *Store
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise name is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domain.ExerciseNameKey(exercise.Name)
	for _, e := range r.s.exercises {
		if e.NameKey == key {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	exercise.ID = r.s.newID()
	exercise.NameKey = key
	r.s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *exerciseRepository) GetByNameKey(_ context.Context, key string) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.exercises {
		if e.NameKey == key {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *exerciseRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Exercise{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if e, ok := r.s.exercises[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *exerciseRepository) ListAll(_ context.Context) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Exercise, 0, len(r.s.exercises))
	for _, e := range r.s.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
