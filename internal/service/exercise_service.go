package service

import (
	"context"
	"errors"
	"fmt"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseService exposes the shared exercise catalog.
type ExerciseService interface {
	Catalog(ctx context.Context) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// Catalog returns every exercise definition sorted by name.
func (s *exerciseService) Catalog(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.ListAll(ctx)
	if err != nil {
		return nil, upstreamError("list exercises", err)
	}
	return exercises, nil
}

// exerciseResolver maps exercise entries onto catalog rows during a single
// program creation. Names are cached so a program naming the same exercise
// twice resolves it once.
type exerciseResolver struct {
	repo   repository.ExerciseRepository
	byName map[string]primitive.ObjectID
}

func newExerciseResolver(repo repository.ExerciseRepository) *exerciseResolver {
	return &exerciseResolver{repo: repo, byName: make(map[string]primitive.ObjectID)}
}

// byID checks that an explicitly referenced exercise exists.
func (r *exerciseResolver) byID(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	if _, err := r.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, validationError("exercise %s does not exist", id.Hex())
		}
		return primitive.NilObjectID, upstreamError("get exercise", err)
	}
	return id, nil
}

// resolve finds the exercise named name, case-insensitively, or creates it.
func (r *exerciseResolver) resolve(ctx context.Context, name, equipment, muscleGroup string) (primitive.ObjectID, error) {
	key := domain.ExerciseNameKey(name)
	if key == "" {
		return primitive.NilObjectID, validationError("exercise name is required")
	}
	if id, ok := r.byName[key]; ok {
		return id, nil
	}

	id, err := r.lookup(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		id, err = r.create(ctx, name, equipment, muscleGroup)
		if errors.Is(err, repository.ErrDuplicate) {
			// created concurrently by another request
			id, err = r.lookup(ctx, key)
		}
	}
	if err != nil {
		return primitive.NilObjectID, upstreamError("resolve exercise", err)
	}

	r.byName[key] = id
	return id, nil
}

func (r *exerciseResolver) lookup(ctx context.Context, key string) (primitive.ObjectID, error) {
	exercise, err := r.repo.GetByNameKey(ctx, key)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return exercise.ID, nil
}

func (r *exerciseResolver) create(ctx context.Context, name, equipment, muscleGroup string) (primitive.ObjectID, error) {
	exercise := &domain.Exercise{
		Name:        strings.Join(strings.Fields(name), " "),
		Equipment:   strings.TrimSpace(equipment),
		MuscleGroup: strings.TrimSpace(muscleGroup),
	}
	if exercise.Equipment == "" {
		exercise.Equipment = domain.EquipmentUnspecified
	}
	if exercise.MuscleGroup == "" {
		exercise.MuscleGroup = domain.MuscleGroupGeneral
	}
	id, err := r.repo.Create(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create exercise %q: %w", exercise.Name, err)
	}
	return id, nil
}
