package memory

import (
	"context"
	"errors"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type programRepository struct {
	s *Store
}

func (r *programRepository) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program owner is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	program.ID = r.s.newID()
	if program.CreatedAt.IsZero() {
		program.CreatedAt = time.Now().UTC()
	}
	r.s.programs[program.ID] = *program
	return program.ID, nil
}

func (r *programRepository) GetOwned(_ context.Context, id, ownerID primitive.ObjectID) (*domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.programs[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *programRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// owned returns the programs of ownerID newest first. Callers hold mu.
func (r *programRepository) owned(ownerID primitive.ObjectID) []domain.Program {
	out := []domain.Program{}
	for _, p := range r.s.programs {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.s.seq[out[i].ID] > r.s.seq[out[j].ID]
	})
	return out
}

func (r *programRepository) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.owned(ownerID), nil
}

func (r *programRepository) Latest(_ context.Context, ownerID primitive.ObjectID) (*domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	programs := r.owned(ownerID)
	if len(programs) == 0 {
		return nil, repository.ErrNotFound
	}
	return &programs[0], nil
}

func (r *programRepository) CountMachineGeneratedSince(_ context.Context, ownerID primitive.ObjectID, since time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, p := range r.s.programs {
		if p.OwnerID == ownerID && p.MachineGenerated && !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *programRepository) UpdateOwned(_ context.Context, id, ownerID primitive.ObjectID, patch repository.ProgramPatch) (*domain.Program, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.programs[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Objective != nil {
		p.Objective = *patch.Objective
	}
	r.s.programs[id] = p
	return &p, nil
}

func (r *programRepository) DeleteOwned(_ context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.programs[id]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(r.s.programs, id)
	return true, nil
}

func (r *programRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.programs, id)
	return nil
}

type programDayRepository struct {
	s *Store
}

func (r *programDayRepository) Create(_ context.Context, day *domain.ProgramDay) (primitive.ObjectID, error) {
	if day.ProgramID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program day requires a program")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day.ID = r.s.newID()
	r.s.days[day.ID] = *day
	return day.ID, nil
}

func (r *programDayRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.days[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *programDayRepository) GetByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.ProgramDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.ProgramDay{}
	for _, d := range r.s.days {
		if d.ProgramID == programID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return r.s.seq[out[i].ID] < r.s.seq[out[j].ID]
	})
	return out, nil
}

func (r *programDayRepository) DeleteByProgramID(_ context.Context, programID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, d := range r.s.days {
		if d.ProgramID == programID {
			delete(r.s.days, id)
		}
	}
	return nil
}

type dayExerciseRepository struct {
	s *Store
}

func (r *dayExerciseRepository) Create(_ context.Context, item *domain.DayExercise) (primitive.ObjectID, error) {
	if item.DayID == primitive.NilObjectID || item.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("day exercise requires a day and an exercise")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = r.s.newID()
	r.s.dayExercises[item.ID] = *item
	return item.ID, nil
}

func (r *dayExerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DayExercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.dayExercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *dayExerciseRepository) GetByDayIDs(_ context.Context, dayIDs []primitive.ObjectID) ([]domain.DayExercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[primitive.ObjectID]bool, len(dayIDs))
	for _, id := range dayIDs {
		wanted[id] = true
	}

	out := []domain.DayExercise{}
	for _, e := range r.s.dayExercises {
		if wanted[e.DayID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayID != out[j].DayID {
			return out[i].DayID.Hex() < out[j].DayID.Hex()
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return r.s.seq[out[i].ID] < r.s.seq[out[j].ID]
	})
	return out, nil
}

func (r *dayExerciseRepository) Update(_ context.Context, id primitive.ObjectID, patch repository.DayExercisePatch) (*domain.DayExercise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.dayExercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Series != nil {
		e.Series = *patch.Series
	}
	if patch.RepMin != nil {
		e.RepMin = *patch.RepMin
	}
	if patch.RepMax != nil {
		e.RepMax = *patch.RepMax
	}
	if patch.RestSeconds != nil {
		e.RestSeconds = *patch.RestSeconds
	}
	if patch.ExerciseID != nil {
		e.ExerciseID = *patch.ExerciseID
	}
	r.s.dayExercises[id] = e
	return &e, nil
}

func (r *dayExerciseRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dayExercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.dayExercises, id)
	return nil
}

func (r *dayExerciseRepository) DeleteByDayIDs(_ context.Context, dayIDs []primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[primitive.ObjectID]bool, len(dayIDs))
	for _, id := range dayIDs {
		wanted[id] = true
	}
	for id, e := range r.s.dayExercises {
		if wanted[e.DayID] {
			delete(r.s.dayExercises, id)
		}
	}
	return nil
}
