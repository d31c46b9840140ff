package service

import (
	"context"
	"errors"
	"fmt"
	"ironai/workout-app/internal/ai"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

// ExerciseSpec is one exercise entry of a program being created. Either
// ExerciseID references an existing definition or Name is resolved against
// the catalog.
type ExerciseSpec struct {
	ExerciseID *primitive.ObjectID
	Name       string
	Equipment  string
	Note       string
	Targets    Targets
}

// DaySpec is one day of a program being created, in rotation order.
type DaySpec struct {
	Name      string
	Focus     string
	Exercises []ExerciseSpec
}

// ProgramDraft is the strict form of a program creation request.
type ProgramDraft struct {
	Name        string
	Description string
	Objective   domain.Objective
	Days        []DaySpec
	// Profile is attached by the AI flow and upserted for the owner.
	Profile *ai.Profile
	// MachineGenerated defaults to whether a profile is attached.
	MachineGenerated *bool
}

// ProgramPatch lists the program fields to change; nil fields are kept.
type ProgramPatch struct {
	Name        *string
	Description *string
	Objective   *string
}

// ExercisePatch lists the day exercise fields to change; nil fields are kept.
// Setting ExerciseID substitutes the exercise and keeps the targets.
type ExercisePatch struct {
	Series      *int
	RepMin      *int
	RepMax      *int
	RestSeconds *int
	ExerciseID  *primitive.ObjectID
}

// ExerciseView is a day exercise annotated with its catalog definition.
type ExerciseView struct {
	domain.DayExercise
	Name        string
	Equipment   string
	MuscleGroup string
}

// DayView is a program day with its exercises in order.
type DayView struct {
	domain.ProgramDay
	ProgramName string
	Exercises   []ExerciseView
}

// ProgramDetail is a program with its days in order.
type ProgramDetail struct {
	domain.Program
	Days []DayView
}

type ProgramService interface {
	Create(ctx context.Context, userID primitive.ObjectID, draft ProgramDraft) (primitive.ObjectID, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Program, error)
	Detail(ctx context.Context, userID, programID primitive.ObjectID) (*ProgramDetail, error)
	Day(ctx context.Context, userID, dayID primitive.ObjectID) (*DayView, error)
	Update(ctx context.Context, userID, programID primitive.ObjectID, patch ProgramPatch) (*domain.Program, error)
	// Delete is a no-op for programs the user does not own.
	Delete(ctx context.Context, userID, programID primitive.ObjectID) error
	UpdateExercise(ctx context.Context, userID, dayExerciseID primitive.ObjectID, patch ExercisePatch) (*domain.DayExercise, error)
	RemoveExercise(ctx context.Context, userID, dayExerciseID primitive.ObjectID) error
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo     repository.ProgramRepository
	dayRepo         repository.ProgramDayRepository
	dayExerciseRepo repository.DayExerciseRepository
	exerciseRepo    repository.ExerciseRepository
	profileRepo     repository.ProfileRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(repos repository.Repositories) ProgramService {
	return &programService{
		programRepo:     repos.Programs,
		dayRepo:         repos.Days,
		dayExerciseRepo: repos.DayExercises,
		exerciseRepo:    repos.Exercises,
		profileRepo:     repos.Profiles,
	}
}

func validateTargets(t Targets) error {
	if t.Series <= 0 {
		return validationError("series must be positive")
	}
	if t.RepMin <= 0 || t.RepMax <= 0 {
		return validationError("repetitions must be positive")
	}
	if t.RepMin > t.RepMax {
		return validationError("minimum repetitions exceed maximum")
	}
	if t.RestSeconds < 0 {
		return validationError("rest must not be negative")
	}
	return nil
}

func validateDraft(draft *ProgramDraft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return validationError("program name is required")
	}
	if len(draft.Days) == 0 {
		return validationError("program needs at least one day")
	}
	for i := range draft.Days {
		day := &draft.Days[i]
		day.Name = strings.TrimSpace(day.Name)
		if day.Name == "" {
			return validationError("day %d needs a name", i+1)
		}
		if len(day.Exercises) == 0 {
			return validationError("day %q needs at least one exercise", day.Name)
		}
		for j, ex := range day.Exercises {
			if ex.ExerciseID == nil && strings.TrimSpace(ex.Name) == "" {
				return validationError("exercise %d of day %q needs a name or an id", j+1, day.Name)
			}
			if err := validateTargets(ex.Targets); err != nil {
				return err
			}
		}
	}
	return nil
}

// Create persists a program, its days and their exercises in order.
func (s *programService) Create(ctx context.Context, userID primitive.ObjectID, draft ProgramDraft) (primitive.ObjectID, error) {
	if err := validateDraft(&draft); err != nil {
		return primitive.NilObjectID, err
	}

	// Resolve every exercise before writing anything so that a bad reference
	// leaves no partial program behind.
	resolver := newExerciseResolver(s.exerciseRepo)
	exerciseIDs := make([][]primitive.ObjectID, len(draft.Days))
	for i, day := range draft.Days {
		muscleGroup := day.Focus
		for _, ex := range day.Exercises {
			var (
				id  primitive.ObjectID
				err error
			)
			if ex.ExerciseID != nil {
				id, err = resolver.byID(ctx, *ex.ExerciseID)
			} else {
				id, err = resolver.resolve(ctx, ex.Name, ex.Equipment, muscleGroup)
			}
			if err != nil {
				return primitive.NilObjectID, err
			}
			exerciseIDs[i] = append(exerciseIDs[i], id)
		}
	}

	if draft.Profile != nil {
		if err := s.profileRepo.Upsert(ctx, draft.Profile.UserProfile(userID)); err != nil {
			return primitive.NilObjectID, upstreamError("save profile", err)
		}
	}

	objective := draft.Objective
	if objective == "" {
		objective = domain.ObjectiveGeneral
	}
	machineGenerated := draft.Profile != nil
	if draft.MachineGenerated != nil {
		machineGenerated = *draft.MachineGenerated
	}

	program := &domain.Program{
		OwnerID:          userID,
		Name:             draft.Name,
		Description:      strings.TrimSpace(draft.Description),
		Objective:        objective,
		MachineGenerated: machineGenerated,
	}
	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return primitive.NilObjectID, upstreamError("create program", err)
	}

	var dayIDs []primitive.ObjectID
	for i, daySpec := range draft.Days {
		day := &domain.ProgramDay{
			ProgramID: programID,
			Name:      daySpec.Name,
			Focus:     strings.TrimSpace(daySpec.Focus),
			Order:     i + 1,
		}
		dayID, err := s.dayRepo.Create(ctx, day)
		if err != nil {
			s.cascadeDelete(ctx, programID, dayIDs)
			return primitive.NilObjectID, upstreamError("create program day", err)
		}
		dayIDs = append(dayIDs, dayID)

		for j, ex := range daySpec.Exercises {
			item := &domain.DayExercise{
				DayID:       dayID,
				ExerciseID:  exerciseIDs[i][j],
				Order:       j + 1,
				Series:      ex.Targets.Series,
				RepMin:      ex.Targets.RepMin,
				RepMax:      ex.Targets.RepMax,
				RestSeconds: ex.Targets.RestSeconds,
				Note:        strings.TrimSpace(ex.Note),
			}
			if _, err := s.dayExerciseRepo.Create(ctx, item); err != nil {
				s.cascadeDelete(ctx, programID, dayIDs)
				return primitive.NilObjectID, upstreamError("create day exercise", err)
			}
		}
	}

	return programID, nil
}

// cascadeDelete removes a partially written program. Failures are logged;
// the caller already reports the original error.
func (s *programService) cascadeDelete(ctx context.Context, programID primitive.ObjectID, dayIDs []primitive.ObjectID) {
	var err error
	if len(dayIDs) > 0 {
		err = multierr.Append(err, s.dayExerciseRepo.DeleteByDayIDs(ctx, dayIDs))
	}
	err = multierr.Append(err, s.dayRepo.DeleteByProgramID(ctx, programID))
	err = multierr.Append(err, s.programRepo.Delete(ctx, programID))
	if err != nil {
		log.WithError(err).WithField("programId", programID.Hex()).Error("failed to remove partially created program")
	}
}

// List returns the programs of userID, newest first.
func (s *programService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Program, error) {
	programs, err := s.programRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, upstreamError("list programs", err)
	}
	return programs, nil
}

// Detail returns an owned program with its days and exercises.
func (s *programService) Detail(ctx context.Context, userID, programID primitive.ObjectID) (*ProgramDetail, error) {
	program, err := s.programRepo.GetOwned(ctx, programID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program", ErrNotFound)
		}
		return nil, upstreamError("get program", err)
	}

	days, err := s.dayRepo.GetByProgramID(ctx, program.ID)
	if err != nil {
		return nil, upstreamError("get program days", err)
	}
	views, err := s.annotate(ctx, program.Name, days)
	if err != nil {
		return nil, err
	}
	return &ProgramDetail{Program: *program, Days: views}, nil
}

// Day returns the active-workout view of one day. The day must belong to a
// program of userID.
func (s *programService) Day(ctx context.Context, userID, dayID primitive.ObjectID) (*DayView, error) {
	day, program, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	views, err := s.annotate(ctx, program.Name, []domain.ProgramDay{*day})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// annotate loads the exercises of days and joins them with the catalog.
func (s *programService) annotate(ctx context.Context, programName string, days []domain.ProgramDay) ([]DayView, error) {
	views := make([]DayView, len(days))
	if len(days) == 0 {
		return views, nil
	}

	dayIDs := make([]primitive.ObjectID, len(days))
	index := make(map[primitive.ObjectID]int, len(days))
	for i, d := range days {
		dayIDs[i] = d.ID
		index[d.ID] = i
		views[i] = DayView{ProgramDay: d, ProgramName: programName, Exercises: []ExerciseView{}}
	}

	items, err := s.dayExerciseRepo.GetByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, upstreamError("get day exercises", err)
	}

	exerciseIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		exerciseIDs = append(exerciseIDs, item.ExerciseID)
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, upstreamError("get exercises", err)
	}
	catalog := make(map[primitive.ObjectID]domain.Exercise, len(exercises))
	for _, e := range exercises {
		catalog[e.ID] = e
	}

	for _, item := range items {
		i, ok := index[item.DayID]
		if !ok {
			continue
		}
		def := catalog[item.ExerciseID]
		views[i].Exercises = append(views[i].Exercises, ExerciseView{
			DayExercise: item,
			Name:        def.Name,
			Equipment:   def.Equipment,
			MuscleGroup: def.MuscleGroup,
		})
	}
	return views, nil
}

// Update patches the present fields of an owned program.
func (s *programService) Update(ctx context.Context, userID, programID primitive.ObjectID, patch ProgramPatch) (*domain.Program, error) {
	var repoPatch repository.ProgramPatch
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationError("program name must not be empty")
		}
		repoPatch.Name = &name
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		repoPatch.Description = &description
	}
	if patch.Objective != nil {
		objective, ok := domain.ParseObjective(*patch.Objective)
		if !ok {
			return nil, validationError("objective %q is not supported", *patch.Objective)
		}
		repoPatch.Objective = &objective
	}

	program, err := s.programRepo.UpdateOwned(ctx, programID, userID, repoPatch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program", ErrNotFound)
		}
		return nil, upstreamError("update program", err)
	}
	return program, nil
}

// Delete removes an owned program, its days and their exercises. Catalog
// entries and session history are kept.
func (s *programService) Delete(ctx context.Context, userID, programID primitive.ObjectID) error {
	deleted, err := s.programRepo.DeleteOwned(ctx, programID, userID)
	if err != nil {
		return upstreamError("delete program", err)
	}
	if !deleted {
		return nil
	}

	days, err := s.dayRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return upstreamError("get program days", err)
	}

	if len(days) > 0 {
		dayIDs := make([]primitive.ObjectID, len(days))
		for i, d := range days {
			dayIDs[i] = d.ID
		}
		if err := s.dayExerciseRepo.DeleteByDayIDs(ctx, dayIDs); err != nil {
			return upstreamError("delete day exercises", err)
		}
	}
	if err := s.dayRepo.DeleteByProgramID(ctx, programID); err != nil {
		return upstreamError("delete program days", err)
	}
	return nil
}

// ownedDay loads a day and its program, checking the program belongs to userID.
func (s *programService) ownedDay(ctx context.Context, userID, dayID primitive.ObjectID) (*domain.ProgramDay, *domain.Program, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: day", ErrNotFound)
		}
		return nil, nil, upstreamError("get day", err)
	}

	program, err := s.programRepo.GetByID(ctx, day.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: program", ErrNotFound)
		}
		return nil, nil, upstreamError("get program", err)
	}

	if program.OwnerID != userID {
		return nil, nil, ErrForbidden
	}
	return day, program, nil
}

// ownedDayExercise walks DayExercise -> Day -> Program on every call.
func (s *programService) ownedDayExercise(ctx context.Context, userID, dayExerciseID primitive.ObjectID) (*domain.DayExercise, error) {
	item, err := s.dayExerciseRepo.GetByID(ctx, dayExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: day exercise", ErrNotFound)
		}
		return nil, upstreamError("get day exercise", err)
	}
	if _, _, err := s.ownedDay(ctx, userID, item.DayID); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateExercise changes the targets of a day exercise or substitutes its exercise.
func (s *programService) UpdateExercise(ctx context.Context, userID, dayExerciseID primitive.ObjectID, patch ExercisePatch) (*domain.DayExercise, error) {
	item, err := s.ownedDayExercise(ctx, userID, dayExerciseID)
	if err != nil {
		return nil, err
	}

	resulting := Targets{Series: item.Series, RepMin: item.RepMin, RepMax: item.RepMax, RestSeconds: item.RestSeconds}
	if patch.Series != nil {
		resulting.Series = *patch.Series
	}
	if patch.RepMin != nil {
		resulting.RepMin = *patch.RepMin
	}
	if patch.RepMax != nil {
		resulting.RepMax = *patch.RepMax
	}
	if patch.RestSeconds != nil {
		resulting.RestSeconds = *patch.RestSeconds
	}
	if err := validateTargets(resulting); err != nil {
		return nil, err
	}

	if patch.ExerciseID != nil {
		if _, err := newExerciseResolver(s.exerciseRepo).byID(ctx, *patch.ExerciseID); err != nil {
			return nil, err
		}
	}

	updated, err := s.dayExerciseRepo.Update(ctx, dayExerciseID, repository.DayExercisePatch{
		Series:      patch.Series,
		RepMin:      patch.RepMin,
		RepMax:      patch.RepMax,
		RestSeconds: patch.RestSeconds,
		ExerciseID:  patch.ExerciseID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: day exercise", ErrNotFound)
		}
		return nil, upstreamError("update day exercise", err)
	}
	return updated, nil
}

// RemoveExercise deletes one day exercise.
func (s *programService) RemoveExercise(ctx context.Context, userID, dayExerciseID primitive.ObjectID) error {
	if _, err := s.ownedDayExercise(ctx, userID, dayExerciseID); err != nil {
		return err
	}
	if err := s.dayExerciseRepo.Delete(ctx, dayExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: day exercise", ErrNotFound)
		}
		return upstreamError("delete day exercise", err)
	}
	return nil
}
