package repository

import (
	"context"
	"ironai/workout-app/internal/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores the one-per-user training profile.
type ProfileRepository interface {
	// Upsert updates the profile owned by profile.OwnerID or inserts it.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserProfile, error)
}

// ProgramPatch lists the program fields to overwrite; nil fields are kept.
type ProgramPatch struct {
	Name        *string
	Description *string
	Objective   *domain.Objective
}

// ProgramRepository defines the interface for interacting with program data.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	// GetOwned returns the program only if it belongs to ownerID.
	GetOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Program, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	// ListByOwner returns programs newest first.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Program, error)
	// Latest returns the most recently created program of ownerID.
	Latest(ctx context.Context, ownerID primitive.ObjectID) (*domain.Program, error)
	CountMachineGeneratedSince(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (int64, error)
	UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch ProgramPatch) (*domain.Program, error)
	// DeleteOwned reports whether a program was deleted.
	DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgramDayRepository defines the interface for interacting with program days.
type ProgramDayRepository interface {
	Create(ctx context.Context, day *domain.ProgramDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramDay, error)
	// GetByProgramID returns the days sorted by Order ascending.
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramDay, error)
	DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error
}

// DayExercisePatch lists the target fields to overwrite; nil fields are kept.
type DayExercisePatch struct {
	Series      *int
	RepMin      *int
	RepMax      *int
	RestSeconds *int
	ExerciseID  *primitive.ObjectID
}

// DayExerciseRepository defines the interface for the per-day exercise targets.
type DayExerciseRepository interface {
	Create(ctx context.Context, item *domain.DayExercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DayExercise, error)
	// GetByDayIDs returns the rows of all given days sorted by day then Order.
	GetByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) ([]domain.DayExercise, error)
	Update(ctx context.Context, id primitive.ObjectID, patch DayExercisePatch) (*domain.DayExercise, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) error
}

// ExerciseRepository defines the interface for the global exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByNameKey finds an exercise by its case-insensitive name key.
	GetByNameKey(ctx context.Context, key string) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	// ListAll returns the catalog sorted by name.
	ListAll(ctx context.Context) ([]domain.Exercise, error)
}

// SessionRepository defines the interface for completed-session history.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.CompletedSession) (primitive.ObjectID, error)
	// LatestCompleted returns the newest completed session of ownerID.
	LatestCompleted(ctx context.Context, ownerID primitive.ObjectID) (*domain.CompletedSession, error)
	ListCompleted(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]domain.CompletedSession, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	CreateRecords(ctx context.Context, records []domain.ExecutionRecord) error
	GetRecords(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExecutionRecord, error)
}

// Repositories bundles every repository the services depend on.
type Repositories struct {
	Users        UserRepository
	Profiles     ProfileRepository
	Programs     ProgramRepository
	Days         ProgramDayRepository
	DayExercises DayExerciseRepository
	Exercises    ExerciseRepository
	Sessions     SessionRepository
}
