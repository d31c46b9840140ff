// Package memory holds map backed implementations of the repository
// interfaces. They are used for local runs without MongoDB and in tests.
package memory

import (
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store keeps every collection behind a single lock so that cross collection
// lookups observe a consistent state.
type Store struct {
	mu sync.RWMutex

	users        map[primitive.ObjectID]domain.User
	profiles     map[primitive.ObjectID]domain.UserProfile // keyed by owner
	programs     map[primitive.ObjectID]domain.Program
	days         map[primitive.ObjectID]domain.ProgramDay
	dayExercises map[primitive.ObjectID]domain.DayExercise
	exercises    map[primitive.ObjectID]domain.Exercise
	sessions     map[primitive.ObjectID]domain.CompletedSession
	records      map[primitive.ObjectID]domain.ExecutionRecord

	// seq records insertion order; it breaks ties between equal timestamps.
	seq  map[primitive.ObjectID]uint64
	next uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[primitive.ObjectID]domain.User),
		profiles:     make(map[primitive.ObjectID]domain.UserProfile),
		programs:     make(map[primitive.ObjectID]domain.Program),
		days:         make(map[primitive.ObjectID]domain.ProgramDay),
		dayExercises: make(map[primitive.ObjectID]domain.DayExercise),
		exercises:    make(map[primitive.ObjectID]domain.Exercise),
		sessions:     make(map[primitive.ObjectID]domain.CompletedSession),
		records:      make(map[primitive.ObjectID]domain.ExecutionRecord),
		seq:          make(map[primitive.ObjectID]uint64),
	}
}

// NewRepositories builds all repositories on top of a fresh store.
func NewRepositories() repository.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:        &userRepository{s},
		Profiles:     &profileRepository{s},
		Programs:     &programRepository{s},
		Days:         &programDayRepository{s},
		DayExercises: &dayExerciseRepository{s},
		Exercises:    &exerciseRepository{s},
		Sessions:     &sessionRepository{s},
	}
}

// newID allocates an ID and remembers its insertion position. Callers hold mu.
func (s *Store) newID() primitive.ObjectID {
	id := primitive.NewObjectID()
	s.next++
	s.seq[id] = s.next
	return id
}
