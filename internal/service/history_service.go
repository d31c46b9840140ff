package service

import (
	"context"
	"errors"
	"fmt"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/metrics"
	"ironai/workout-app/internal/repository"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultHistoryLimit is used when List is called without a positive limit.
const DefaultHistoryLimit = 20

// SetInput is one planned set as reported by the client.
type SetInput struct {
	Weight domain.LooseText
	Reps   domain.LooseText
	Rest   domain.LooseText
	Done   bool
}

// ExerciseLog is what the client reports for one exercise. ID is either a
// day exercise of the session's day or an exercise definition.
type ExerciseLog struct {
	ID   primitive.ObjectID
	Sets []SetInput
	Note string
}

// SessionInput is a finished workout as reported by the client.
type SessionInput struct {
	DayID           primitive.ObjectID
	DurationSeconds int
	Exercises       []ExerciseLog
}

// SessionSummary is a completed session with its execution records.
type SessionSummary struct {
	domain.CompletedSession
	Records []domain.ExecutionRecord
}

type HistoryService interface {
	Record(ctx context.Context, userID primitive.ObjectID, in SessionInput) (primitive.ObjectID, error)
	// List returns recent completed sessions, newest first.
	List(ctx context.Context, userID primitive.ObjectID, limit int) ([]SessionSummary, error)
}

// historyService implements the HistoryService interface.
type historyService struct {
	programRepo     repository.ProgramRepository
	dayRepo         repository.ProgramDayRepository
	dayExerciseRepo repository.DayExerciseRepository
	exerciseRepo    repository.ExerciseRepository
	sessionRepo     repository.SessionRepository
	metrics         *metrics.Manager
}

// NewHistoryService creates a new instance of historyService. m may be nil.
func NewHistoryService(repos repository.Repositories, m *metrics.Manager) HistoryService {
	return &historyService{
		programRepo:     repos.Programs,
		dayRepo:         repos.Days,
		dayExerciseRepo: repos.DayExercises,
		exerciseRepo:    repos.Exercises,
		sessionRepo:     repos.Sessions,
		metrics:         m,
	}
}

// looseNumber parses a reported value, falling back to 0.
func looseNumber(v domain.LooseText) float64 {
	f, ok := v.Float()
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Record stores a completed session and one execution record per exercise
// that has at least one set marked done.
func (s *historyService) Record(ctx context.Context, userID primitive.ObjectID, in SessionInput) (primitive.ObjectID, error) {
	if in.DayID.IsZero() {
		return primitive.NilObjectID, validationError("day id is required")
	}
	if in.DurationSeconds < 0 {
		return primitive.NilObjectID, validationError("duration must not be negative")
	}

	if err := s.checkDayOwner(ctx, userID, in.DayID); err != nil {
		return primitive.NilObjectID, err
	}

	planned, err := s.dayExerciseRepo.GetByDayIDs(ctx, []primitive.ObjectID{in.DayID})
	if err != nil {
		return primitive.NilObjectID, upstreamError("get day exercises", err)
	}
	plannedExercise := make(map[primitive.ObjectID]primitive.ObjectID, len(planned))
	for _, p := range planned {
		plannedExercise[p.ID] = p.ExerciseID
	}

	var records []domain.ExecutionRecord
	for _, entry := range in.Exercises {
		record := domain.ExecutionRecord{
			Weights:     []float64{},
			Reps:        []int{},
			RestSeconds: []int{},
			Note:        strings.TrimSpace(entry.Note),
		}
		for _, set := range entry.Sets {
			if !set.Done {
				continue
			}
			record.Weights = append(record.Weights, looseNumber(set.Weight))
			record.Reps = append(record.Reps, int(looseNumber(set.Reps)))
			record.RestSeconds = append(record.RestSeconds, int(looseNumber(set.Rest)))
		}
		if len(record.Weights) == 0 {
			continue
		}

		if exerciseID, ok := plannedExercise[entry.ID]; ok {
			record.ExerciseID = exerciseID
			record.DayExerciseID = entry.ID
		} else {
			if _, err := s.exerciseRepo.GetByID(ctx, entry.ID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return primitive.NilObjectID, validationError("exercise %s is not part of this day", entry.ID.Hex())
				}
				return primitive.NilObjectID, upstreamError("get exercise", err)
			}
			record.ExerciseID = entry.ID
		}
		records = append(records, record)
	}

	session := &domain.CompletedSession{
		OwnerID:         userID,
		DayID:           in.DayID,
		DurationMinutes: int(math.Round(float64(in.DurationSeconds) / 60)),
		Completed:       true,
	}
	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return primitive.NilObjectID, upstreamError("create session", err)
	}

	if len(records) > 0 {
		for i := range records {
			records[i].SessionID = sessionID
		}
		if err := s.sessionRepo.CreateRecords(ctx, records); err != nil {
			if delErr := s.sessionRepo.Delete(ctx, sessionID); delErr != nil {
				log.WithError(delErr).WithField("sessionId", sessionID.Hex()).Error("failed to remove session without records")
			}
			return primitive.NilObjectID, upstreamError("create execution records", err)
		}
	}

	if s.metrics != nil {
		s.metrics.CounterSessionsRecorded.Inc()
	}
	return sessionID, nil
}

func (s *historyService) checkDayOwner(ctx context.Context, userID, dayID primitive.ObjectID) error {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: day", ErrNotFound)
		}
		return upstreamError("get day", err)
	}
	program, err := s.programRepo.GetByID(ctx, day.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: program", ErrNotFound)
		}
		return upstreamError("get program", err)
	}
	if program.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

// List returns up to limit recent sessions with their records.
func (s *historyService) List(ctx context.Context, userID primitive.ObjectID, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	sessions, err := s.sessionRepo.ListCompleted(ctx, userID, int64(limit))
	if err != nil {
		return nil, upstreamError("list sessions", err)
	}

	out := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		records, err := s.sessionRepo.GetRecords(ctx, session.ID)
		if err != nil {
			return nil, upstreamError("get execution records", err)
		}
		out = append(out, SessionSummary{CompletedSession: session, Records: records})
	}
	return out, nil
}
