package service

import (
	"context"
	"errors"
	"ironai/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placeholders until days carry their own duration and intensity.
const (
	EstimatedSessionMinutes = 60
	DefaultIntensity        = "Alta"
)

// NextSession describes the day the user should train next.
type NextSession struct {
	DayID            primitive.ObjectID
	DayName          string
	Focus            string
	ProgramName      string
	EstimatedMinutes int
	Intensity        string
}

// Overview is the dashboard greeting. Next is nil when there is nothing to train.
type Overview struct {
	Name string
	Next *NextSession
}

type DashboardService interface {
	// Next returns ErrNoProgram when the user has no program or the active
	// program has no days.
	Next(ctx context.Context, userID primitive.ObjectID) (*NextSession, error)
	Overview(ctx context.Context, userID primitive.ObjectID) (*Overview, error)
}

// dashboardService implements the DashboardService interface.
type dashboardService struct {
	userRepo    repository.UserRepository
	programRepo repository.ProgramRepository
	dayRepo     repository.ProgramDayRepository
	sessionRepo repository.SessionRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(repos repository.Repositories) DashboardService {
	return &dashboardService{
		userRepo:    repos.Users,
		programRepo: repos.Programs,
		dayRepo:     repos.Days,
		sessionRepo: repos.Sessions,
	}
}

// Next derives the next day from the newest program and the last completed
// session. Nothing is cached between calls.
func (s *dashboardService) Next(ctx context.Context, userID primitive.ObjectID) (*NextSession, error) {
	program, err := s.programRepo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoProgram
		}
		return nil, upstreamError("get active program", err)
	}

	days, err := s.dayRepo.GetByProgramID(ctx, program.ID)
	if err != nil {
		return nil, upstreamError("get program days", err)
	}

	var lastDayID *primitive.ObjectID
	last, err := s.sessionRepo.LatestCompleted(ctx, userID)
	switch {
	case err == nil:
		lastDayID = &last.DayID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, upstreamError("get last session", err)
	}

	day, ok := NextDay(days, lastDayID)
	if !ok {
		return nil, ErrNoProgram
	}

	return &NextSession{
		DayID:            day.ID,
		DayName:          day.Name,
		Focus:            day.Focus,
		ProgramName:      program.Name,
		EstimatedMinutes: EstimatedSessionMinutes,
		Intensity:        DefaultIntensity,
	}, nil
}

// Overview returns the user's name and next session.
func (s *dashboardService) Overview(ctx context.Context, userID primitive.ObjectID) (*Overview, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, upstreamError("get user", err)
	}

	next, err := s.Next(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoProgram) {
		return nil, err
	}
	return &Overview{Name: user.Name, Next: next}, nil
}
