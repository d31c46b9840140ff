package service

import (
	"context"
	"errors"
	"fmt"
	"ironai/workout-app/internal/ai"
	"ironai/workout-app/internal/metrics"
	"ironai/workout-app/internal/repository"
	"ironai/workout-app/internal/storage"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultDailyQuota        = 3
	DefaultGenerationTimeout = 60 * time.Second
)

// GeneratedDraft is a program proposed by the model. It is not stored as a
// program until the client submits it back.
type GeneratedDraft struct {
	DraftID string
	Draft   *ai.Draft
	Profile ai.ProfileInput
}

type GeneratorService interface {
	Generate(ctx context.Context, userID primitive.ObjectID, in ai.ProfileInput) (*GeneratedDraft, error)
}

// GeneratorConfig tunes the generator. A DailyQuota of 0 disables the quota.
type GeneratorConfig struct {
	DailyQuota int
	Timeout    time.Duration
}

// generatorService implements the GeneratorService interface.
type generatorService struct {
	programRepo repository.ProgramRepository
	completer   ai.Completer
	archive     storage.DraftArchive
	metrics     *metrics.Manager
	cfg         GeneratorConfig
	now         func() time.Time
}

// NewGeneratorService creates a new instance of generatorService. archive and
// m may be nil.
func NewGeneratorService(programRepo repository.ProgramRepository, completer ai.Completer, archive storage.DraftArchive, m *metrics.Manager, cfg GeneratorConfig) GeneratorService {
	if archive == nil {
		archive = storage.NewNoopArchive()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultGenerationTimeout
	}
	return &generatorService{
		programRepo: programRepo,
		completer:   completer,
		archive:     archive,
		metrics:     m,
		cfg:         cfg,
		now:         time.Now,
	}
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *generatorService) count(outcome string) {
	if s.metrics != nil {
		s.metrics.CounterGenerations.WithLabelValues(outcome).Inc()
	}
}

// Generate validates the questionnaire, enforces the daily quota and asks the
// model for a program draft. The quota is checked before the model is called.
func (s *generatorService) Generate(ctx context.Context, userID primitive.ObjectID, in ai.ProfileInput) (*GeneratedDraft, error) {
	profile, err := ai.ParseProfile(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if s.cfg.DailyQuota > 0 {
		used, err := s.programRepo.CountMachineGeneratedSince(ctx, userID, startOfDayUTC(s.now()))
		if err != nil {
			return nil, upstreamError("count generated programs", err)
		}
		if used >= int64(s.cfg.DailyQuota) {
			s.count(metrics.GenerationQuota)
			return nil, ErrQuotaExceeded
		}
	}

	prompt, err := ai.BuildPrompt(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	reply, err := s.completer.Complete(callCtx, prompt)
	if err != nil {
		s.count(metrics.GenerationUpstream)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, upstreamError("generate program", fmt.Errorf("model did not answer within %s", s.cfg.Timeout))
		}
		return nil, upstreamError("generate program", err)
	}

	draftID := uuid.New()
	if err := s.archive.PutObject(ctx, storage.DraftKey(userID, draftID), "application/json", []byte(reply)); err != nil {
		log.WithError(err).WithField("draftId", draftID.String()).Warn("failed to archive ai draft")
	}

	draft, err := ai.DecodeDraft(reply)
	if err != nil {
		s.count(metrics.GenerationUpstream)
		return nil, upstreamError("decode draft", err)
	}

	s.count(metrics.GenerationOK)
	return &GeneratedDraft{DraftID: draftID.String(), Draft: draft, Profile: in}, nil
}
