package service

import (
	"context"
	"errors"
	"ironai/workout-app/internal/ai"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/metrics"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCompleter struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (f *fakeArchive) PutObject(_ context.Context, key, _ string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return f.err
}

const draftReply = `{"nome":"Treino ABC","descricao":"x","dias":[
	{"nome":"Treino A","foco":"Peito","exercicios":[{"nome":"Supino","series":4,"repeticoes":"8-10","descanso":"90s"}]}
]}`

func questionnaire() ai.ProfileInput {
	return ai.ProfileInput{
		Objective: "hipertrofia",
		Sex:       "feminino",
		Age:       domain.NewLooseInt(28),
		Weight:    domain.NumberValue(62),
		Height:    domain.NewLooseInt(168),
		Days:      domain.NewLooseInt(3),
		Minutes:   domain.NewLooseInt(50),
		Level:     "iniciante",
	}
}

func seedGenerated(t *testing.T, svc ProgramService, uid primitive.ObjectID, n int) {
	t.Helper()
	generated := true
	for i := 0; i < n; i++ {
		draft := twoDayDraft()
		draft.MachineGenerated = &generated
		_, err := svc.Create(context.Background(), uid, draft)
		require.NoError(t, err)
	}
}

func TestGeneratorService_Generate(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	uid := newUser(t, repos)
	completer := &fakeCompleter{reply: draftReply}
	archive := &fakeArchive{}
	m := metrics.NewTestManager()
	svc := NewGeneratorService(repos.Programs, completer, archive, m, GeneratorConfig{DailyQuota: 3})

	got, err := svc.Generate(ctx, uid, questionnaire())
	require.NoError(t, err)
	assert.Equal(t, "Treino ABC", got.Draft.Name)
	assert.Equal(t, "hipertrofia", got.Profile.Objective)
	assert.NotEmpty(t, got.DraftID)
	assert.Contains(t, completer.prompt, "28 anos")

	require.Len(t, archive.keys, 1)
	assert.True(t, strings.HasPrefix(archive.keys[0], "drafts/"+uid.Hex()+"/"))
	assert.True(t, strings.HasSuffix(archive.keys[0], got.DraftID+".json"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterGenerations.WithLabelValues(metrics.GenerationOK)))
}

func TestGeneratorService_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	uid := newUser(t, repos)
	seedGenerated(t, NewProgramService(repos), uid, 3)

	completer := &fakeCompleter{reply: draftReply}
	m := metrics.NewTestManager()
	svc := NewGeneratorService(repos.Programs, completer, nil, m, GeneratorConfig{DailyQuota: 3})

	_, err := svc.Generate(ctx, uid, questionnaire())
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Zero(t, completer.calls, "the model must not be called")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterGenerations.WithLabelValues(metrics.GenerationQuota)))
}

func TestGeneratorService_QuotaCountsOnlyToday(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	uid := newUser(t, repos)
	for i := 0; i < 3; i++ {
		_, err := repos.Programs.Create(ctx, &domain.Program{
			OwnerID:          uid,
			Name:             "old",
			MachineGenerated: true,
			CreatedAt:        time.Now().UTC().AddDate(0, 0, -2),
		})
		require.NoError(t, err)
	}
	// manual programs never count
	createProgram(t, NewProgramService(repos), uid, twoDayDraft())

	completer := &fakeCompleter{reply: draftReply}
	svc := NewGeneratorService(repos.Programs, completer, nil, nil, GeneratorConfig{DailyQuota: 1})
	_, err := svc.Generate(ctx, uid, questionnaire())
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
}

func TestGeneratorService_Failures(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	uid := newUser(t, repos)

	t.Run("invalid questionnaire", func(t *testing.T) {
		completer := &fakeCompleter{reply: draftReply}
		in := questionnaire()
		in.Age = domain.NewLooseInt(10)
		_, err := NewGeneratorService(repos.Programs, completer, nil, nil, GeneratorConfig{}).Generate(ctx, uid, in)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, completer.calls)
	})

	t.Run("model error", func(t *testing.T) {
		completer := &fakeCompleter{err: errors.New("boom")}
		_, err := NewGeneratorService(repos.Programs, completer, nil, nil, GeneratorConfig{}).Generate(ctx, uid, questionnaire())
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("malformed reply", func(t *testing.T) {
		archive := &fakeArchive{}
		completer := &fakeCompleter{reply: "Claro! Aqui está:"}
		_, err := NewGeneratorService(repos.Programs, completer, archive, nil, GeneratorConfig{}).Generate(ctx, uid, questionnaire())
		assert.ErrorIs(t, err, ErrUpstream)
		assert.Len(t, archive.keys, 1, "bad replies are archived too")
	})

	t.Run("archive failure is not fatal", func(t *testing.T) {
		archive := &fakeArchive{err: errors.New("s3 down")}
		completer := &fakeCompleter{reply: draftReply}
		_, err := NewGeneratorService(repos.Programs, completer, archive, nil, GeneratorConfig{}).Generate(ctx, uid, questionnaire())
		assert.NoError(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		svc := NewGeneratorService(repos.Programs, blockingCompleter{}, nil, nil, GeneratorConfig{Timeout: 10 * time.Millisecond})
		_, err := svc.Generate(ctx, uid, questionnaire())
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestStartOfDayUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	at := time.Date(2024, 5, 10, 22, 30, 0, 0, loc) // 01:30 UTC on the 11th
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), startOfDayUTC(at))
}
