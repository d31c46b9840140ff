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

type sessionRepository struct {
	s *Store
}

func (r *sessionRepository) Create(_ context.Context, session *domain.CompletedSession) (primitive.ObjectID, error) {
	if session.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session owner is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session.ID = r.s.newID()
	if session.PerformedAt.IsZero() {
		session.PerformedAt = time.Now().UTC()
	}
	r.s.sessions[session.ID] = *session
	return session.ID, nil
}

// completed returns the completed sessions of ownerID newest first. Callers hold mu.
func (r *sessionRepository) completed(ownerID primitive.ObjectID) []domain.CompletedSession {
	out := []domain.CompletedSession{}
	for _, s := range r.s.sessions {
		if s.OwnerID == ownerID && s.Completed {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PerformedAt.Equal(out[j].PerformedAt) {
			return out[i].PerformedAt.After(out[j].PerformedAt)
		}
		return r.s.seq[out[i].ID] > r.s.seq[out[j].ID]
	})
	return out
}

func (r *sessionRepository) LatestCompleted(_ context.Context, ownerID primitive.ObjectID) (*domain.CompletedSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sessions := r.completed(ownerID)
	if len(sessions) == 0 {
		return nil, repository.ErrNotFound
	}
	return &sessions[0], nil
}

func (r *sessionRepository) ListCompleted(_ context.Context, ownerID primitive.ObjectID, limit int64) ([]domain.CompletedSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sessions := r.completed(ownerID)
	if limit > 0 && int64(len(sessions)) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (r *sessionRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for rid, rec := range r.s.records {
		if rec.SessionID == id {
			delete(r.s.records, rid)
		}
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *sessionRepository) CreateRecords(_ context.Context, records []domain.ExecutionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range records {
		records[i].ID = r.s.newID()
		rec := records[i]
		rec.Weights = append([]float64(nil), rec.Weights...)
		rec.Reps = append([]int(nil), rec.Reps...)
		rec.RestSeconds = append([]int(nil), rec.RestSeconds...)
		r.s.records[rec.ID] = rec
	}
	return nil
}

func (r *sessionRepository) GetRecords(_ context.Context, sessionID primitive.ObjectID) ([]domain.ExecutionRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.ExecutionRecord{}
	for _, rec := range r.s.records {
		if rec.SessionID == sessionID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.seq[out[i].ID] < r.s.seq[out[j].ID] })
	return out, nil
}
