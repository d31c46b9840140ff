package memory

import (
	"context"
	"errors"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	user.ID = r.s.newID()
	user.CreatedAt = time.Now().UTC()
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type profileRepository struct {
	s *Store
}

func (r *profileRepository) Upsert(_ context.Context, profile *domain.UserProfile) error {
	if profile.OwnerID == primitive.NilObjectID {
		return errors.New("profile owner is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.profiles[profile.OwnerID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = r.s.newID()
	}
	profile.UpdatedAt = time.Now().UTC()
	r.s.profiles[profile.OwnerID] = *profile
	return nil
}

func (r *profileRepository) GetByOwner(_ context.Context, ownerID primitive.ObjectID) (*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}
