package users

import (
	"context"
	"sync"
	"time"

	"github.com/haiderzaidi/allaboutme/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and by the
// in-memory repository manager. It mirrors the Mongo implementation's
// semantics, including the unique-email constraint.
type InMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*User
	email map[string]string // lowercased email -> id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:  make(map[string]*User),
		email: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.email[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	clone := *user
	r.byID[clone.ID] = &clone
	r.email[clone.Email] = clone.ID

	out := clone
	return &out, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.email[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *user
	return &out, nil
}

func (r *InMemoryRepository) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}
	if patch.BirthDate != nil {
		user.BirthDate = *patch.BirthDate
	}
	if patch.Interests != nil {
		user.Interests = *patch.Interests
	}
	if patch.ProfileImage != nil {
		user.ProfileImage = *patch.ProfileImage
	}
	if patch.BannerImage != nil {
		user.BannerImage = *patch.BannerImage
	}
	user.UpdatedAt = time.Now().UTC()

	out := *user
	return &out, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id string, digest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Password = digest
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.email, user.Email)
	delete(r.byID, id)
	return nil
}
