package memories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/haiderzaidi/allaboutme/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and by the
// in-memory repository manager. It mirrors the Mongo implementation's
// semantics, including the owner-scoped write operations.
type InMemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Memory
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*Memory)}
}

func (r *InMemoryRepository) Create(ctx context.Context, memory *Memory) (*Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[memory.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	clone := *memory
	r.byID[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memory, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *memory
	return &out, nil
}

func inScope(m *Memory, scope Scope) bool {
	if scope.OwnerID != "" && m.UserID != scope.OwnerID {
		return false
	}
	if scope.PublicOnly && m.IsPrivate {
		return false
	}
	return true
}

// collect returns scoped memories sorted by creation time, newest first,
// with paging applied.
func (r *InMemoryRepository) collect(scope Scope, match func(*Memory) bool) []*Memory {
	results := []*Memory{}
	for _, m := range r.byID {
		if !inScope(m, scope) {
			continue
		}
		if match != nil && !match(m) {
			continue
		}
		out := *m
		results = append(results, &out)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if scope.Limit > 0 {
		if scope.Offset >= int64(len(results)) {
			return []*Memory{}
		}
		results = results[scope.Offset:]
		if int64(len(results)) > scope.Limit {
			results = results[:scope.Limit]
		}
	}
	return results
}

func (r *InMemoryRepository) List(ctx context.Context, scope Scope) ([]*Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(scope, nil), nil
}

func (r *InMemoryRepository) Search(ctx context.Context, query string, scope Scope) ([]*Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	match := func(m *Memory) bool {
		if strings.Contains(strings.ToLower(m.Title), q) {
			return true
		}
		if strings.Contains(strings.ToLower(m.Description), q) {
			return true
		}
		for _, tag := range m.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	}

	return r.collect(scope, match), nil
}

func (r *InMemoryRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch Patch) (*Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	memory, ok := r.byID[id]
	if !ok || memory.UserID != ownerID {
		return nil, common.ErrorNotFound
	}

	if patch.Title != nil {
		memory.Title = *patch.Title
	}
	if patch.Description != nil {
		memory.Description = *patch.Description
	}
	if patch.Date != nil {
		memory.Date = *patch.Date
	}
	if patch.Type != nil {
		memory.Type = *patch.Type
	}
	if patch.Image != nil {
		memory.Image = *patch.Image
	}
	if patch.Tags != nil {
		memory.Tags = *patch.Tags
	}
	if patch.IsPrivate != nil {
		memory.IsPrivate = *patch.IsPrivate
	}
	memory.UpdatedAt = time.Now().UTC()

	out := *memory
	return &out, nil
}

func (r *InMemoryRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	memory, ok := r.byID[id]
	if !ok || memory.UserID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
