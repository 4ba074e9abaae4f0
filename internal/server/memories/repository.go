package memories

import (
	"context"
)

// Scope restricts which memories a list or search may return. A zero Scope
// means no restriction; policy code never produces one.
type Scope struct {
	// OwnerID restricts results to this owner when non-empty.
	OwnerID string

	// PublicOnly excludes private memories.
	PublicOnly bool

	// Limit and Offset page through results; Limit <= 0 means no paging.
	Limit  int64
	Offset int64
}

type Repository interface {
	// Create persists a new memory.
	Create(ctx context.Context, memory *Memory) (*Memory, error)

	// GetByID fetches a memory by external identifier without applying any
	// access rule; callers are responsible for the read policy.
	GetByID(ctx context.Context, id string) (*Memory, error)

	// List returns memories within scope, most recently created first.
	List(ctx context.Context, scope Scope) ([]*Memory, error)

	// Search returns memories within scope whose title, description or tags
	// match the query case-insensitively, most recently created first.
	Search(ctx context.Context, query string, scope Scope) ([]*Memory, error)

	// UpdateOwned applies the patch to the memory only if it is owned by
	// ownerID, refreshing updatedAt. A miss, whether the record is absent
	// or foreign-owned, returns common.ErrorNotFound.
	UpdateOwned(ctx context.Context, id, ownerID string, patch Patch) (*Memory, error)

	// DeleteOwned removes the memory only if it is owned by ownerID, with
	// the same miss semantics as UpdateOwned.
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
