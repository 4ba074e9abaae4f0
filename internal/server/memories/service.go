package memories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haiderzaidi/allaboutme/internal/common"
	"github.com/haiderzaidi/allaboutme/internal/idgen"
)

const (
	defaultPublicLimit = 20
	maxPublicLimit     = 100
)

// Service implements memory CRUD with the ownership and visibility rules
// applied before any storage access.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stamps a fresh identifier and timestamps and persists the memory
// for userID.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*Memory, error) {
	if !idgen.Validate(userID, idgen.PrefixUser) {
		return nil, fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if input.Date == "" {
		return nil, fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	if !ValidType(input.Type) {
		return nil, fmt.Errorf("%w: unknown memory type %q", common.ErrorValidation, input.Type)
	}

	now := time.Now().UTC()
	memory := &Memory{
		ID:          idgen.NewMemoryID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Type:        input.Type,
		Image:       input.Image,
		Tags:        input.Tags,
		IsPrivate:   input.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	memory, err := s.repo.Create(ctx, memory)
	if err != nil {
		return nil, fmt.Errorf("error creating memory: %w", err)
	}
	return memory, nil
}

// GetByID fetches a memory and applies the read rule: public records are
// visible to anyone, private ones only to their owner. A private record
// requested by a stranger is reported as not found.
func (s *Service) GetByID(ctx context.Context, memoryID, requesterID string) (*Memory, error) {
	if !idgen.Validate(memoryID, idgen.PrefixMemory) {
		return nil, fmt.Errorf("%w: invalid memory id format", common.ErrorValidation)
	}
	if requesterID != "" && !idgen.Validate(requesterID, idgen.PrefixUser) {
		return nil, fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}

	memory, err := s.repo.GetByID(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if !CanRead(memory, requesterID) {
		return nil, common.ErrorNotFound
	}
	return memory, nil
}

// ListByOwner returns userID's memories, newest first. Private records are
// included only when includePrivate is set; callers pass includePrivate
// only for the owner's own listing.
func (s *Service) ListByOwner(ctx context.Context, userID string, includePrivate bool) ([]*Memory, error) {
	if !idgen.Validate(userID, idgen.PrefixUser) {
		return nil, fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}
	return s.repo.List(ctx, Scope{OwnerID: userID, PublicOnly: !includePrivate})
}

// ListPublic returns a page of public memories across all owners, newest
// first.
func (s *Service) ListPublic(ctx context.Context, limit, offset int64) ([]*Memory, error) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, Scope{PublicOnly: true, Limit: limit, Offset: offset})
}

// Search matches query against title, description and tags. The candidate
// set follows the search rule: without a valid requester identity only
// public memories are searched; with one and includePrivate set, only the
// requester's own.
func (s *Service) Search(ctx context.Context, query, requesterID string, includePrivate bool) ([]*Memory, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", common.ErrorValidation)
	}
	return s.repo.Search(ctx, query, SearchScope(requesterID, includePrivate))
}

// Update applies the patch if requesterID owns the memory. A miss is
// reported as not found whether the record is absent or foreign-owned.
func (s *Service) Update(ctx context.Context, memoryID, requesterID string, patch Patch) (*Memory, error) {
	if !idgen.Validate(memoryID, idgen.PrefixMemory) || !idgen.Validate(requesterID, idgen.PrefixUser) {
		return nil, fmt.Errorf("%w: invalid id format", common.ErrorValidation)
	}
	if patch.Type != nil && !ValidType(*patch.Type) {
		return nil, fmt.Errorf("%w: unknown memory type %q", common.ErrorValidation, *patch.Type)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	memory, err := s.repo.UpdateOwned(ctx, memoryID, requesterID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating memory: %w", err)
	}
	return memory, nil
}

// Delete removes the memory if requesterID owns it, with the same miss
// semantics as Update.
func (s *Service) Delete(ctx context.Context, memoryID, requesterID string) error {
	if !idgen.Validate(memoryID, idgen.PrefixMemory) || !idgen.Validate(requesterID, idgen.PrefixUser) {
		return fmt.Errorf("%w: invalid id format", common.ErrorValidation)
	}
	return s.repo.DeleteOwned(ctx, memoryID, requesterID)
}
