package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/haiderzaidi/allaboutme/internal/common"
	"github.com/haiderzaidi/allaboutme/internal/idgen"
	"github.com/haiderzaidi/allaboutme/internal/server/credentials"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLength = 6
	minNameLength     = 2
)

// Service implements account registration, authentication and profile
// management. All identifier-format and input validation happens here,
// before any storage access.
type Service struct {
	repo  Repository
	creds *credentials.Store
}

func NewService(repo Repository, creds *credentials.Store) *Service {
	return &Service{repo: repo, creds: creds}
}

// Register creates a new account. The email is lowercased and must be
// unique; a duplicate yields common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	if len(fullName) < minNameLength {
		return nil, fmt.Errorf("%w: name must be at least %d characters", common.ErrorValidation, minNameLength)
	}

	// Cheap pre-check; the unique index on email catches the race between
	// two concurrent registrations.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}

	digest, err := s.creds.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:        idgen.NewUserID(),
		Email:     email,
		Password:  digest,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate returns the user for the given credentials. Unknown email
// and wrong password both yield common.ErrorUnauthorized, without
// revealing which check failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !s.creds.Verify(password, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// GetByID fetches a user by external identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	if !idgen.Validate(id, idgen.PrefixUser) {
		return nil, fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the patch to the user's profile fields. The
// identifier, password digest and creation time cannot be changed here.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	if !idgen.Validate(id, idgen.PrefixUser) {
		return nil, fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}
	if patch.FullName != nil {
		trimmed := strings.TrimSpace(*patch.FullName)
		if len(trimmed) < minNameLength {
			return nil, fmt.Errorf("%w: name must be at least %d characters", common.ErrorValidation, minNameLength)
		}
		patch.FullName = &trimmed
	}
	return s.repo.UpdateProfile(ctx, id, patch)
}

// ChangePassword re-hashes and replaces the stored digest.
func (s *Service) ChangePassword(ctx context.Context, id string, newPassword string) error {
	if !idgen.Validate(id, idgen.PrefixUser) {
		return fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}

	digest, err := s.creds.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, digest)
}

// Delete removes the account. Deletion is terminal; the user's memories
// are deliberately left in place (no cascade).
func (s *Service) Delete(ctx context.Context, id string) error {
	if !idgen.Validate(id, idgen.PrefixUser) {
		return fmt.Errorf("%w: invalid user id format", common.ErrorValidation)
	}
	return s.repo.Delete(ctx, id)
}
