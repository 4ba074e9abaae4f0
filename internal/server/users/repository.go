package users

import (
	"context"
)

type Repository interface {
	// Create persists a new user. It returns common.ErrorAlreadyExists when
	// the email is already taken (storage-level unique index).
	Create(ctx context.Context, user *User) (*User, error)

	// GetByEmail looks a user up by lowercased email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID looks a user up by external identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// UpdateProfile applies the patch and refreshes updatedAt, returning the
	// updated record.
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)

	// UpdatePassword replaces the stored digest and refreshes updatedAt.
	UpdatePassword(ctx context.Context, id string, digest string) error

	// Delete removes the user record. Memories owned by the user are left in
	// place; there is no cascade.
	Delete(ctx context.Context, id string) error
}
