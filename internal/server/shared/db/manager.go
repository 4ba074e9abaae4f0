// Package db owns the process-wide storage lifecycle: one connection
// established at startup, shared by every repository, torn down on
// shutdown.
package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/haiderzaidi/allaboutme/internal/server/memories"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

type RepositoryManager interface {
	// RunMigrations ensures indexes and backfills identifiers on records
	// created before the custom-id scheme.
	RunMigrations(ctx context.Context) error

	Client() *mongo.Client
	Users() users.Repository
	Memories() memories.Repository

	// Close releases the shared connection. The manager is unusable
	// afterwards.
	Close(ctx context.Context) error
}
