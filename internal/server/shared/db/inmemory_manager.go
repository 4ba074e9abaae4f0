package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/haiderzaidi/allaboutme/internal/server/memories"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

// InMemoryRepositoryManager backs tests and local experimentation without a
// running Mongo instance.
type InMemoryRepositoryManager struct {
	users    users.Repository
	memories memories.Repository
}

func (m InMemoryRepositoryManager) Client() *mongo.Client {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) Memories() memories.Repository {
	return m.memories
}

func (m InMemoryRepositoryManager) Close(ctx context.Context) error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		users:    users.NewInMemoryRepository(),
		memories: memories.NewInMemoryRepository(),
	}
}
