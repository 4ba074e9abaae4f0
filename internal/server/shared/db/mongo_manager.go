package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haiderzaidi/allaboutme/internal/idgen"
	"github.com/haiderzaidi/allaboutme/internal/server/memories"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

const connectTimeout = 10 * time.Second

type MongoRepositoryManager struct {
	client   *mongo.Client
	database *mongo.Database
	users    users.Repository
	memories memories.Repository
}

func (m *MongoRepositoryManager) Client() *mongo.Client {
	return m.client
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Memories() memories.Repository {
	return m.memories
}

// RunMigrations creates the indexes the repositories rely on, including the
// unique index on users.email that backs the registration conflict check,
// and backfills external identifiers on documents created before the
// custom-id scheme existed.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	usersCol := m.database.Collection("users")
	memoriesCol := m.database.Collection("memories")

	_, err := usersCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("error creating user indexes: %w", err)
	}

	_, err = memoriesCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "isPrivate", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating memory indexes: %w", err)
	}

	if err := m.backfillIDs(ctx, usersCol, idgen.NewUserID); err != nil {
		return fmt.Errorf("error backfilling user ids: %w", err)
	}
	if err := m.backfillIDs(ctx, memoriesCol, idgen.NewMemoryID); err != nil {
		return fmt.Errorf("error backfilling memory ids: %w", err)
	}

	return nil
}

// backfillIDs assigns a fresh external identifier to every document that
// predates the custom-id scheme.
func (m *MongoRepositoryManager) backfillIDs(ctx context.Context, col *mongo.Collection, newID func() string) error {
	cursor, err := col.Find(ctx, bson.M{"id": bson.M{"$exists": false}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		oid := struct {
			ID any `bson:"_id"`
		}{}
		if err := cursor.Decode(&oid); err != nil {
			return err
		}

		_, err := col.UpdateOne(ctx, bson.M{"_id": oid.ID}, bson.M{
			"$set": bson.M{
				"id":        newID(),
				"updatedAt": time.Now().UTC(),
			},
		})
		if err != nil {
			return err
		}
	}

	return cursor.Err()
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func NewMongoRepositoryManager(ctx context.Context, uri, databaseName string) (RepositoryManager, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	database := client.Database(databaseName)

	m := &MongoRepositoryManager{
		client:   client,
		database: database,
		users:    users.NewMongoRepository(database),
		memories: memories.NewMongoRepository(database),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
