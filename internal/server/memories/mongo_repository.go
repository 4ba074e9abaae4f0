package memories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haiderzaidi/allaboutme/internal/common"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("memories")}
}

func (r *MongoRepository) Create(ctx context.Context, memory *Memory) (*Memory, error) {
	_, err := r.collection.InsertOne(ctx, memory)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error inserting memory: %w", err)
	}
	return memory, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Memory, error) {
	memory := &Memory{}
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(memory)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding memory: %w", err)
	}
	return memory, nil
}

// scopeFilter translates a Scope into a Mongo filter.
func scopeFilter(scope Scope) bson.M {
	filter := bson.M{}
	if scope.OwnerID != "" {
		filter["userId"] = scope.OwnerID
	}
	if scope.PublicOnly {
		filter["isPrivate"] = false
	}
	return filter
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, scope Scope) ([]*Memory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if scope.Limit > 0 {
		opts = opts.SetSkip(scope.Offset).SetLimit(scope.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying memories: %w", err)
	}
	defer cursor.Close(ctx)

	results := []*Memory{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding memories: %w", err)
	}
	return results, nil
}

func (r *MongoRepository) List(ctx context.Context, scope Scope) ([]*Memory, error) {
	return r.find(ctx, scopeFilter(scope), scope)
}

func (r *MongoRepository) Search(ctx context.Context, query string, scope Scope) ([]*Memory, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}

	filter := scopeFilter(scope)
	filter["$or"] = bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"tags": bson.M{"$in": bson.A{pattern}}},
	}

	return r.find(ctx, filter, scope)
}

func (r *MongoRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch Patch) (*Memory, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.IsPrivate != nil {
		set["isPrivate"] = *patch.IsPrivate
	}

	// scoping to (id AND userId) makes a foreign-owned record look absent
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	memory := &Memory{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id, "userId": ownerID}, bson.M{"$set": set}, opts).Decode(memory)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating memory: %w", err)
	}
	return memory, nil
}

func (r *MongoRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id, "userId": ownerID})
	if err != nil {
		return fmt.Errorf("error deleting memory: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
