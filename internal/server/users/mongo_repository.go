package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haiderzaidi/allaboutme/internal/common"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("users")}
}

func (r *MongoRepository) Create(ctx context.Context, user *User) (*User, error) {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	user := &User{}
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding user by id: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.BirthDate != nil {
		set["birthDate"] = *patch.BirthDate
	}
	if patch.Interests != nil {
		set["interests"] = *patch.Interests
	}
	if patch.ProfileImage != nil {
		set["profileImage"] = *patch.ProfileImage
	}
	if patch.BannerImage != nil {
		set["bannerImage"] = *patch.BannerImage
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	user := &User{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) UpdatePassword(ctx context.Context, id string, digest string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{
			"password":  digest,
			"updatedAt": time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
