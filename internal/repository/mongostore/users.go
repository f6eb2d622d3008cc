package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimmers-api/internal/model"
	"trimmers-api/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewUserRepository creates a MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database, logger zerolog.Logger) repository.UserRepository {
	return &userRepository{
		coll:   db.Collection(usersCollection),
		logger: logger.With().Str("repository", "user").Str("store", "mongo").Logger(),
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	doc := userDoc{
		ID:        bson.NewObjectID(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count users")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return doc.toModel(), nil
}
