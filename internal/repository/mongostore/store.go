// Package mongostore implements the repository ports on MongoDB.
package mongostore

import (
	"context"
	"fmt"

	"trimmers-api/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names.
const (
	productsCollection = "products"
	reviewsCollection  = "reviews"
	usersCollection    = "users"
	ordersCollection   = "orders"
)

// New creates the MongoDB-backed repositories on db.
func New(db *mongo.Database, logger zerolog.Logger) repository.Store {
	return repository.Store{
		Products: NewProductRepository(db, logger),
		Reviews:  NewReviewRepository(db, logger),
		Users:    NewUserRepository(db, logger),
		Orders:   NewOrderRepository(db, logger),
	}
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		productsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "company", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
		reviewsCollection: {
			{
				Keys:    bson.D{{Key: "product", Value: 1}, {Key: "user", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	return nil
}
