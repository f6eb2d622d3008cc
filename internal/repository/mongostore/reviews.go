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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type reviewRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewReviewRepository creates a MongoDB-backed review repository.
func NewReviewRepository(db *mongo.Database, logger zerolog.Logger) repository.ReviewRepository {
	return &reviewRepository{
		coll:   db.Collection(reviewsCollection),
		logger: logger.With().Str("repository", "review").Str("store", "mongo").Logger(),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	now := time.Now().UTC()
	doc := reviewDoc{
		ID:        bson.NewObjectID(),
		Rating:    review.Rating,
		Title:     review.Title,
		Comment:   review.Comment,
		User:      review.UserID,
		Product:   review.ProductID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = now
	review.UpdatedAt = now

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*model.Review, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]model.Review, error) {
	return r.find(ctx, bson.D{})
}

func (r *reviewRepository) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	return r.find(ctx, bson.D{{Key: "product", Value: productID}})
}

func (r *reviewRepository) FindByProductAndUser(ctx context.Context, productID, userID string) (*model.Review, error) {
	return r.findOne(ctx, bson.D{{Key: "product", Value: productID}, {Key: "user", Value: userID}})
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	oid, ok := objectID(review.ID)
	if !ok {
		return nil
	}

	review.UpdatedAt = time.Now().UTC()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating", Value: review.Rating},
		{Key: "title", Value: review.Title},
		{Key: "comment", Value: review.Comment},
		{Key: "updatedAt", Value: review.UpdatedAt},
	}}}

	if _, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update); err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}

	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

func (r *reviewRepository) DeleteByProduct(ctx context.Context, productID string) error {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "product", Value: productID}})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to delete product reviews")
		return fmt.Errorf("failed to delete product reviews: %w", err)
	}

	r.logger.Debug().
		Str("product_id", productID).
		Int64("deleted", res.DeletedCount).
		Msg("product reviews deleted")

	return nil
}

// Stats aggregates the ratings of a product with a $group stage.
func (r *reviewRepository) Stats(ctx context.Context, productID string) (model.ReviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "product", Value: productID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "numOfReviews", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to aggregate reviews")
		return model.ReviewStats{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	var results []struct {
		AverageRating float64 `bson:"averageRating"`
		NumOfReviews  int     `bson:"numOfReviews"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to decode review stats")
		return model.ReviewStats{}, fmt.Errorf("failed to decode review stats: %w", err)
	}

	if len(results) == 0 {
		return model.ReviewStats{}, nil
	}
	return model.ReviewStats{AverageRating: results[0].AverageRating, NumOfReviews: results[0].NumOfReviews}, nil
}

func (r *reviewRepository) findOne(ctx context.Context, filter bson.D) (*model.Review, error) {
	var doc reviewDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	rv := doc.toModel()
	return &rv, nil
}

func (r *reviewRepository) find(ctx context.Context, filter bson.D) ([]model.Review, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	var docs []reviewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode reviews")
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]model.Review, len(docs))
	for i, d := range docs {
		reviews[i] = d.toModel()
	}
	return reviews, nil
}
