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

type productRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewProductRepository creates a MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database, logger zerolog.Logger) repository.ProductRepository {
	return &productRepository{
		coll:   db.Collection(productsCollection),
		logger: logger.With().Str("repository", "product").Str("store", "mongo").Logger(),
	}
}

func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, productFilter(filter))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) Find(ctx context.Context, filter model.ProductFilter, opts model.FindOptions) ([]model.Product, error) {
	cursor, err := r.coll.Find(ctx, productFilter(filter), productFindOptions(opts))
	if err != nil {
		r.logger.Error().Err(err).
			Int64("limit", opts.Limit).
			Int64("skip", opts.Skip).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return r.collect(ctx, cursor)
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	p := doc.toModel()
	return &p, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []model.Product{}, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(oids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	return r.collect(ctx, cursor)
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	doc := newProductDoc(product)
	doc.ID = bson.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Str("product_name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.ID = doc.ID.Hex()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.logger.Debug().Str("product_id", product.ID).Msg("product created successfully")

	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, product *model.Product) (*model.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: product.Name},
		{Key: "price", Value: product.Price},
		{Key: "description", Value: product.Description},
		{Key: "image", Value: product.Image},
		{Key: "category", Value: product.Category},
		{Key: "company", Value: product.Company},
		{Key: "color", Value: product.Color},
		{Key: "featured", Value: product.Featured},
		{Key: "freeShipping", Value: product.FreeShipping},
		{Key: "inventory", Value: product.Inventory},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	var doc productDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	p := doc.toModel()
	return &p, nil
}

func (r *productRepository) UpdateRating(ctx context.Context, id string, stats model.ReviewStats) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "averageRating", Value: stats.AverageRating},
		{Key: "numOfReviews", Value: stats.NumOfReviews},
	}}}

	if _, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update); err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product rating")
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}

	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Str("product_id", id).Msg("product deleted")

	return nil
}

func (r *productRepository) collect(ctx context.Context, cursor *mongo.Cursor) ([]model.Product, error) {
	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]model.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toModel()
	}
	return products, nil
}
