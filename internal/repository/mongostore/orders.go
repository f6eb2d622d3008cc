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

type orderRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewOrderRepository creates a MongoDB-backed order repository.
// Items are embedded in the order document, so Create is atomic.
func NewOrderRepository(db *mongo.Database, logger zerolog.Logger) repository.OrderRepository {
	return &orderRepository{
		coll:   db.Collection(ordersCollection),
		logger: logger.With().Str("repository", "order").Str("store", "mongo").Logger(),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	now := time.Now().UTC()
	doc := newOrderDoc(order)
	doc.ID = bson.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.ID = doc.ID.Hex()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.logger.Debug().
		Str("order_id", order.ID).
		Int("item_count", len(order.OrderItems)).
		Msg("order created successfully")

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	o := doc.toModel()
	return &o, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	return r.find(ctx, bson.D{})
}

func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.find(ctx, bson.D{{Key: "user", Value: userID}})
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id, paymentIntentID, status string) (*model.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "paymentIntentId", Value: paymentIntentID},
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	var doc orderDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	o := doc.toModel()
	return &o, nil
}

func (r *orderRepository) find(ctx context.Context, filter bson.D) ([]model.Order, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode orders")
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]model.Order, len(docs))
	for i, d := range docs {
		orders[i] = d.toModel()
	}
	return orders, nil
}
