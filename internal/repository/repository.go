package repository

import (
	"context"

	"trimmers-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ProductRepository defines the data access port for products.
// Lookups by id return (nil, nil) when no product matches.
type ProductRepository interface {
	// Count returns the number of products matching filter, ignoring any window.
	Count(ctx context.Context, filter model.ProductFilter) (int64, error)

	// Find returns the products matching filter, ordered and windowed by opts.
	Find(ctx context.Context, filter model.ProductFilter, opts model.FindOptions) ([]model.Product, error)

	// FindByID retrieves a single product by its ID.
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// FindByIDs retrieves multiple products by their IDs.
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a product and fills in its ID and timestamps.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the stored fields of the product with the given ID.
	// Returns (nil, nil) when the product no longer exists.
	Update(ctx context.Context, id string, product *model.Product) (*model.Product, error)

	// UpdateRating stores the aggregated review stats of a product.
	UpdateRating(ctx context.Context, id string, stats model.ReviewStats) error

	// Delete removes the product with the given ID.
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines the data access port for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id string) (*model.Review, error)
	FindAll(ctx context.Context) ([]model.Review, error)
	FindByProduct(ctx context.Context, productID string) ([]model.Review, error)

	// FindByProductAndUser returns the review userID left on productID, if any.
	FindByProductAndUser(ctx context.Context, productID, userID string) (*model.Review, error)

	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) error

	// Stats aggregates the ratings of a product.
	Stats(ctx context.Context, productID string) (model.ReviewStats, error)
}

// UserRepository defines the data access port for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

// OrderRepository defines the data access port for orders.
type OrderRepository interface {
	// Create stores an order together with its items atomically.
	Create(ctx context.Context, order *model.Order) error

	// FindByID retrieves an order by its ID along with its items.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	FindAll(ctx context.Context) ([]model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)

	// UpdatePayment records a payment intent and the new status.
	UpdatePayment(ctx context.Context, id, paymentIntentID, status string) (*model.Order, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Products ProductRepository
	Reviews  ReviewRepository
	Users    UserRepository
	Orders   OrderRepository
}

// NewStore creates the PostgreSQL-backed repositories sharing one pool.
func NewStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return Store{
		Products: NewProductRepository(pool, logger),
		Reviews:  NewReviewRepository(pool, logger),
		Users:    NewUserRepository(pool, logger),
		Orders:   NewOrderRepository(pool, logger),
	}
}
