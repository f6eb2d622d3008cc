package service

import (
	"context"
	"mime/multipart"
	"time"

	"trimmers-api/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List runs a catalogue query. Count and NumOfPages describe the whole
	// filtered set regardless of the requested page.
	List(ctx context.Context, q model.ProductQuery) (*model.ProductList, error)

	// Create stores a new product owned by the actor.
	Create(ctx context.Context, actor model.Actor, in *model.ProductInput) (*model.Product, error)

	// Get retrieves a single product with its reviews.
	Get(ctx context.Context, id string) (*model.ProductDetail, error)

	// Update merges patch into the stored product and re-validates it.
	Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error)

	// Delete removes a product and its reviews, returning the product as it was.
	Delete(ctx context.Context, id string) (*model.Product, error)

	// UploadImage stores a product image and returns its public URL.
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// ReviewService defines operations for product reviews.
type ReviewService interface {
	Create(ctx context.Context, actor model.Actor, in *model.ReviewInput) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	Get(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, actor model.Actor, id string, patch *model.ReviewPatch) (*model.Review, error)
	Delete(ctx context.Context, actor model.Actor, id string) error

	// ListByProduct returns the reviews of one product.
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)
}

// AuthService defines account operations.
type AuthService interface {
	// Register creates an account. The first account becomes an admin.
	Register(ctx context.Context, req *model.RegisterRequest) (*Session, error)

	// Login checks credentials and opens a session.
	Login(ctx context.Context, req *model.LoginRequest) (*Session, error)

	// CurrentUser loads the account behind an authenticated actor.
	CurrentUser(ctx context.Context, actor model.Actor) (*model.User, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create prices the requested items from the catalogue and opens a payment intent.
	Create(ctx context.Context, actor model.Actor, req *model.OrderRequest) (*model.OrderResponse, error)

	// List returns every order.
	List(ctx context.Context) ([]model.Order, error)

	// ListMine returns the orders placed by the actor.
	ListMine(ctx context.Context, actor model.Actor) ([]model.Order, error)

	// Get retrieves an order the actor owns, or any order for admins.
	Get(ctx context.Context, actor model.Actor, id string) (*model.Order, error)

	// Update confirms payment of an order and marks it paid.
	Update(ctx context.Context, actor model.Actor, id string, req *model.OrderUpdateRequest) (*model.Order, error)
}

// ImageUploader stores validated product images.
type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// TokenIssuer mints session tokens for an actor.
type TokenIssuer interface {
	Mint(actor model.Actor) (string, error)
	TTL() time.Duration
}

// Session is an authenticated account with its token.
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}
