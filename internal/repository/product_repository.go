package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimmers-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Category, &p.Company, &p.Color,
		&p.Featured, &p.FreeShipping, &p.Inventory, &p.AverageRating, &p.NumOfReviews, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// validID reports whether id can name a row. Malformed ids match nothing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Count returns the number of products matching filter.
func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	query, args := buildCountProducts(filter)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// Find returns the products matching filter, ordered and windowed by opts.
func (r *productRepository) Find(ctx context.Context, filter model.ProductFilter, opts model.FindOptions) ([]model.Product, error) {
	query, args := buildFindProducts(filter, opts)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("limit", opts.Limit).
			Int64("skip", opts.Skip).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// FindByID retrieves a single product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// FindByIDs retrieves multiple products by their IDs.
func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id::text = ANY($1) ORDER BY name`

	rows, err := r.pool.Query(ctx, query, valid)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(valid)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Create inserts a product and fills in its ID and timestamps.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Description, product.Image,
		product.Category, product.Company, product.Color, product.Featured, product.FreeShipping,
		product.Inventory, product.AverageRating, product.NumOfReviews, product.UserID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID).Msg("product created successfully")

	return nil
}

// Update replaces the editable fields of a product.
func (r *productRepository) Update(ctx context.Context, id string, product *model.Product) (*model.Product, error) {
	if !validID(id) {
		return nil, nil
	}

	query := `
		UPDATE products
		SET name = $2, price = $3, description = $4, image = $5, category = $6, company = $7,
			color = $8, featured = $9, free_shipping = $10, inventory = $11, updated_at = $12
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, query,
		id, product.Name, product.Price, product.Description, product.Image, product.Category,
		product.Company, product.Color, product.Featured, product.FreeShipping, product.Inventory,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &updated, nil
}

// UpdateRating stores the aggregated review stats of a product.
func (r *productRepository) UpdateRating(ctx context.Context, id string, stats model.ReviewStats) error {
	if !validID(id) {
		return nil
	}

	query := `UPDATE products SET average_rating = $2, num_of_reviews = $3 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, stats.AverageRating, stats.NumOfReviews); err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product rating")
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	return nil
}

// Delete removes the product with the given ID.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Str("product_id", id).Msg("product deleted")

	return nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
