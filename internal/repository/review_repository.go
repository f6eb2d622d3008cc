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

const reviewColumns = `id, rating, title, comment, user_id, product_id, created_at, updated_at`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func scanReview(row rowScanner) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.Rating, &rv.Title, &rv.Comment, &rv.UserID, &rv.ProductID, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

// Create inserts a review and fills in its ID and timestamps.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	now := time.Now().UTC()
	review.ID = uuid.NewString()
	review.CreatedAt = now
	review.UpdatedAt = now

	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.Rating, review.Title, review.Comment, review.UserID, review.ProductID,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// FindByID retrieves a single review by its ID.
func (r *reviewRepository) FindByID(ctx context.Context, id string) (*model.Review, error) {
	if !validID(id) {
		return nil, nil
	}

	rv, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &rv, nil
}

// FindAll retrieves every review, oldest first.
func (r *reviewRepository) FindAll(ctx context.Context) ([]model.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at, id`)
}

// FindByProduct retrieves the reviews of a product, oldest first.
func (r *reviewRepository) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	if !validID(productID) {
		return []model.Review{}, nil
	}
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY created_at, id`, productID)
}

// FindByProductAndUser returns the review a user left on a product.
func (r *reviewRepository) FindByProductAndUser(ctx context.Context, productID, userID string) (*model.Review, error) {
	if !validID(productID) {
		return nil, nil
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 AND user_id = $2`

	rv, err := scanReview(r.pool.QueryRow(ctx, query, productID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("product_id", productID).
			Str("user_id", userID).
			Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &rv, nil
}

// Update stores the rating, title and comment of a review.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	review.UpdatedAt = time.Now().UTC()

	query := `UPDATE reviews SET rating = $2, title = $3, comment = $4, updated_at = $5 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, review.ID, review.Rating, review.Title, review.Comment, review.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

// Delete removes a review.
func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

// DeleteByProduct removes every review of a product.
func (r *reviewRepository) DeleteByProduct(ctx context.Context, productID string) error {
	if !validID(productID) {
		return nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to delete product reviews")
		return fmt.Errorf("failed to delete product reviews: %w", err)
	}

	r.logger.Debug().
		Str("product_id", productID).
		Int64("deleted", tag.RowsAffected()).
		Msg("product reviews deleted")

	return nil
}

// Stats aggregates the ratings of a product.
func (r *reviewRepository) Stats(ctx context.Context, productID string) (model.ReviewStats, error) {
	if !validID(productID) {
		return model.ReviewStats{}, nil
	}

	query := `SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM reviews WHERE product_id = $1`

	var stats model.ReviewStats
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&stats.AverageRating, &stats.NumOfReviews); err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to aggregate reviews")
		return model.ReviewStats{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	return stats, nil
}

func (r *reviewRepository) query(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
