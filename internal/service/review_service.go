package service

import (
	"context"
	"fmt"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/model"
	"trimmers-api/internal/repository"

	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

func reviewNotFound(id string) *model.DomainError {
	return model.NewNotFound("No review with id %s", id)
}

// Create stores the actor's review of a product. A user reviews each product once.
func (s *reviewService) Create(ctx context.Context, actor model.Actor, in *model.ReviewInput) (*model.Review, error) {
	if in == nil || in.Product == "" {
		return nil, model.NewBadRequest("Please provide product")
	}

	product, err := s.productRepo.FindByID(ctx, in.Product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", in.Product).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ProductNotFound(in.Product)
	}

	existing, err := s.reviewRepo.FindByProductAndUser(ctx, in.Product, actor.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", in.Product).Msg("failed to look up existing review")
		return nil, fmt.Errorf("failed to look up existing review: %w", err)
	}
	if existing != nil {
		s.logger.Debug().
			Str("product_id", in.Product).
			Str("user_id", actor.UserID).
			Msg("duplicate review rejected")
		return nil, model.NewBadRequest("Already submitted review for this product")
	}

	review := &model.Review{
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
		UserID:    actor.UserID,
		ProductID: in.Product,
	}
	if err := model.Validate(review); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("product_id", in.Product).Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.refreshRating(ctx, review.ProductID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("review_id", review.ID).
		Str("product_id", review.ProductID).
		Msg("review created")

	return review, nil
}

func (s *reviewService) List(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("review_id", id).Msg("failed to get review")
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, reviewNotFound(id)
	}
	return review, nil
}

// Update changes rating, title or comment of a review the actor may modify.
func (s *reviewService) Update(ctx context.Context, actor model.Actor, id string, patch *model.ReviewPatch) (*model.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPermissions(actor, review.UserID); err != nil {
		s.logger.Warn().Str("review_id", id).Str("user_id", actor.UserID).Msg("review update not permitted")
		return nil, err
	}

	if patch != nil {
		patch.Apply(review)
	}
	if err := model.Validate(review); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("review_id", id).Msg("failed to update review")
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if err := s.refreshRating(ctx, review.ProductID); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete removes a review the actor may modify.
func (s *reviewService) Delete(ctx context.Context, actor model.Actor, id string) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckPermissions(actor, review.UserID); err != nil {
		s.logger.Warn().Str("review_id", id).Str("user_id", actor.UserID).Msg("review delete not permitted")
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return s.refreshRating(ctx, review.ProductID)
}

func (s *reviewService) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to list product reviews")
		return nil, fmt.Errorf("failed to list product reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

// refreshRating recomputes averageRating and numOfReviews of a product.
func (s *reviewService) refreshRating(ctx context.Context, productID string) error {
	stats, err := s.reviewRepo.Stats(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to aggregate reviews")
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	stats = stats.Rounded()
	if err := s.productRepo.UpdateRating(ctx, productID, stats); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to update product rating")
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	s.logger.Debug().
		Str("product_id", productID).
		Float64("average_rating", stats.AverageRating).
		Int("num_of_reviews", stats.NumOfReviews).
		Msg("product rating refreshed")

	return nil
}
