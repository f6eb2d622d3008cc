package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"trimmers-api/internal/model"
	"trimmers-api/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	uploader    ImageUploader
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	uploader ImageUploader,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		uploader:    uploader,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List counts the filtered set, derives the page count and fetches the requested window.
func (s *productService) List(ctx context.Context, q model.ProductQuery) (*model.ProductList, error) {
	count, err := s.productRepo.Count(ctx, q.Filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	products, err := s.productRepo.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		s.logger.Error().Err(err).Int("page", q.Page).Msg("failed to find products")
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int64("count", count).
		Int("page", q.Page).
		Str("sort", string(q.Sort)).
		Int("returned", len(products)).
		Msg("listed products")

	return &model.ProductList{
		AllProducts: products,
		Count:       count,
		NumOfPages:  model.NumOfPages(count),
	}, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, actor model.Actor, in *model.ProductInput) (*model.Product, error) {
	if in == nil {
		return nil, model.NewBadRequest("Please provide product details")
	}

	product := in.ToProduct(actor.UserID)
	if err := model.Validate(product); err != nil {
		s.logger.Debug().Err(err).Msg("product rejected by validation")
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("user_id", actor.UserID).
		Msg("product created")

	return product, nil
}

// Get retrieves a product and populates its reviews.
func (s *productService) Get(ctx context.Context, id string) (*model.ProductDetail, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product reviews")
		return nil, fmt.Errorf("failed to get product reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	return &model.ProductDetail{Product: *product, Reviews: reviews}, nil
}

// Update applies patch to the stored product. The merged product is
// validated as a whole, so an invalid enum value is rejected rather than stored.
func (s *productService) Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch != nil {
		patch.Apply(product)
	}
	if err := model.Validate(product); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("product update rejected by validation")
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, id, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if updated == nil {
		return nil, model.ProductNotFound(id)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	return updated, nil
}

// Delete removes the product's reviews and then the product itself.
func (s *productService) Delete(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.DeleteByProduct(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product reviews")
		return nil, fmt.Errorf("failed to delete product reviews: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return product, nil
}

// UploadImage hands the file to the configured uploader.
func (s *productService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.uploader.Upload(ctx, file)
}

func (s *productService) find(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ProductNotFound(id)
	}

	return product, nil
}
