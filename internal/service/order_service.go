package service

import (
	"context"
	"fmt"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/model"
	"trimmers-api/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	payments    PaymentProcessor
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	payments PaymentProcessor,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		payments:    payments,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

func orderNotFound(id string) *model.DomainError {
	return model.NewNotFound("No order with id : %s", id)
}

// Create prices each item from the stored product, computes the totals and
// opens a payment intent for the order.
func (s *orderService) Create(ctx context.Context, actor model.Actor, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(productIDs)).Msg("failed to retrieve products")
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.OrderItem, len(req.Items))
	var subtotal float64
	for i, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("order references unknown product")
			return nil, model.ProductNotFound(item.ProductID)
		}
		items[i] = model.OrderItem{
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Amount:    item.Amount,
			ProductID: product.ID,
		}
		subtotal += product.Price * float64(item.Amount)
	}

	total := *req.Tax + *req.ShippingFee + subtotal

	intent, err := s.payments.CreatePaymentIntent(ctx, total, Currency)
	if err != nil {
		s.logger.Error().Err(err).Float64("total", total).Msg("failed to create payment intent")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	order := &model.Order{
		Tax:          *req.Tax,
		ShippingFee:  *req.ShippingFee,
		Subtotal:     subtotal,
		Total:        total,
		OrderItems:   items,
		Status:       model.OrderStatusPending,
		UserID:       actor.UserID,
		ClientSecret: intent.ClientSecret,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", actor.UserID).
			Int("item_count", len(items)).
			Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(items)).
		Float64("total", total).
		Msg("order created successfully")

	return &model.OrderResponse{
		Order:        order,
		ClientSecret: order.ClientSecret,
	}, nil
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *orderService) ListMine(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.UserID).Msg("failed to list user orders")
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// Get retrieves an order by its ID and checks the actor may see it.
func (s *orderService) Get(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id).Msg("order not found")
		return nil, orderNotFound(id)
	}

	if err := auth.CheckPermissions(actor, order.UserID); err != nil {
		s.logger.Warn().Str("order_id", id).Str("user_id", actor.UserID).Msg("order access not permitted")
		return nil, err
	}

	return order, nil
}

// Update records the payment intent and marks the order paid.
func (s *orderService) Update(ctx context.Context, actor model.Actor, id string, req *model.OrderUpdateRequest) (*model.Order, error) {
	if req == nil || req.PaymentIntentID == "" {
		return nil, model.NewBadRequest("Please provide payment intent id")
	}

	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.UpdatePayment(ctx, id, req.PaymentIntentID, model.OrderStatusPaid)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order payment")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if order == nil {
		return nil, orderNotFound(id)
	}

	s.logger.Info().Str("order_id", id).Str("status", order.Status).Msg("order paid")

	return order, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.NewBadRequest("No cart items provided")
	}

	if req.Tax == nil || req.ShippingFee == nil {
		return model.NewBadRequest("Please provide tax and shipping fee")
	}
	if *req.Tax < 0 || *req.ShippingFee < 0 {
		return model.NewBadRequest("tax and shipping fee must be non-negative")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewBadRequest("item %d: please provide product", i)
		}

		if item.Amount <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("amount", item.Amount).
				Msg("invalid amount in order request")
			return model.NewBadRequest("item %d: amount must be greater than 0", i)
		}
	}

	return nil
}
