package handler

import (
	"net/http"

	"trimmers-api/internal/model"
	"trimmers-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

func orderList(orders []model.Order) map[string]any {
	return map[string]any{"orders": orders, "count": len(orders)}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	resp, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		return nil, err
	}
	return Created(resp), nil
}

// List handles GET /orders.
func (h *OrderHandler) List(r *http.Request) (*Result, error) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		return nil, err
	}
	return OK(orderList(orders)), nil
}

// ListMine handles GET /orders/showAllMyOrders.
func (h *OrderHandler) ListMine(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	orders, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		return nil, err
	}
	return OK(orderList(orders)), nil
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	order, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"order": order}), nil
}

// Update handles PATCH /orders/{id}.
func (h *OrderHandler) Update(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	var req model.OrderUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	order, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"order": order}), nil
}
