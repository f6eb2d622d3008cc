package handler

import (
	"net/http"

	"trimmers-api/internal/model"
	"trimmers-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

func reviewList(reviews []model.Review) map[string]any {
	return map[string]any{"reviews": reviews, "count": len(reviews)}
}

// List handles GET /reviews.
func (h *ReviewHandler) List(r *http.Request) (*Result, error) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		return nil, err
	}
	return OK(reviewList(reviews)), nil
}

// ListByProduct handles GET /products/{id}/reviews.
func (h *ReviewHandler) ListByProduct(r *http.Request) (*Result, error) {
	reviews, err := h.service.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return OK(reviewList(reviews)), nil
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	var in model.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}

	review, err := h.service.Create(r.Context(), actor, &in)
	if err != nil {
		return nil, err
	}
	return Created(map[string]any{"review": review}), nil
}

// Get handles GET /reviews/{id}.
func (h *ReviewHandler) Get(r *http.Request) (*Result, error) {
	review, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"review": review}), nil
}

// Update handles PATCH /reviews/{id}.
func (h *ReviewHandler) Update(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	var patch model.ReviewPatch
	if err := decodeJSON(r, &patch); err != nil {
		return nil, err
	}

	review, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &patch)
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"review": review}), nil
}

// Delete handles DELETE /reviews/{id}.
func (h *ReviewHandler) Delete(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return OK(model.ErrorResponse{Msg: "Success! Review removed"}), nil
}
