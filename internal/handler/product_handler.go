package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"trimmers-api/internal/model"
	"trimmers-api/internal/query"
	"trimmers-api/internal/service"
	"trimmers-api/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ImageField is the multipart field carrying a product image.
const ImageField = "image"

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 2 << 20

// multipartOverhead is the room left above the image limit for part headers
// and other form fields.
const multipartOverhead = 1 << 20

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service       service.ProductService
	maxImageBytes int64
	logger        zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:       service,
		maxImageBytes: upload.DefaultMaxBytes,
		logger:        logger.With().Str("handler", "product").Logger(),
	}
}

// WithMaxImageBytes sets the image limit the upload body cap is derived from.
func (h *ProductHandler) WithMaxImageBytes(n int64) *ProductHandler {
	if n > 0 {
		h.maxImageBytes = n
	}
	return h
}

// List handles GET /products.
func (h *ProductHandler) List(r *http.Request) (*Result, error) {
	q, err := query.ParseProductParams(r.URL.Query())
	if err != nil {
		return nil, err
	}

	list, err := h.service.List(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return OK(list), nil
}

// Create handles POST /products.
func (h *ProductHandler) Create(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	var in model.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		return nil, err
	}

	product, err := h.service.Create(r.Context(), actor, &in)
	if err != nil {
		return nil, err
	}
	return Created(map[string]any{"product": product}), nil
}

// Get handles GET /products/{id}. The body is the product itself.
func (h *ProductHandler) Get(r *http.Request) (*Result, error) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return OK(product), nil
}

// Update handles PATCH /products/{id}.
func (h *ProductHandler) Update(r *http.Request) (*Result, error) {
	var patch model.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		return nil, err
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"product": product}), nil
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(r *http.Request) (*Result, error) {
	product, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"product": product}), nil
}

// UploadImage handles POST /products/uploadImage. Temporary files of the
// parsed form are removed on every path.
func (h *ProductHandler) UploadImage(r *http.Request) (*Result, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxImageBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, model.ErrNoFileUploaded
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, model.ImageTooLarge(h.maxImageBytes)
		}
		h.logger.Debug().Err(err).Msg("failed to parse multipart form")
		return nil, model.NewBadRequest("Invalid multipart form")
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn().Err(err).Msg("failed to remove multipart temp files")
		}
	}()

	var file *multipart.FileHeader
	if files := r.MultipartForm.File[ImageField]; len(files) > 0 {
		file = files[0]
	}

	url, err := h.service.UploadImage(r.Context(), file)
	if err != nil {
		return nil, err
	}
	return OK(map[string]string{"image": url}), nil
}
