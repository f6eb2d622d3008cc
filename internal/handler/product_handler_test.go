package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"trimmers-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(fn Func, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Handle(fn, zerolog.Nop()).ServeHTTP(rec, r)
	return rec
}

func errorMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestProductHandler_List(t *testing.T) {
	maxPrice := 40.0

	tests := []struct {
		name           string
		queryParams    string
		expectedQuery  *model.ProductQuery
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "No parameters",
			queryParams:    "",
			expectedQuery:  &model.ProductQuery{},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "All parameters",
			queryParams: "?sort=lowest&search=chair&category=office&company=all&color=red&price=40&freeShipping=TRUE&page=2",
			expectedQuery: &model.ProductQuery{
				Filter: model.ProductFilter{
					Search:       "chair",
					Category:     "office",
					Color:        "red",
					MaxPrice:     &maxPrice,
					FreeShipping: true,
				},
				Sort: model.SortLowest,
				Page: 2,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid page",
			queryParams:    "?page=0",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "page must be a positive integer",
		},
		{
			name:           "Invalid price",
			queryParams:    "?price=cheap",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "price must be a non-negative number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			h := NewProductHandler(svc, zerolog.Nop())

			if tt.expectedQuery != nil {
				svc.On("List", mock.Anything, *tt.expectedQuery).Return(&model.ProductList{
					AllProducts: []model.Product{{ID: "p-1", Name: "Chair"}},
					Count:       11,
					NumOfPages:  2,
				}, nil)
			}

			rec := serve(h.List, httptest.NewRequest(http.MethodGet, "/api/v1/products"+tt.queryParams, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, errorMsg(t, rec))
				svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
				return
			}

			var body model.ProductList
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, int64(11), body.Count)
			assert.Equal(t, int64(2), body.NumOfPages)
			assert.Len(t, body.AllProducts, 1)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_List_ServiceError(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc, zerolog.Nop())
	svc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	rec := serve(h.List, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong try again later", errorMsg(t, rec))
}

func TestProductHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *model.ProductDetail
		mockError      error
		expectedStatus int
	}{
		{
			name: "Found",
			mockReturn: &model.ProductDetail{
				Product: model.Product{ID: "p-1", Name: "Chair"},
				Reviews: []model.Review{{ID: "r-1"}},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			mockError:      model.ProductNotFound("p-1"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			h := NewProductHandler(svc, zerolog.Nop())
			if tt.mockReturn != nil {
				svc.On("Get", mock.Anything, "p-1").Return(tt.mockReturn, nil)
			} else {
				svc.On("Get", mock.Anything, "p-1").Return(nil, tt.mockError)
			}

			req := withParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/p-1", nil), "id", "p-1")
			rec := serve(h.Get, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.mockError != nil {
				assert.Equal(t, "No product with id : p-1", errorMsg(t, rec))
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "p-1", body["id"])
			assert.Len(t, body["reviews"], 1)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	actor := model.Actor{UserID: "admin-1", Role: model.RoleAdmin}

	t.Run("Created", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(in *model.ProductInput) bool {
			return in.Name == "Desk" && in.Price != nil && *in.Price == 99
		})).Return(&model.Product{ID: "p-1", Name: "Desk", Price: 99}, nil)

		req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/products",
			strings.NewReader(`{"name":"Desk","price":99}`)), actor)
		rec := serve(h.Create, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `"p-1"`, string(mustField(t, rec, "product", "id")))
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())

		req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":`)), actor)
		rec := serve(h.Create, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Wrong field type", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())

		req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"price":"cheap"}`)), actor)
		rec := serve(h.Create, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid value for price", errorMsg(t, rec))
	})

	t.Run("No actor", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())

		rec := serve(h.Create, httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProductHandler_UpdateAndDelete(t *testing.T) {
	t.Run("Update with invalid category", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("Update", mock.Anything, "p-1", mock.AnythingOfType("*model.ProductPatch")).
			Return(nil, model.NewBadRequest("garage is not supported for category"))

		req := withParam(httptest.NewRequest(http.MethodPatch, "/api/v1/products/p-1",
			strings.NewReader(`{"category":"garage"}`)), "id", "p-1")
		rec := serve(h.Update, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "garage is not supported for category", errorMsg(t, rec))
	})

	t.Run("Delete returns the removed product", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("Delete", mock.Anything, "p-1").Return(&model.Product{ID: "p-1", Name: "Chair"}, nil)

		req := withParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/p-1", nil), "id", "p-1")
		rec := serve(h.Delete, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `"Chair"`, string(mustField(t, rec, "product", "name")))
	})

	t.Run("Delete unknown product", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("Delete", mock.Anything, "nope").Return(nil, model.ProductNotFound("nope"))

		req := withParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/nope", nil), "id", "nope")
		rec := serve(h.Delete, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, errorMsg(t, rec), "nope")
	})
}

func multipartRequest(t *testing.T, field, filename, contentType string, size int) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/uploadImage", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProductHandler_UploadImage(t *testing.T) {
	t.Run("Passes the image part to the service", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("UploadImage", mock.Anything, mock.MatchedBy(func(fh *multipart.FileHeader) bool {
			return fh != nil && fh.Filename == "chair.png" && fh.Size == 128
		})).Return("/uploads/chair.png", nil)

		rec := serve(h.UploadImage, multipartRequest(t, ImageField, "chair.png", "image/png", 128))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"image":"/uploads/chair.png"}`, rec.Body.String())
	})

	t.Run("Other field means no file", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("UploadImage", mock.Anything, (*multipart.FileHeader)(nil)).Return("", model.ErrNoFileUploaded)

		rec := serve(h.UploadImage, multipartRequest(t, "avatar", "chair.png", "image/png", 16))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No File Uploaded", errorMsg(t, rec))
	})

	t.Run("Not multipart", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/uploadImage", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(h.UploadImage, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No File Uploaded", errorMsg(t, rec))
		svc.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("Rejection from the uploader", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())
		svc.On("UploadImage", mock.Anything, mock.Anything).Return("", model.ErrImageTooLarge)

		rec := serve(h.UploadImage, multipartRequest(t, ImageField, "big.png", "image/png", 1536*1024))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMsg(t, rec), "1MB")
		svc.AssertExpectations(t)
	})

	t.Run("Body past the cap is rejected before parsing", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop())

		rec := serve(h.UploadImage, multipartRequest(t, ImageField, "huge.png", "image/png", 4*1024*1024))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please upload image smaller than 1MB", errorMsg(t, rec))
		svc.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("Cap follows the configured image limit", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc, zerolog.Nop()).WithMaxImageBytes(4 * 1024 * 1024)
		svc.On("UploadImage", mock.Anything, mock.MatchedBy(func(fh *multipart.FileHeader) bool {
			return fh != nil && fh.Size == 3*1024*1024
		})).Return("/uploads/poster.png", nil)

		rec := serve(h.UploadImage, multipartRequest(t, ImageField, "poster.png", "image/png", 3*1024*1024))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

// mustField extracts body[outer][inner] as raw JSON.
func mustField(t *testing.T, rec *httptest.ResponseRecorder, outer, inner string) json.RawMessage {
	t.Helper()
	var body map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body[outer][inner]
}
