package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trimmers-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_Create(t *testing.T) {
	actor := model.Actor{UserID: "u-1", Role: model.RoleUser}

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.OrderResponse
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name: "Created",
			body: `{"items":[{"product":"p-1","amount":2}],"tax":1,"shippingFee":2}`,
			mockReturn: &model.OrderResponse{
				Order:        &model.Order{ID: "o-1", Total: 43},
				ClientSecret: "secret",
			},
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "No items",
			body:           `{"items":[],"tax":1,"shippingFee":2}`,
			mockError:      model.NewBadRequest("No cart items provided"),
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid body",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			h := NewOrderHandler(svc, zerolog.Nop())
			if tt.expectService {
				if tt.mockReturn != nil {
					svc.On("Create", mock.Anything, actor, mock.AnythingOfType("*model.OrderRequest")).Return(tt.mockReturn, nil)
				} else {
					svc.On("Create", mock.Anything, actor, mock.AnythingOfType("*model.OrderRequest")).Return(nil, tt.mockError)
				}
			}

			req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(tt.body)), actor)
			rec := serve(h.Create, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectService {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			}
			if tt.mockReturn != nil {
				var body map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.JSONEq(t, `"secret"`, string(body["clientSecret"]))
			}
		})
	}
}

func TestOrderHandler_Lists(t *testing.T) {
	actor := model.Actor{UserID: "u-1", Role: model.RoleUser}
	svc := new(MockOrderService)
	h := NewOrderHandler(svc, zerolog.Nop())
	svc.On("List", mock.Anything).Return([]model.Order{{ID: "o-1"}, {ID: "o-2"}}, nil)
	svc.On("ListMine", mock.Anything, actor).Return([]model.Order{}, nil)

	rec := serve(h.List, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)

	rec = serve(h.ListMine, withActor(httptest.NewRequest(http.MethodGet, "/api/v1/orders/showAllMyOrders", nil), actor))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orders":[],"count":0}`, rec.Body.String())
}

func TestOrderHandler_GetAndUpdate(t *testing.T) {
	actor := model.Actor{UserID: "u-2", Role: model.RoleUser}

	t.Run("Not permitted", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, zerolog.Nop())
		svc.On("Get", mock.Anything, actor, "o-1").Return(nil, model.ErrNotPermitted)

		req := withParam(withActor(httptest.NewRequest(http.MethodGet, "/api/v1/orders/o-1", nil), actor), "id", "o-1")
		rec := serve(h.Get, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized to access this route", errorMsg(t, rec))
	})

	t.Run("Paid", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, zerolog.Nop())
		svc.On("Update", mock.Anything, actor, "o-1", &model.OrderUpdateRequest{PaymentIntentID: "pi_1"}).
			Return(&model.Order{ID: "o-1", Status: model.OrderStatusPaid}, nil)

		req := withParam(withActor(httptest.NewRequest(http.MethodPatch, "/api/v1/orders/o-1",
			strings.NewReader(`{"paymentIntentId":"pi_1"}`)), actor), "id", "o-1")
		rec := serve(h.Update, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `"paid"`, string(mustField(t, rec, "order", "status")))
	})
}
