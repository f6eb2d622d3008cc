package model

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusFailed    = "failed"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// Order represents a customer order.
type Order struct {
	ID              string      `json:"id" db:"id"`
	Tax             float64     `json:"tax" db:"tax"`
	ShippingFee     float64     `json:"shippingFee" db:"shipping_fee"`
	Subtotal        float64     `json:"subtotal" db:"subtotal"`
	Total           float64     `json:"total" db:"total"`
	OrderItems      []OrderItem `json:"orderItems"`
	Status          string      `json:"status" db:"status"`
	UserID          string      `json:"user" db:"user_id"`
	ClientSecret    string      `json:"clientSecret" db:"client_secret"`
	PaymentIntentID string      `json:"paymentIntentId,omitempty" db:"payment_intent_id"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line of an order, priced when the order was placed.
type OrderItem struct {
	Name      string  `json:"name" db:"name"`
	Image     string  `json:"image" db:"image"`
	Price     float64 `json:"price" db:"price"`
	Amount    int     `json:"amount" db:"amount"`
	ProductID string  `json:"product" db:"product_id"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	Tax         *float64           `json:"tax"`
	ShippingFee *float64           `json:"shippingFee"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string `json:"product"`
	Amount    int    `json:"amount"`
}

// OrderUpdateRequest confirms payment of an order.
type OrderUpdateRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// OrderResponse is returned when an order is placed.
type OrderResponse struct {
	Order        *Order `json:"order"`
	ClientSecret string `json:"clientSecret"`
}
