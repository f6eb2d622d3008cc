package service

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// Currency charged for every order.
const Currency = "usd"

// PaymentIntent is a pending charge the client completes with ClientSecret.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	// Amount is in the smallest currency unit.
	Amount int64
}

// PaymentProcessor opens payment intents.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency string) (*PaymentIntent, error)
}

type fakePaymentProcessor struct{}

// NewFakePaymentProcessor returns a processor that accepts every charge
// and issues random client secrets.
func NewFakePaymentProcessor() PaymentProcessor {
	return fakePaymentProcessor{}
}

func (fakePaymentProcessor) CreatePaymentIntent(ctx context.Context, amount float64, _ string) (*PaymentIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &PaymentIntent{
		ID:           "pi_" + id,
		ClientSecret: "pi_" + id + "_secret_" + uuid.NewString(),
		Amount:       int64(math.Round(amount * 100)),
	}, nil
}
