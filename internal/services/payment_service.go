package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentService creates card payment intents against Stripe and hands
// the client secret back verbatim.
type PaymentService struct {
	enabled bool
}

func NewPaymentService(secretKey string) *PaymentService {
	if secretKey == "" {
		return &PaymentService{}
	}
	stripe.Key = secretKey
	return &PaymentService{enabled: true}
}

// CreateIntent converts a price in dollars to cents and requests a card
// payment intent in USD. No idempotency key is attached; repeated calls
// create distinct intents.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if !s.enabled {
		return "", errors.New("payment provider is not configured")
	}
	if price <= 0 {
		return "", errors.New("price must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(ToMinorUnits(price)),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// ToMinorUnits converts decimal currency units to the provider's integer
// minor units, rounding half away from zero.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
