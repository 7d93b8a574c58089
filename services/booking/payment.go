package booking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentVerifier checks that an externally captured payment actually
// covers a booking before it is confirmed.
type PaymentVerifier interface {
	Verify(ctx context.Context, paymentRef string, amount float64, currency string) error
}

// StripeVerifier verifies a payment reference against Stripe. The engine
// never captures payments itself; it only reacts to the completed-payment
// signal and double-checks it here.
type StripeVerifier struct{}

func (v *StripeVerifier) Verify(ctx context.Context, paymentRef string, amount float64, currency string) error {
	intent, err := paymentintent.Get(paymentRef, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent %s: %w", paymentRef, err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent %s has status %s, expected succeeded", paymentRef, intent.Status)
	}
	// Stripe amounts are in the currency's minor unit.
	want := int64(math.Round(amount * 100))
	if intent.Amount < want {
		return fmt.Errorf("payment intent %s covers %d, booking requires %d", paymentRef, intent.Amount, want)
	}
	if !strings.EqualFold(string(intent.Currency), currency) {
		return fmt.Errorf("payment intent %s currency %s does not match booking currency %s", paymentRef, intent.Currency, currency)
	}
	return nil
}
