package paypal

import (
	"context"

	"sol-storefront/internal/domain"
)

// CaptureResult is the provider's answer to a capture call. Amount is the
// provider-reported captured amount, which the capturer treats as the
// financial source of truth for the stored order.
type CaptureResult struct {
	CaptureID string
	Status    string
	Amount    float64
	Currency  string
}

// Gateway is the payment provider boundary. The provider owns the payment
// intent state machine; this interface only triggers creation and capture
// and observes the result.
type Gateway interface {
	// CreateOrder mints a provider-side payment intent for the validated
	// total, attaching the server-resolved line items and the shipping
	// destination. Returns the provider's opaque order id.
	CreateOrder(ctx context.Context, order *domain.ValidatedOrder, shipping domain.ShippingInfo, countryCode string) (string, error)

	// CaptureOrder finalizes a previously approved payment intent. A
	// second capture of the same order fails at the provider.
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}
