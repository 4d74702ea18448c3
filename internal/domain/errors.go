package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrProviderUnavailable covers network-level failures reaching the
	// payment provider; the caller sees a generic message, details go to
	// the server log.
	ErrProviderUnavailable = errors.New("payment provider unavailable")

	// ErrDuplicateOrder is returned by the order store when an insert hits
	// the provider_order_id uniqueness constraint. A capture already
	// recorded the row.
	ErrDuplicateOrder = errors.New("order already recorded for provider order")

	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
)

type ValidationCode string

const (
	UnknownProduct  ValidationCode = "unknown_product"
	InactiveProduct ValidationCode = "inactive_product"
	InvalidQuantity ValidationCode = "invalid_quantity"
	EmptyOrder      ValidationCode = "empty_order"
)

// ValidationError is a per-line pricing rejection. ProductID carries the
// offending id as the client submitted it.
type ValidationError struct {
	Code      ValidationCode
	ProductID string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case UnknownProduct:
		return fmt.Sprintf("unknown product: %s", e.ProductID)
	case InactiveProduct:
		return fmt.Sprintf("product is not available: %s", e.ProductID)
	case InvalidQuantity:
		return fmt.Sprintf("invalid quantity for product: %s", e.ProductID)
	case EmptyOrder:
		return "order has no items"
	}
	return string(e.Code)
}

// ShippingValidationError collects every offending shipping field so the
// client can display all problems at once.
type ShippingValidationError struct {
	Fields map[string]string
}

func (e *ShippingValidationError) Error() string {
	return fmt.Sprintf("invalid shipping info (%d fields)", len(e.Fields))
}

// ProviderRejectedError is a non-success response from the payment provider
// when minting an order. Details are for the server log only and must never
// be returned to the client.
type ProviderRejectedError struct {
	StatusCode int
	Details    string
}

func (e *ProviderRejectedError) Error() string {
	return fmt.Sprintf("payment provider rejected order creation (status %d)", e.StatusCode)
}

// CaptureFailedError means the provider refused to capture: already
// captured, voided, expired or declined. No order row may be written when
// this is returned.
type CaptureFailedError struct {
	Reason string
}

func (e *CaptureFailedError) Error() string {
	return fmt.Sprintf("payment capture failed: %s", e.Reason)
}
