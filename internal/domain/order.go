package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// KnownOrderStatus reports whether s is one of the recognized order statuses.
// Transitions between known statuses are unconstrained; the admin panel may
// move an order from any status to any other.
func KnownOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CartLine is what the client submits at checkout: a product reference and a
// quantity, nothing more. Any price the client holds locally is display-only
// and never crosses this boundary.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// ValidatedOrderLine is a line with name and unit price resolved from the
// catalog at validation time. It is recomputed on every validation call and
// never trusted from a prior call.
type ValidatedOrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// ValidatedOrder is the server-computed, price-authoritative representation
// of a cart.
type ValidatedOrder struct {
	Lines []ValidatedOrderLine
	Total float64
}

type ShippingInfo struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,min=2"`
	Address string `json:"address" validate:"required,min=5"`
	City    string `json:"city" validate:"required,min=2"`
	Country string `json:"country" validate:"required,min=2"`
	Zip     string `json:"zip" validate:"required,min=3"`
}

// Order is written exactly once, at successful capture. Items, TotalAmount
// and ShippingAddress are immutable afterwards; only Status may change.
type Order struct {
	ID                uuid.UUID
	CustomerEmail     string
	TotalAmount       float64
	Items             []ValidatedOrderLine
	ShippingAddress   ShippingInfo
	Status            OrderStatus
	ProviderOrderID   string
	ProviderCaptureID string
	CreatedAt         time.Time
}

// Identity is the authenticated caller of a checkout or admin operation.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
