package paypal

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"sol-storefront/internal/domain"
)

type mockOrderState string

const (
	mockCreated  mockOrderState = "CREATED"
	mockCaptured mockOrderState = "CAPTURED"
)

type mockOrder struct {
	state     mockOrderState
	amount    float64
	captureID string
}

// MockGateway is an in-memory stand-in for PayPal used by the simulator and
// tests. It enforces the provider-side single-capture semantics the real
// gateway provides: capturing an already-captured order fails.
type MockGateway struct {
	mu     sync.Mutex
	orders map[string]*mockOrder

	// DeclineCapture makes every capture fail until cleared.
	DeclineCapture bool
	// CaptureSkew is added to the reported captured amount, to exercise
	// the reconciliation warning path.
	CaptureSkew float64
}

func NewMockGateway() *MockGateway {
	return &MockGateway{orders: make(map[string]*mockOrder)}
}

func (g *MockGateway) CreateOrder(ctx context.Context, order *domain.ValidatedOrder, shipping domain.ShippingInfo, countryCode string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("MOCK-%s", uuid.New())
	g.orders[id] = &mockOrder{state: mockCreated, amount: order.Total}
	return id, nil
}

func (g *MockGateway) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ord, ok := g.orders[orderID]
	if !ok {
		return nil, &domain.CaptureFailedError{Reason: "RESOURCE_NOT_FOUND"}
	}
	if ord.state == mockCaptured {
		return nil, &domain.CaptureFailedError{Reason: "ORDER_ALREADY_CAPTURED"}
	}
	if g.DeclineCapture {
		return nil, &domain.CaptureFailedError{Reason: "INSTRUMENT_DECLINED"}
	}

	ord.state = mockCaptured
	ord.captureID = fmt.Sprintf("CAP-%s", uuid.New())
	amount := math.Round((ord.amount+g.CaptureSkew)*100) / 100
	return &CaptureResult{
		CaptureID: ord.captureID,
		Status:    "COMPLETED",
		Amount:    amount,
		Currency:  "USD",
	}, nil
}

// CreatedAmount reports the amount an order was minted for; the simulator
// uses it to show that tampered client prices never reach the provider.
func (g *MockGateway) CreatedAmount(orderID string) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ord, ok := g.orders[orderID]
	if !ok {
		return 0, false
	}
	return ord.amount, true
}
