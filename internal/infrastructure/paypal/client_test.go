package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-storefront/internal/domain"
)

func fakeProvider(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "client-id", user)
			assert.Equal(t, "client-secret", pass)
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
			return
		}
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "client-id", "client-secret")
}

func TestCreateOrderSendsValidatedTotal(t *testing.T) {
	var received map[string]any
	client := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "PAYPAL-ORDER-1", "status": "CREATED"})
	})

	order := &domain.ValidatedOrder{
		Lines: []domain.ValidatedOrderLine{
			{ProductID: uuid.New(), Name: "Hoodie", UnitPrice: 18.50, Quantity: 2},
		},
		Total: 37.00,
	}
	shipping := domain.ShippingInfo{
		Name: "Buyer Name", Address: "1 Main St", City: "Springfield", Zip: "12345", Country: "United States",
	}

	orderID, err := client.CreateOrder(context.Background(), order, shipping, "US")
	require.NoError(t, err)
	assert.Equal(t, "PAYPAL-ORDER-1", orderID)

	assert.Equal(t, "CAPTURE", received["intent"])
	units := received["purchase_units"].([]any)
	require.Len(t, units, 1)
	unit := units[0].(map[string]any)
	amount := unit["amount"].(map[string]any)
	assert.Equal(t, "37.00", amount["value"])
	assert.Equal(t, "USD", amount["currency_code"])
	items := unit["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "18.50", item["unit_amount"].(map[string]any)["value"])
	assert.Equal(t, "2", item["quantity"])
	address := unit["shipping"].(map[string]any)["address"].(map[string]any)
	assert.Equal(t, "US", address["country_code"])
}

func TestCreateOrderRejected(t *testing.T) {
	client := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	})

	_, err := client.CreateOrder(context.Background(), &domain.ValidatedOrder{Total: 10}, domain.ShippingInfo{}, "US")

	var perr *domain.ProviderRejectedError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
}

func TestCaptureOrderParsesCapture(t *testing.T) {
	client := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders/PAYPAL-ORDER-1/capture", r.URL.Path)
		w.Write([]byte(`{
			"id": "PAYPAL-ORDER-1",
			"status": "COMPLETED",
			"purchase_units": [{
				"payments": {"captures": [{
					"id": "CAP-9",
					"status": "COMPLETED",
					"amount": {"currency_code": "USD", "value": "37.00"}
				}]}
			}]
		}`))
	})

	result, err := client.CaptureOrder(context.Background(), "PAYPAL-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "CAP-9", result.CaptureID)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, 37.00, result.Amount)
	assert.Equal(t, "USD", result.Currency)
}

func TestCaptureOrderAlreadyCaptured(t *testing.T) {
	client := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"ORDER_ALREADY_CAPTURED"}]}`))
	})

	_, err := client.CaptureOrder(context.Background(), "PAYPAL-ORDER-1")

	var cerr *domain.CaptureFailedError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "ORDER_ALREADY_CAPTURED", cerr.Reason)
}

func TestMissingCredentials(t *testing.T) {
	client := NewClient("http://localhost:1", "", "")

	_, err := client.CaptureOrder(context.Background(), "X")
	assert.Error(t, err)
}

func TestMockGatewaySingleCapture(t *testing.T) {
	g := NewMockGateway()
	order := &domain.ValidatedOrder{Total: 12.00}

	id, err := g.CreateOrder(context.Background(), order, domain.ShippingInfo{}, "US")
	require.NoError(t, err)

	first, err := g.CaptureOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 12.00, first.Amount)

	_, err = g.CaptureOrder(context.Background(), id)
	var cerr *domain.CaptureFailedError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "ORDER_ALREADY_CAPTURED", cerr.Reason)
}
