package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sol-storefront/internal/domain"
)

const SandboxBaseURL = "https://api-m.sandbox.paypal.com"

// Client speaks the PayPal REST v2 checkout API: an OAuth2
// client-credentials token, order creation, and order capture.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("paypal credentials not configured")
	}

	body := strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &domain.ProviderRejectedError{StatusCode: resp.StatusCode, Details: string(raw)}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

type money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type orderItem struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	UnitAmount money  `json:"unit_amount"`
}

type purchaseUnit struct {
	Amount struct {
		money
		Breakdown struct {
			ItemTotal money `json:"item_total"`
		} `json:"breakdown"`
	} `json:"amount"`
	Items    []orderItem `json:"items"`
	Shipping struct {
		Name struct {
			FullName string `json:"full_name"`
		} `json:"name"`
		Address struct {
			AddressLine1 string `json:"address_line_1"`
			AdminArea2   string `json:"admin_area_2"`
			PostalCode   string `json:"postal_code"`
			CountryCode  string `json:"country_code"`
		} `json:"address"`
	} `json:"shipping"`
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func usd(amount float64) money {
	return money{CurrencyCode: "USD", Value: strconv.FormatFloat(amount, 'f', 2, 64)}
}

func (c *Client) CreateOrder(ctx context.Context, order *domain.ValidatedOrder, shipping domain.ShippingInfo, countryCode string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	var unit purchaseUnit
	unit.Amount.money = usd(order.Total)
	unit.Amount.Breakdown.ItemTotal = usd(order.Total)
	for _, line := range order.Lines {
		unit.Items = append(unit.Items, orderItem{
			Name:       line.Name,
			Quantity:   strconv.Itoa(line.Quantity),
			UnitAmount: usd(line.UnitPrice),
		})
	}
	unit.Shipping.Name.FullName = shipping.Name
	unit.Shipping.Address.AddressLine1 = shipping.Address
	unit.Shipping.Address.AdminArea2 = shipping.City
	unit.Shipping.Address.PostalCode = shipping.Zip
	unit.Shipping.Address.CountryCode = countryCode

	payload, err := json.Marshal(createOrderRequest{
		Intent:        "CAPTURE",
		PurchaseUnits: []purchaseUnit{unit},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return "", &domain.ProviderRejectedError{StatusCode: resp.StatusCode, Details: string(raw)}
	}

	var created createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}

type captureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
				Amount money  `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &domain.CaptureFailedError{Reason: captureFailureReason(resp.StatusCode, raw)}
	}

	var captured captureResponse
	if err := json.NewDecoder(resp.Body).Decode(&captured); err != nil {
		return nil, err
	}
	if len(captured.PurchaseUnits) == 0 || len(captured.PurchaseUnits[0].Payments.Captures) == 0 {
		return nil, &domain.CaptureFailedError{Reason: "no capture in provider response"}
	}

	capture := captured.PurchaseUnits[0].Payments.Captures[0]
	amount, err := strconv.ParseFloat(capture.Amount.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("parse captured amount %q: %w", capture.Amount.Value, err)
	}
	return &CaptureResult{
		CaptureID: capture.ID,
		Status:    capture.Status,
		Amount:    amount,
		Currency:  capture.Amount.CurrencyCode,
	}, nil
}

// captureFailureReason extracts the provider issue code when the error body
// is parseable, without ever forwarding the raw body to a client.
func captureFailureReason(status int, raw []byte) string {
	var parsed struct {
		Name    string `json:"name"`
		Details []struct {
			Issue string `json:"issue"`
		} `json:"details"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if len(parsed.Details) > 0 && parsed.Details[0].Issue != "" {
			return parsed.Details[0].Issue
		}
		if parsed.Name != "" {
			return parsed.Name
		}
	}
	return fmt.Sprintf("provider returned status %d", status)
}
