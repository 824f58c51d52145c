// Package payment creates payment intents against the Stripe REST API.
// Stripe is treated as an opaque provider: we send a price, we get back a
// client secret for the browser to complete the charge.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com/v1"

// Client talks to the Stripe payment-intents endpoint.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// Intent is the subset of a Stripe payment intent the API exposes to clients.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient builds a client with the account's secret key.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(secretKey, baseURL string) *Client {
	c := NewClient(secretKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// CreateIntent creates a payment intent for amountCents in the given
// currency and returns the client secret alongside the intent id.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("payment: STRIPE_SECRET_KEY is not configured")
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("payment: amount must be positive")
	}
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amountCents))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payment: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payment: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("payment: provider error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("payment: provider error: status %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("payment: unmarshal: %w", err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("payment: provider returned no client secret")
	}

	return &intent, nil
}
