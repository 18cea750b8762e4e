// Package payment integrates the Razorpay-style checkout used for
// membership purchases.  The server creates an order through the gateway's
// REST API, the customer pays inside the hosted checkout widget, and the
// widget's callback fields (payment id, order id, signature) come back to
// the verify endpoint where the signature is checked server-side.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Order is a payment order created at the gateway.  Amount is in minor
// currency units (paise).
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway talks to the payment provider's REST API using basic auth.
type Gateway struct {
	keyID      string
	keySecret  string
	apiURL     string
	httpClient *http.Client
}

// NewGateway builds a gateway client with the provider's production URL.
func NewGateway(keyID, keySecret string) *Gateway {
	return &Gateway{
		keyID:      keyID,
		keySecret:  keySecret,
		apiURL:     "https://api.razorpay.com/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGatewayWithURL is NewGateway pointed at a custom base URL, used by
// tests and sandbox environments.
func NewGatewayWithURL(keyID, keySecret, apiURL string) *Gateway {
	g := NewGateway(keyID, keySecret)
	g.apiURL = apiURL
	return g
}

// CreateOrder registers a new order with the gateway and returns it.  The
// receipt ties the order back to our membership purchase record.
func (g *Gateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error) {
	payload := map[string]any{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/orders", &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(g.keyID + ":" + g.keySecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway order create failed: %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the API secret, hex encoded.  This is the
// authoritative check; nothing client-side is trusted.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
