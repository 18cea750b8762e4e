package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 129900, body["amount"])
		assert.Equal(t, "INR", body["currency"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{
			ID: "order_abc", Amount: 129900, Currency: "INR",
			Receipt: body["receipt"].(string), Status: "created",
		})
	}))
	defer srv.Close()

	g := NewGatewayWithURL("key_test", "secret_test", srv.URL)
	order, err := g.CreateOrder(context.Background(), 129900, "INR", "rcpt-42")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, "rcpt-42", order.Receipt)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	g := NewGatewayWithURL("k", "s", srv.URL)
	_, err := g.CreateOrder(context.Background(), 100, "INR", "r")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestVerifySignature(t *testing.T) {
	secret := "secret_test"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_abc|pay_xyz"))
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifySignature("order_abc", "pay_xyz", sig, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", sig, "other-secret"))
	assert.False(t, VerifySignature("order_abc", "pay_other", sig, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "deadbeef", secret))
}
