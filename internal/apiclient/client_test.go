package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastClient builds a client against the test server with millisecond
// backoff so retry paths run quickly.
func fastClient(srv *httptest.Server, tokens TokenStore, maxRetries int) *Client {
	return NewClient(srv.URL, tokens,
		WithHTTPClient(srv.Client()),
		WithTransportRetry(maxRetries, time.Millisecond))
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "ok", nil)
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("tok-123", ""), 0)
	_, err := c.Do(context.Background(), http.MethodGet, "/v1/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoParsesEnvelopeData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{"id": 42})
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("", ""), 0)
	var out struct {
		ID int `json:"id"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/v1/thing", &out))
	assert.Equal(t, 42, out.ID)
}

func TestDoTreatsSuccessFalseAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, "slot already booked", nil)
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("", ""), 0)
	_, err := c.Do(context.Background(), http.MethodPost, "/v1/appointments", map[string]int{"x": 1})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "slot already booked", apiErr.Message)
}

func TestDoReturnsRawTextForNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("", ""), 0)
	resp, err := c.Do(context.Background(), http.MethodGet, "/healthz", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Empty(t, resp.Data)
}

func TestDoRefreshAndReplayOnce(t *testing.T) {
	var refreshCalls, apiCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-abc", body.RefreshToken)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access": map[string]any{"token": "fresh-token"},
		})
	})
	mux.HandleFunc("/v1/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&apiCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
			return
		}
		writeEnvelope(w, http.StatusOK, true, "ok", map[string]string{"name": "asha"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := NewMemoryTokenStore("stale-token", "refresh-abc")
	c := fastClient(srv, tokens, 3)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/v1/me", &out))
	assert.Equal(t, "asha", out.Name)
	assert.Equal(t, "fresh-token", tokens.AccessToken())
	// Even with maxRetries > 1 the refresh endpoint is hit exactly once and
	// the replay does not consume a retry attempt: one 401 + one replay.
	assert.EqualValues(t, 1, refreshCalls)
	assert.EqualValues(t, 2, apiCalls)
}

func TestDoRefreshFailureClearsTokensAndPropagates401(t *testing.T) {
	var refreshCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/v1/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := NewMemoryTokenStore("stale-token", "refresh-abc")
	c := fastClient(srv, tokens, 2)

	_, err := c.Do(context.Background(), http.MethodGet, "/v1/me", nil)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Empty(t, tokens.AccessToken())
	// One-shot per call: subsequent retry attempts see the flag already set.
	assert.EqualValues(t, 1, refreshCalls)
}

func TestDoRetriesTransientFailures(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		if n < 3 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "temporary glitch"})
			return
		}
		writeEnvelope(w, http.StatusOK, true, "ok", nil)
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("", ""), 3)
	_, err := c.Do(context.Background(), http.MethodGet, "/v1/services", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls)
}

func TestDoRetriesEveryFailureKind(t *testing.T) {
	// The transport retry is blind: even a 400, which WithRetry would never
	// repeat, is retried up to the cap and the last error propagates.
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("", ""), 2)
	_, err := c.Do(context.Background(), http.MethodGet, "/v1/services", nil)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	// Non-JSON error bodies fall back to the raw text as the message.
	assert.Equal(t, "bad request", apiErr.Message)
	assert.EqualValues(t, 3, calls)
}

func TestUploadKeepsMultipartContentType(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		writeEnvelope(w, http.StatusCreated, true, "uploaded", nil)
	}))
	defer srv.Close()

	c := fastClient(srv, NewMemoryTokenStore("", ""), 0)
	contentType := "multipart/form-data; boundary=xyz"
	_, err := c.Upload(context.Background(), "/v1/admin/gallery", []byte("--xyz--"), contentType)
	require.NoError(t, err)
	assert.Equal(t, contentType, gotType)
}
