package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// refreshPath is the fixed endpoint used to exchange the refresh token for a
// new access token.  It never rotates the refresh token.
const refreshPath = "/v1/auth/refresh-access"

const jsonContentType = "application/json"

// Client issues requests against the salon API.  Every call attaches the
// bearer token from its TokenStore, performs at most one silent
// refresh-and-replay on a 401, and retries any failure with linear backoff
// up to maxRetries extra attempts.  The transport retry is deliberately
// blind; semantic retry decisions belong to WithRetry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	maxRetries int
	retryDelay time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTransportRetry overrides the blind transport retry policy.  maxRetries
// is the number of attempts after the first; delay is the backoff unit
// (sleep delay*1, delay*2, ... between attempts).
func WithTransportRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// NewClient builds a client for the API at baseURL.  The TokenStore is
// required; use NewMemoryTokenStore for anonymous sessions.
func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		maxRetries: 3,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the API's uniform response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// errorBody is what error responses look like; Errors carries structured
// validation failures when present.
type errorBody struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Errors  []FieldError `json:"errors"`
}

// Response is the parsed result of a successful call.  Data is set for JSON
// envelope responses, Text for everything else.
type Response struct {
	StatusCode int
	Message    string
	Data       json.RawMessage
	Text       string
}

// Do sends a JSON request and parses the response.  body may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = b
		contentType = jsonContentType
	}
	return c.doWithRetry(ctx, method, path, payload, contentType)
}

// Upload sends a pre-built multipart form payload.  contentType must come
// from multipart.Writer.FormDataContentType() so the boundary survives; the
// client never forces a JSON content type on it.
func (c *Client) Upload(ctx context.Context, path string, payload []byte, contentType string) (*Response, error) {
	return c.doWithRetry(ctx, http.MethodPost, path, payload, contentType)
}

// doWithRetry runs the whole fetch-plus-401-handling flow up to
// maxRetries+1 times.  The refreshed flag lives here, outside the loop: a
// token refresh happens at most once per call no matter how many retry
// iterations follow, and the replay does not consume a retry attempt.
func (c *Client) doWithRetry(ctx context.Context, method, path string, payload []byte, contentType string) (*Response, error) {
	refreshed := false
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.retryDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}
		resp, err := c.doOnce(ctx, method, path, payload, contentType, &refreshed)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// doOnce performs a single attempt: execute, handle a first 401 with a
// refresh and replay, then parse.
func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, contentType string, refreshed *bool) (*Response, error) {
	status, header, body, err := c.execute(ctx, method, path, payload, contentType)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && !*refreshed {
		*refreshed = true
		token, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			// Dead session: drop the tokens and let the original 401 surface.
			c.tokens.Clear()
		} else {
			c.tokens.SetAccessToken(token)
			status, header, body, err = c.execute(ctx, method, path, payload, contentType)
			if err != nil {
				return nil, err
			}
		}
	}

	if status < 200 || status >= 300 {
		return nil, parseErrorBody(status, body)
	}

	if strings.Contains(header.Get("Content-Type"), jsonContentType) {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		// success:false on a 2xx is still an application failure.
		if !env.Success {
			msg := env.Message
			if msg == "" {
				msg = env.Error
			}
			return nil, &APIError{StatusCode: status, Message: msg}
		}
		return &Response{StatusCode: status, Message: env.Message, Data: env.Data}, nil
	}
	return &Response{StatusCode: status, Text: string(body)}, nil
}

// execute builds and sends one HTTP request and reads the full body.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte, contentType string) (int, http.Header, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token.  No retry loop here: the caller already sits inside one.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return "", fmt.Errorf("no refresh token")
	}
	payload, err := json.Marshal(map[string]string{"refresh_token": refresh})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", jsonContentType)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}
	var out struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.Access.Token == "" {
		return "", fmt.Errorf("refresh response missing token")
	}
	return out.Access.Token, nil
}

// parseErrorBody turns a non-2xx body into an *APIError.  The body is
// JSON-decoded when possible; otherwise the raw text becomes the message.
func parseErrorBody(status int, body []byte) error {
	eb := errorBody{}
	if err := json.Unmarshal(body, &eb); err != nil {
		eb.Message = strings.TrimSpace(string(body))
	}
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &APIError{StatusCode: status, Message: msg, Errors: eb.Errors}
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// GetJSON performs a GET and decodes the envelope's data field into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON performs a POST with a JSON body and decodes data into out; out
// may be nil when the caller only cares about success.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON performs a PUT with a JSON body and decodes data into out.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Data, out)
}
