package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandaladignite/enlivesalon/internal/config"
	"github.com/mandaladignite/enlivesalon/internal/utils"
)

const testSecret = "test-secret"

func invoke(mw echo.MiddlewareFunc, req *http.Request, setup func(echo.Context)) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	reached := false
	_ = mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, reached
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, RoleCustomer, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser, gotRole any
	err = JWTAuth(testSecret)(func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	// numeric claims come back as float64
	assert.Equal(t, float64(7), gotUser)
	assert.Equal(t, RoleCustomer, gotRole)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, reached := invoke(JWTAuth(testSecret), req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec, reached = invoke(JWTAuth(testSecret), req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// token signed with a different secret
	tok, err := utils.NewAccessToken("other-secret", 7, RoleCustomer, 15)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec, reached = invoke(JWTAuth(testSecret), req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec, reached := invoke(RequireRole(RoleAdmin), req, func(c echo.Context) {
		c.Set("role", RoleAdmin)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	rec, reached = invoke(RequireRole(RoleAdmin), req, func(c echo.Context) {
		c.Set("role", RoleCustomer)
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// no role in context at all
	rec, reached = invoke(RequireRole(RoleAdmin), req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestUserIDFallsBackToGuest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "guest", userID(c))

	c.Set("user_id", float64(42))
	assert.Equal(t, "42", userID(c))

	c.Set("user_id", "abc")
	assert.Equal(t, "abc", userID(c))
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"success":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncatedInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0})
	assert.False(t, ok)

	// header length pointing past the end of the buffer
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'})
	assert.False(t, ok)
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/services")
	c.Set("user_id", float64(5))

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	assert.Equal(t, "rl:user:5", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:GET /v1/services", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip_user_route"
	assert.Equal(t, "rl:ip:10.0.0.1:user:5:route:GET /v1/services", buildRateKey(cfg, c))
}

func TestCacheKeyStableAcrossIdenticalRequests(t *testing.T) {
	e := echo.New()
	mk := func(q string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/services"+q, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/services")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, mk("?page=1"))
	b := cacheKeyFrom(cfg, mk("?page=1"))
	other := cacheKeyFrom(cfg, mk("?page=2"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
}
