package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOkEnvelope(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")
	require.NoError(t, ok(c, http.StatusOK, "fetched", echo.Map{"id": 7}))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "fetched", body["message"])
	assert.NotNil(t, body["data"])
	// omitempty keeps the error field out of success envelopes
	_, hasErr := body["error"]
	assert.False(t, hasErr)
}

func TestFailEnvelopeWithDetail(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")
	require.NoError(t, fail(c, http.StatusConflict, "time slot already booked", "slot held by another user"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "time slot already booked", body["message"])
	assert.Equal(t, "slot held by another user", body["error"])
}

func TestFailValidationShape(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/")
	require.NoError(t, failValidation(c, "validation failed", map[string]string{
		"date": "date is required",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "date", body.Errors[0].Field)
	assert.Equal(t, "date is required", body.Errors[0].Message)
}

func TestGetUserIDClaimTypes(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"float64 claim", float64(42), 42},
		{"string claim", "42", 42},
		{"uint64 claim", uint64(42), 42},
		{"int claim", 42, 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/")
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	c, _ := newTestContext(http.MethodGet, "/")
	c.Set("user_id", []byte("nope"))
	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestPathID(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("15")
	id, err := pathID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), id)

	for _, bad := range []string{"", "0", "abc", "-3"} {
		c, _ := newTestContext(http.MethodGet, "/")
		c.SetParamNames("id")
		c.SetParamValues(bad)
		_, err := pathID(c, "id")
		assert.Error(t, err, "value %q", bad)
	}
}

func TestQueryHelpers(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/?min_price=10.5&page=3&bad=x")

	f := queryFloat(c, "min_price")
	require.NotNil(t, f)
	assert.Equal(t, 10.5, *f)
	assert.Nil(t, queryFloat(c, "missing"))
	assert.Nil(t, queryFloat(c, "bad"))

	n := queryInt(c, "page")
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)
	assert.Nil(t, queryInt(c, "bad"))

	assert.Equal(t, 3, queryIntDefault(c, "page", 1))
	assert.Equal(t, 20, queryIntDefault(c, "page_size", 20))
}
