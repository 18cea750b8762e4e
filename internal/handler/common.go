package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// respond wraps every salon API payload in a stable envelope.  Clients key
// off the success flag rather than bare status codes, so a 200 carrying
// success=false still reads as a failure.
type respond struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ok writes a success envelope.
func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, respond{Success: true, Message: message, Data: data})
}

// fail writes a failure envelope.  message is shown to the user; detail is
// the machine-facing error string and may be empty.
func fail(c echo.Context, status int, message string, detail ...string) error {
	r := respond{Success: false, Message: message}
	if len(detail) > 0 {
		r.Error = detail[0]
	}
	return c.JSON(status, r)
}

// fieldError mirrors the structured validation entries booking clients
// attach to individual form inputs.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// failValidation writes a 422 envelope carrying per-field failures.
func failValidation(c echo.Context, message string, fields map[string]string) error {
	list := make([]fieldError, 0, len(fields))
	for f, msg := range fields {
		list = append(list, fieldError{Field: f, Message: msg})
	}
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"success": false,
		"message": message,
		"errors":  list,
	})
}

// getUserID extracts the user_id set by the JWT middleware and converts it
// to uint64.  JWT numeric claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// unauthorized is the shared 401 body for handlers that need the user id.
func unauthorized(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "unauthorized")
}
