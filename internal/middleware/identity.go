package middleware

// identity.go holds helpers shared by the rate limit and cache middleware.
// userID resolves the request's user identity for keying; anonymous
// requests key as "guest".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the context values set by JWTAuth.
// The sub claim decodes as float64 from JSON numbers, so both numeric and
// string forms are handled.
func userID(c echo.Context) string {
	v := c.Get("user_id")
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%.0f", id)
	case uint64:
		return fmt.Sprintf("%d", id)
	}
	return "guest"
}
