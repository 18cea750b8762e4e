package apiclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyValidationErrors(t *testing.T) {
	err := Classify(&APIError{
		StatusCode: 400,
		Message:    "validation failed",
		Errors:     []FieldError{{Field: "email", Message: "email is required"}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.FieldErrors, 1)
	assert.Equal(t, "email", ve.FieldErrors[0].Field)
	assert.False(t, IsRetryable(err))
}

func TestClassifyBookingCodes(t *testing.T) {
	cases := []struct {
		name      string
		in        *APIError
		code      string
		field     string
		retryable bool
	}{
		{"conflict", &APIError{StatusCode: 409, Message: "slot already booked"}, CodeBookingConflict, "", false},
		{"stylist", &APIError{StatusCode: 400, Message: "stylist unavailable on that date"}, CodeStylistUnavailable, "stylistId", false},
		{"service", &APIError{StatusCode: 400, Message: "service not available at home"}, CodeServiceUnavailable, "serviceId", false},
		{"slot", &APIError{StatusCode: 400, Message: "time slot no longer open"}, CodeTimeSlotUnavailable, "timeSlot", true},
		{"ratelimit", &APIError{StatusCode: 429, Message: "rate limit exceeded"}, CodeRateLimited, "", true},
		{"server", &APIError{StatusCode: 503, Message: "upstream exploded"}, CodeServerError, "", true},
		{"fallback", &APIError{StatusCode: 400, Message: "something else"}, CodeBookingError, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Classify(tc.in)
			var be *BookingError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tc.code, be.Code)
			assert.Equal(t, tc.field, be.Field)
			assert.Equal(t, tc.retryable, IsRetryable(err))
		})
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	// An HTTP 500 whose message mentions a conflict classifies as a
	// conflict, not a server error: the rules run in a fixed order.
	err := Classify(&APIError{StatusCode: 500, Message: "appointment already booked"})
	var be *BookingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeBookingConflict, be.Code)
	assert.False(t, IsRetryable(err))
}

func TestClassifyPlainErrors(t *testing.T) {
	err := Classify(errors.New("dial tcp: connection refused"))
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.True(t, IsRetryable(err))

	err = Classify(errors.New("something odd happened"))
	var be *BookingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeBookingError, be.Code)
}

func TestClassifyIdempotent(t *testing.T) {
	orig := Classify(&APIError{StatusCode: 429, Message: "rate limit exceeded"})
	again := Classify(orig)
	assert.Same(t, orig, again)
}

func TestIsRetryablePlainErrorSubstrings(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("request timeout")))
	assert.True(t, IsRetryable(errors.New("network unreachable")))
	assert.True(t, IsRetryable(errors.New("connection reset by peer")))
	// Case-sensitive: "Timeout" does not match.
	assert.False(t, IsRetryable(errors.New("Timeout while waiting")))
	assert.False(t, IsRetryable(errors.New("bad input")))
	assert.False(t, IsRetryable(nil))
}

func TestUserMessageLookup(t *testing.T) {
	err := Classify(&APIError{StatusCode: 429, Message: "rate limit exceeded"})
	assert.Equal(t, userMessages[CodeRateLimited], UserMessage(err))

	assert.Equal(t, "Connection problem. Please check your internet and try again.",
		UserMessage(&NetworkError{Message: "dial tcp: timeout"}))

	// Validation surfaces the first field error.
	ve := &ValidationError{Message: "validation failed", FieldErrors: []FieldError{{Field: "phone", Message: "phone is invalid"}}}
	assert.Equal(t, "phone is invalid", UserMessage(ve))

	// Unknown shapes fall back to the raw message.
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
