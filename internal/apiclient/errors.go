// Package apiclient is a typed Go client for the salon REST API.  It layers
// two independent retry policies: the transport in Client retries every
// failure up to a bounded cap (cheap, blind), while WithRetry retries only
// failures the taxonomy in this file classifies as retryable.  Callers that
// wrap Client calls in WithRetry get both layers; that nesting is
// intentional and each layer keeps its own configuration.
package apiclient

import (
	"errors"
	"strings"
)

// Booking error codes produced by Classify.
const (
	CodeBookingConflict     = "BOOKING_CONFLICT"
	CodeStylistUnavailable  = "STYLIST_UNAVAILABLE"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeTimeSlotUnavailable = "TIME_SLOT_UNAVAILABLE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeServerError         = "SERVER_ERROR"
	CodeBookingError        = "BOOKING_ERROR"
)

// FieldError is one structured validation failure from the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the raw, unclassified failure surfaced by the transport for a
// non-2xx response or an application-level (success:false) failure.  Feed it
// to Classify to obtain one of the typed kinds below.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string { return e.Message }

// NetworkError reports a connectivity-level failure (dial, timeout, broken
// connection).  Network errors are always worth retrying.
type NetworkError struct {
	Message string
}

func (e *NetworkError) Error() string { return e.Message }

// ValidationError reports structured field errors returned by the API.  The
// user has to correct their input, so retrying never helps.
type ValidationError struct {
	Message     string
	FieldErrors []FieldError
}

func (e *ValidationError) Error() string { return e.Message }

// BookingError is a domain failure with a code from the closed set above.
// Whether it is retryable depends on the code: a slot that just got taken
// may free up again, a stylist on leave will not.
type BookingError struct {
	Message   string
	Code      string
	Field     string
	Retryable bool
}

func (e *BookingError) Error() string { return e.Message }

// Classify maps an arbitrary error from the transport to exactly one of the
// typed kinds.  Classification rules run in a fixed order and the first
// match wins, so an HTTP 500 whose message mentions "already booked" comes
// out as BOOKING_CONFLICT, not SERVER_ERROR.  Already-classified errors pass
// through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var (
		ne *NetworkError
		ve *ValidationError
		be *BookingError
	)
	if errors.As(err, &ne) || errors.As(err, &ve) || errors.As(err, &be) {
		return err
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		// No structured response at all: a connectivity-looking message
		// becomes a NetworkError, anything else a generic booking failure.
		msg := err.Error()
		if containsAny(strings.ToLower(msg), "timeout", "network", "connection", "refused", "no such host") {
			return &NetworkError{Message: msg}
		}
		return &BookingError{Message: msg, Code: CodeBookingError}
	}

	if len(apiErr.Errors) > 0 {
		return &ValidationError{Message: apiErr.Message, FieldErrors: apiErr.Errors}
	}

	msg := strings.ToLower(apiErr.Message)
	switch {
	case containsAny(msg, "already booked", "conflict"):
		return &BookingError{Message: apiErr.Message, Code: CodeBookingConflict}
	case strings.Contains(msg, "stylist") && containsAny(msg, "unavailable", "not available"):
		return &BookingError{Message: apiErr.Message, Code: CodeStylistUnavailable, Field: "stylistId"}
	case strings.Contains(msg, "service") && containsAny(msg, "unavailable", "not available"):
		return &BookingError{Message: apiErr.Message, Code: CodeServiceUnavailable, Field: "serviceId"}
	case containsAny(msg, "time slot", "slot"):
		return &BookingError{Message: apiErr.Message, Code: CodeTimeSlotUnavailable, Field: "timeSlot", Retryable: true}
	case apiErr.StatusCode == 429:
		return &BookingError{Message: apiErr.Message, Code: CodeRateLimited, Retryable: true}
	case apiErr.StatusCode >= 500:
		return &BookingError{Message: apiErr.Message, Code: CodeServerError, Retryable: true}
	default:
		return &BookingError{Message: apiErr.Message, Code: CodeBookingError}
	}
}

// IsRetryable reports whether a failed operation is worth repeating.  Typed
// kinds carry their own answer; for plain errors the message is sniffed for
// the case-sensitive substrings "timeout", "network" and "connection".
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false
	}
	var be *BookingError
	if errors.As(err, &be) {
		return be.Retryable
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "connection")
}

// userMessages maps booking codes to the sentence shown to customers.
var userMessages = map[string]string{
	CodeBookingConflict:     "This time slot was just booked by someone else. Please pick another slot.",
	CodeStylistUnavailable:  "The selected stylist is not available at that time. Please choose another stylist.",
	CodeServiceUnavailable:  "One of the selected services is currently unavailable.",
	CodeTimeSlotUnavailable: "That time slot is no longer available. Please try a different time.",
	CodeRateLimited:         "Too many requests. Please wait a moment and try again.",
	CodeServerError:         "Something went wrong on our side. Please try again shortly.",
	CodeBookingError:        "We could not complete your booking. Please try again.",
}

// UserMessage returns a human-readable sentence for the classified error,
// falling back to the raw message when no fixed mapping exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Connection problem. Please check your internet and try again."
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		if len(ve.FieldErrors) > 0 {
			return ve.FieldErrors[0].Message
		}
		return ve.Message
	}
	var be *BookingError
	if errors.As(err, &be) {
		if msg, ok := userMessages[be.Code]; ok {
			return msg
		}
		return be.Message
	}
	return err.Error()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
