package payment

import (
	"errors"
	"time"
)

// Result is the checkout widget's callback payload as echoed back by the
// customer's browser.
type Result struct {
	PaymentID  string    `json:"razorpay_payment_id"`
	OrderID    string    `json:"razorpay_order_id"`
	Signature  string    `json:"razorpay_signature"`
	Amount     int64     `json:"amount"`
	ReceivedAt time.Time `json:"received_at"`
}

// maxResultAge bounds how stale a callback may be before the sanity check
// rejects it.
const maxResultAge = 10 * time.Minute

var (
	ErrStaleResult    = errors.New("payment result is stale")
	ErrAmountMismatch = errors.New("payment amount does not match order")
	ErrIncomplete     = errors.New("payment result is missing fields")
)

// SanityCheck runs the cheap deterministic checks over a checkout result
// before the signature is verified: all fields present, the timestamp
// fresh, and the amount matching the order.  It is an early rejection for
// obviously broken callbacks, not a substitute for VerifySignature.
func SanityCheck(res Result, expectedAmount int64, now time.Time) error {
	if res.PaymentID == "" || res.OrderID == "" || res.Signature == "" {
		return ErrIncomplete
	}
	if !res.ReceivedAt.IsZero() && now.Sub(res.ReceivedAt) > maxResultAge {
		return ErrStaleResult
	}
	if res.Amount != 0 && res.Amount != expectedAmount {
		return ErrAmountMismatch
	}
	return nil
}
