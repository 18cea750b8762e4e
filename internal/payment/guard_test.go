package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guardAt returns a guard whose clock the test controls.
func guardAt(start time.Time) (*Guard, *time.Time) {
	g := NewGuard()
	now := start
	g.now = func() time.Time { return now }
	return g, &now
}

func TestCheckRateLimitFirstAttemptAllowed(t *testing.T) {
	g, _ := guardAt(time.Now())
	allowed, remaining := g.CheckRateLimit(1)
	assert.True(t, allowed)
	assert.Zero(t, remaining)
}

func TestCheckRateLimitCapsAtThree(t *testing.T) {
	g, _ := guardAt(time.Now())
	for i := 0; i < 3; i++ {
		allowed, _ := g.CheckRateLimit(1)
		require.True(t, allowed, "attempt %d", i+1)
		g.RecordAttempt(1)
	}
	allowed, remaining := g.CheckRateLimit(1)
	assert.False(t, allowed)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 15*time.Minute)
}

func TestCheckRateLimitWindowElapses(t *testing.T) {
	g, now := guardAt(time.Now())
	for i := 0; i < 3; i++ {
		g.RecordAttempt(1)
	}
	allowed, _ := g.CheckRateLimit(1)
	require.False(t, allowed)

	// After the cooldown the record is dropped and attempts start fresh.
	*now = now.Add(15 * time.Minute)
	allowed, _ = g.CheckRateLimit(1)
	assert.True(t, allowed)
	assert.Zero(t, g.Attempts(1))
}

func TestClearAttemptsOnSuccess(t *testing.T) {
	g, _ := guardAt(time.Now())
	g.RecordAttempt(1)
	g.RecordAttempt(1)
	g.ClearAttempts(1)
	assert.Zero(t, g.Attempts(1))
	allowed, _ := g.CheckRateLimit(1)
	assert.True(t, allowed)
}

func TestRateLimitIsPerUser(t *testing.T) {
	g, _ := guardAt(time.Now())
	for i := 0; i < 3; i++ {
		g.RecordAttempt(1)
	}
	allowed, _ := g.CheckRateLimit(2)
	assert.True(t, allowed)
}

func TestRiskScoreWeights(t *testing.T) {
	assert.Zero(t, RiskScore(RiskInput{AmountPaise: 50000}))

	// High amount alone stays under the verification threshold.
	in := RiskInput{AmountPaise: 6000000}
	assert.Equal(t, 40, RiskScore(in))
	assert.False(t, RequiresAdditionalVerification(in))

	// Stacked signals cross it.
	in.RecentAttempts = 2
	assert.Equal(t, 55, RiskScore(in))
	assert.True(t, RequiresAdditionalVerification(in))

	// Flagged address region.
	assert.Equal(t, 25, RiskScore(RiskInput{Address: "PO Box 1234, Nowhere"}))
}

func TestRiskScoreClipped(t *testing.T) {
	in := RiskInput{
		AmountPaise:    9000000,
		Address:        "po box 99",
		RecentAttempts: 10,
		AppointmentAge: 48 * time.Hour,
	}
	assert.Equal(t, 100, RiskScore(in))
}

func TestSanityCheck(t *testing.T) {
	now := time.Now()
	ok := Result{
		PaymentID:  "pay_1",
		OrderID:    "order_1",
		Signature:  "sig",
		Amount:     129900,
		ReceivedAt: now,
	}
	assert.NoError(t, SanityCheck(ok, 129900, now))

	missing := ok
	missing.Signature = ""
	assert.ErrorIs(t, SanityCheck(missing, 129900, now), ErrIncomplete)

	stale := ok
	stale.ReceivedAt = now.Add(-time.Hour)
	assert.ErrorIs(t, SanityCheck(stale, 129900, now), ErrStaleResult)

	wrongAmount := ok
	wrongAmount.Amount = 100
	assert.ErrorIs(t, SanityCheck(wrongAmount, 129900, now), ErrAmountMismatch)
}
