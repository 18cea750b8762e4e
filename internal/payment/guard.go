package payment

import (
	"strings"
	"sync"
	"time"
)

// Guard is a per-user payment attempt throttle plus a heuristic risk score.
// The attempt map lives only in memory for the lifetime of the process: it
// is a UX cooldown hint, NOT a security control.  It resets on restart and
// a determined caller can sidestep it entirely; the real enforcement
// (signature verification, gateway-side limits) happens elsewhere.
type Guard struct {
	mu          sync.Mutex
	attempts    map[uint64]*attemptRecord
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

type attemptRecord struct {
	count       int
	lastAttempt time.Time
}

const (
	defaultWindow      = 15 * time.Minute
	defaultMaxAttempts = 3
)

// NewGuard returns a guard with the default 15-minute window and a cap of
// three attempts.
func NewGuard() *Guard {
	return &Guard{
		attempts:    make(map[uint64]*attemptRecord),
		window:      defaultWindow,
		maxAttempts: defaultMaxAttempts,
		now:         time.Now,
	}
}

// CheckRateLimit reports whether the user may attempt a payment.  When the
// cooldown window has elapsed since the last attempt the record is dropped
// and the attempt is allowed; at the cap the remaining cooldown is returned.
func (g *Guard) CheckRateLimit(userID uint64) (allowed bool, remaining time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.attempts[userID]
	if !ok {
		return true, 0
	}
	elapsed := g.now().Sub(rec.lastAttempt)
	if elapsed >= g.window {
		delete(g.attempts, userID)
		return true, 0
	}
	if rec.count >= g.maxAttempts {
		return false, g.window - elapsed
	}
	return true, 0
}

// RecordAttempt bumps the user's attempt counter, creating the record on
// first use.
func (g *Guard) RecordAttempt(userID uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.attempts[userID]
	if !ok {
		rec = &attemptRecord{}
		g.attempts[userID] = rec
	}
	rec.count++
	rec.lastAttempt = g.now()
}

// ClearAttempts drops the user's record; called after a successful payment.
func (g *Guard) ClearAttempts(userID uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.attempts, userID)
}

// Attempts returns the user's current attempt count inside the window.
func (g *Guard) Attempts(userID uint64) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.attempts[userID]
	if !ok {
		return 0
	}
	return rec.count
}

// flaggedRegions are address substrings that add to the risk score.  Purely
// advisory, lowercased for matching.
var flaggedRegions = []string{"po box", "p.o. box", "test address"}

// RiskInput carries the signals RiskScore weighs.
type RiskInput struct {
	AmountPaise    int64         // payment amount in minor units
	Address        string        // free-text delivery/billing address
	RecentAttempts int           // attempts recorded inside the window
	AppointmentAge time.Duration // how long ago the appointment was created
}

// RiskScore computes a heuristic score in [0,100].  Higher means riskier.
// The weights are advisory; no payment is ever blocked on the score alone.
func RiskScore(in RiskInput) int {
	score := 0
	switch {
	case in.AmountPaise > 5000000: // above ₹50,000
		score += 40
	case in.AmountPaise > 1000000: // above ₹10,000
		score += 20
	}
	addr := strings.ToLower(in.Address)
	for _, region := range flaggedRegions {
		if strings.Contains(addr, region) {
			score += 25
			break
		}
	}
	if in.RecentAttempts > 1 {
		score += 15 * (in.RecentAttempts - 1)
	}
	if in.AppointmentAge > 24*time.Hour {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RequiresAdditionalVerification reports whether the score crosses the
// extra-verification threshold.  The only consequence is prompting more UI.
func RequiresAdditionalVerification(in RiskInput) bool {
	return RiskScore(in) > 50
}
