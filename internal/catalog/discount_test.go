package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tp(t time.Time) *time.Time { return &t }

func TestEffectivePriceNoDiscount(t *testing.T) {
	now := time.Now()
	svc := Service{Price: 500}
	assert.Equal(t, 500.0, EffectivePrice(svc, now))
	assert.False(t, IsDiscountActive(svc, now))
}

func TestEffectivePriceInactiveDiscount(t *testing.T) {
	now := time.Now()
	svc := Service{Price: 1000, Discount: &Discount{Percentage: 20, IsActive: false}}
	assert.Equal(t, 1000.0, EffectivePrice(svc, now))
}

func TestEffectivePriceActiveDiscount(t *testing.T) {
	now := time.Now()
	svc := Service{Price: 1000, Discount: &Discount{Percentage: 20, IsActive: true}}
	assert.Equal(t, 800.0, EffectivePrice(svc, now))
	assert.True(t, IsDiscountActive(svc, now))
}

func TestEffectivePriceValidityWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	d := &Discount{
		Percentage: 50,
		IsActive:   true,
		ValidFrom:  tp(now.Add(-24 * time.Hour)),
		ValidUntil: tp(now.Add(24 * time.Hour)),
	}
	svc := Service{Price: 200, Discount: d}
	assert.Equal(t, 100.0, EffectivePrice(svc, now))

	// Outside the window in either direction the list price applies.
	assert.Equal(t, 200.0, EffectivePrice(svc, now.Add(-48*time.Hour)))
	assert.Equal(t, 200.0, EffectivePrice(svc, now.Add(48*time.Hour)))

	// The bounds themselves are inclusive.
	assert.Equal(t, 100.0, EffectivePrice(svc, *d.ValidFrom))
	assert.Equal(t, 100.0, EffectivePrice(svc, *d.ValidUntil))
}

func TestEffectivePriceOpenBounds(t *testing.T) {
	now := time.Now()
	svc := Service{Price: 100, Discount: &Discount{Percentage: 10, IsActive: true}}
	assert.Equal(t, 90.0, EffectivePrice(svc, now))
}

func TestEffectivePriceNeverNegative(t *testing.T) {
	now := time.Now()
	svc := Service{Price: 100, Discount: &Discount{Percentage: 150, IsActive: true}}
	assert.Equal(t, 0.0, EffectivePrice(svc, now))
}

func TestEffectivePriceNeverAboveListPrice(t *testing.T) {
	now := time.Now()
	for _, pct := range []float64{0, 5, 20, 100, 200} {
		svc := Service{Price: 750, Discount: &Discount{Percentage: pct, IsActive: true}}
		assert.LessOrEqual(t, EffectivePrice(svc, now), svc.Price, "pct=%v", pct)
	}
}

func TestTotalsIdentity(t *testing.T) {
	now := time.Now()
	// Service A: 1000 with a live 20% discount; service B: 500 plain.
	a := Service{Price: 1000, DurationMinutes: 60, Discount: &Discount{Percentage: 20, IsActive: true}}
	b := Service{Price: 500, DurationMinutes: 30}

	got := Totals([]Service{a, b}, now)
	assert.Equal(t, 1300.0, got.Total)
	assert.Equal(t, 1500.0, got.OriginalTotal)
	assert.Equal(t, 200.0, got.TotalDiscount)
	assert.Equal(t, 90, got.TotalMinutes)
	assert.Equal(t, got.OriginalTotal-got.TotalDiscount, got.Total)
	assert.GreaterOrEqual(t, got.TotalDiscount, 0.0)
}

func TestTotalsEmptySelection(t *testing.T) {
	got := Totals(nil, time.Now())
	assert.Zero(t, got.Total)
	assert.Zero(t, got.OriginalTotal)
	assert.Zero(t, got.TotalDiscount)
	assert.Zero(t, got.TotalMinutes)
}
