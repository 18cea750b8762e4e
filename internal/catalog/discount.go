package catalog

import "time"

// IsDiscountActive reports whether the service's discount applies at the
// given instant.  The discount must be flagged active and now must fall
// inside the validity window; a nil ValidFrom or ValidUntil leaves that
// bound open.
func IsDiscountActive(s Service, now time.Time) bool {
	d := s.Discount
	if d == nil || !d.IsActive {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	return true
}

// EffectivePrice returns the price a customer pays for the service at the
// given instant.  Without an active discount it is the list price; with one
// it is price - price*percentage/100, floored at zero so a percentage above
// 100 can never produce a negative price.
func EffectivePrice(s Service, now time.Time) float64 {
	if !IsDiscountActive(s, now) {
		return s.Price
	}
	p := s.Price - s.Price*s.Discount.Percentage/100
	if p < 0 {
		return 0
	}
	return p
}
