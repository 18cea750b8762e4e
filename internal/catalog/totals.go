package catalog

import "time"

// SelectionTotals aggregates the price and duration of a set of selected
// services.  Total is always OriginalTotal - TotalDiscount and TotalDiscount
// is never negative; Totals computes the discount as the difference of the
// two sums so the identity holds exactly even with floating point.
type SelectionTotals struct {
	Total         float64 `json:"total"`          // sum of effective prices
	OriginalTotal float64 `json:"original_total"` // sum of list prices
	TotalDiscount float64 `json:"total_discount"` // OriginalTotal - Total
	TotalMinutes  int     `json:"total_minutes"`  // sum of durations
}

// Totals computes the aggregates for the selected services at the given
// instant.
func Totals(selected []Service, now time.Time) SelectionTotals {
	var t SelectionTotals
	for _, s := range selected {
		t.Total += EffectivePrice(s, now)
		t.OriginalTotal += s.Price
		t.TotalMinutes += s.DurationMinutes
	}
	t.TotalDiscount = t.OriginalTotal - t.Total
	return t
}
