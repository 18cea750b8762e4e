package catalog

import "time"

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "all"

// ServiceFilter holds the criteria applied by FilterServices.  Nil range
// bounds leave that side open; both bounds are inclusive.  The price range
// is evaluated against the discounted (effective) price, not the list price.
type ServiceFilter struct {
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	MinDuration *int
	MaxDuration *int
}

// StylistFilter holds the criteria applied by FilterStylists.  Location,
// when set, keeps only stylists available for that location.
type StylistFilter struct {
	MinExperience *int
	MaxExperience *int
	MinRating     *float64
	MaxRating     *float64
	Location      Location
}

// FilterServices keeps the services matching every criterion in f.  The
// effective price at now is used for the price range so a discounted
// service lands in the bucket the customer actually pays.
func FilterServices(items []Service, f ServiceFilter, now time.Time) []Service {
	out := make([]Service, 0, len(items))
	for _, s := range items {
		if f.Category != "" && f.Category != CategoryAll && s.Category != f.Category {
			continue
		}
		price := EffectivePrice(s, now)
		if f.MinPrice != nil && price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			continue
		}
		if f.MinDuration != nil && s.DurationMinutes < *f.MinDuration {
			continue
		}
		if f.MaxDuration != nil && s.DurationMinutes > *f.MaxDuration {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterStylists keeps the stylists matching every criterion in f.
func FilterStylists(items []Stylist, f StylistFilter) []Stylist {
	out := make([]Stylist, 0, len(items))
	for _, s := range items {
		if f.MinExperience != nil && s.ExperienceYears < *f.MinExperience {
			continue
		}
		if f.MaxExperience != nil && s.ExperienceYears > *f.MaxExperience {
			continue
		}
		if f.MinRating != nil && s.Rating < *f.MinRating {
			continue
		}
		if f.MaxRating != nil && s.Rating > *f.MaxRating {
			continue
		}
		switch f.Location {
		case LocationHome:
			if !s.AvailableForHome {
				continue
			}
		case LocationSalon:
			if !s.AvailableForSalon {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
