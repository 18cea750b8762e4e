package catalog

import (
	"sort"
	"strings"
	"time"
)

// ServiceSortKey enumerates the columns services can be ordered by.
type ServiceSortKey string

// StylistSortKey enumerates the columns stylists can be ordered by.
type StylistSortKey string

const (
	ServiceSortName     ServiceSortKey = "name"
	ServiceSortPrice    ServiceSortKey = "price" // effective (discounted) price
	ServiceSortDuration ServiceSortKey = "duration"

	StylistSortName       StylistSortKey = "name"
	StylistSortExperience StylistSortKey = "experience"
	StylistSortRating     StylistSortKey = "rating"
)

// SortServices returns a new slice ordered by key.  String keys compare
// case-insensitively, numeric keys by value.  The sort is stable, so items
// with equal keys keep their original relative order.  An unknown key
// returns a copy in the original order.
func SortServices(items []Service, key ServiceSortKey, desc bool, now time.Time) []Service {
	out := make([]Service, len(items))
	copy(out, items)
	var less func(i, j int) bool
	switch key {
	case ServiceSortName:
		less = func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
	case ServiceSortPrice:
		less = func(i, j int) bool {
			return EffectivePrice(out[i], now) < EffectivePrice(out[j], now)
		}
	case ServiceSortDuration:
		less = func(i, j int) bool { return out[i].DurationMinutes < out[j].DurationMinutes }
	default:
		return out
	}
	if desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

// SortStylists is the stylist counterpart of SortServices.
func SortStylists(items []Stylist, key StylistSortKey, desc bool) []Stylist {
	out := make([]Stylist, len(items))
	copy(out, items)
	var less func(i, j int) bool
	switch key {
	case StylistSortName:
		less = func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
	case StylistSortExperience:
		less = func(i, j int) bool { return out[i].ExperienceYears < out[j].ExperienceYears }
	case StylistSortRating:
		less = func(i, j int) bool { return out[i].Rating < out[j].Rating }
	default:
		return out
	}
	if desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}
