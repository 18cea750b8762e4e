// Package catalog implements the pure booking-selection logic shared by the
// HTTP handlers and the API client: discount resolution, free-text search,
// filtering, sorting, pagination, selection totals and the booking wizard
// step gate. Nothing in this package touches the database or the network;
// every function is a plain transformation over in-memory values so the
// rules can be unit tested in isolation.
package catalog

import "time"

// Location identifies where an appointment takes place.  Only the two
// enumerated values are accepted by the wizard gate.
type Location string

const (
	LocationHome  Location = "home"  // service performed at the customer's address
	LocationSalon Location = "salon" // service performed in the salon
)

// ValidLocation reports whether l is one of the two enumerated locations.
func ValidLocation(l Location) bool {
	return l == LocationHome || l == LocationSalon
}

// Discount describes a percentage discount attached to a service.  A
// discount only lowers the effective price while IsActive is set and the
// current time falls inside the optional validity window.  Nil bounds leave
// that side of the window open.
type Discount struct {
	Percentage float64    `json:"percentage"`
	IsActive   bool       `json:"is_active"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// Service is the catalog view of a bookable service.  Name, Description and
// Category are searchable; Category, the price range and the duration range
// are filterable.  Price is the list price in rupees before any discount; see
// EffectivePrice for the discounted value.  Inactive services never appear
// in the public catalog.
type Service struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Price            float64   `json:"price"`
	DurationMinutes  int       `json:"duration_minutes"`
	IsActive         bool      `json:"is_active"`
	AvailableAtHome  bool      `json:"available_at_home"`
	AvailableAtSalon bool      `json:"available_at_salon"`
	Discount         *Discount `json:"discount,omitempty"`
}

// Stylist is the catalog view of a stylist profile.  Name and the joined
// Specialties list are searchable; ExperienceYears and Rating (average in
// [0,5]) are filterable.  The availability flags say which locations the
// stylist serves.
type Stylist struct {
	ID                uint64   `json:"id"`
	Name              string   `json:"name"`
	Specialties       []string `json:"specialties"`
	ExperienceYears   int      `json:"experience_years"`
	Rating            float64  `json:"rating"`
	AvailableForHome  bool     `json:"available_for_home"`
	AvailableForSalon bool     `json:"available_for_salon"`
}
