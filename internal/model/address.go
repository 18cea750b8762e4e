package model

import "time"

// Address is a saved customer address used for home appointments.
type Address struct {
	ID        uint64    // addresses.id
	UserID    uint64    // addresses.user_id
	Label     string    // addresses.label (e.g. "Home", "Office")
	Line1     string    // addresses.line1
	Line2     string    // addresses.line2
	City      string    // addresses.city
	State     string    // addresses.state
	Pincode   string    // addresses.pincode
	IsDefault bool      // addresses.is_default
	CreatedAt time.Time // addresses.created_at
	UpdatedAt time.Time // addresses.updated_at
}
