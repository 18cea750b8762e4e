package model

import "time"

// Service represents a bookable salon service as stored in the `services`
// table.  Discount columns are nullable as a group: a service without a
// discount has NULL discount_percentage and the repository maps that to a
// catalog.Service with a nil Discount.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name.
//  Description        – free-text description.
//  Category           – category name (hair, makeup, nails, ...).
//  Price              – list price in rupees.
//  DurationMinutes    – how long the service takes.
//  IsActive           – inactive services are hidden from the public catalog.
//  AvailableAtHome    – can be performed at the customer's address.
//  AvailableAtSalon   – can be performed in the salon.
//  DiscountPercentage – nullable discount percentage.
//  DiscountActive     – whether the discount is switched on.
//  DiscountValidFrom  – nullable start of the discount window.
//  DiscountValidUntil – nullable end of the discount window.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Service struct {
	ID                 uint64     // services.id
	Name               string     // services.name
	Description        string     // services.description
	Category           string     // services.category
	Price              float64    // services.price
	DurationMinutes    int        // services.duration_minutes
	IsActive           bool       // services.is_active
	AvailableAtHome    bool       // services.available_at_home
	AvailableAtSalon   bool       // services.available_at_salon
	DiscountPercentage *float64   // services.discount_percentage (nullable)
	DiscountActive     bool       // services.discount_active
	DiscountValidFrom  *time.Time // services.discount_valid_from (nullable)
	DiscountValidUntil *time.Time // services.discount_valid_until (nullable)
	CreatedAt          time.Time  // services.created_at
	UpdatedAt          time.Time  // services.updated_at
}
