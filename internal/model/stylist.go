package model

import "time"

// Stylist represents a stylist profile in the `stylists` table.
// Specialties are stored as a comma-separated list in one column and split
// by the repository; ordering within the column is preserved.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – display name.
//  Specialties       – comma-separated specialties as stored.
//  ExperienceYears   – years of experience.
//  Rating            – average rating in [0,5], denormalized from reviews.
//  AvailableForHome  – serves home appointments.
//  AvailableForSalon – serves salon appointments.
//  IsActive          – inactive stylists cannot be booked.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Stylist struct {
	ID                uint64    // stylists.id
	Name              string    // stylists.name
	Specialties       string    // stylists.specialties (comma separated)
	ExperienceYears   int       // stylists.experience_years
	Rating            float64   // stylists.rating
	AvailableForHome  bool      // stylists.available_for_home
	AvailableForSalon bool      // stylists.available_for_salon
	IsActive          bool      // stylists.is_active
	CreatedAt         time.Time // stylists.created_at
	UpdatedAt         time.Time // stylists.updated_at
}
