package model

import "time"

// Review is a customer review of a service or stylist.  Reviews are hidden
// until an admin approves them; featured reviews surface on the landing
// page.
type Review struct {
	ID         uint64    // reviews.id
	UserID     uint64    // reviews.user_id
	ServiceID  *uint64   // reviews.service_id (nullable)
	StylistID  *uint64   // reviews.stylist_id (nullable)
	Rating     int       // reviews.rating (1..5)
	Comment    string    // reviews.comment
	IsApproved bool      // reviews.is_approved
	IsFeatured bool      // reviews.is_featured
	CreatedAt  time.Time // reviews.created_at
	UpdatedAt  time.Time // reviews.updated_at
}
