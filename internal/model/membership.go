package model

import "time"

// Membership statuses.  A purchase creates a PENDING row tied to a gateway
// order; signature verification flips it to ACTIVE.
const (
	MembershipPending   = "PENDING"
	MembershipActive    = "ACTIVE"
	MembershipExpired   = "EXPIRED"
	MembershipCancelled = "CANCELLED"
)

// MembershipPlan is a purchasable plan in the `membership_plans` table.
// PricePaise is in minor currency units to match the payment gateway.
type MembershipPlan struct {
	ID                 uint64    // membership_plans.id
	Name               string    // membership_plans.name
	Description        string    // membership_plans.description
	PricePaise         int64     // membership_plans.price_paise
	DurationDays       int       // membership_plans.duration_days
	DiscountPercentage float64   // membership_plans.discount_percentage (applied to bookings)
	Benefits           string    // membership_plans.benefits (free text)
	IsActive           bool      // membership_plans.is_active
	CreatedAt          time.Time // membership_plans.created_at
	UpdatedAt          time.Time // membership_plans.updated_at
}

// Membership ties a user to a plan through a payment.  OrderID and
// PaymentID reference the gateway; PaymentID stays empty until the payment
// is verified.
type Membership struct {
	ID        uint64     // memberships.id
	UserID    uint64     // memberships.user_id
	PlanID    uint64     // memberships.plan_id
	Status    string     // memberships.status
	OrderID   string     // memberships.order_id (gateway order)
	PaymentID string     // memberships.payment_id (set on verification)
	Receipt   string     // memberships.receipt
	StartsAt  *time.Time // memberships.starts_at (set on activation)
	ExpiresAt *time.Time // memberships.expires_at (set on activation)
	CreatedAt time.Time  // memberships.created_at
	UpdatedAt time.Time  // memberships.updated_at
}
