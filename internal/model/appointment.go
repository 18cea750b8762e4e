package model

import "time"

// Appointment statuses.  An appointment starts PENDING, is CONFIRMED by an
// admin (or automatically after payment), and ends COMPLETED or CANCELLED.
const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

// Appointment records one service booked for a user with a stylist in a
// specific time slot.  A multi-service booking produces one row per
// service, all sharing the same date/slot/stylist; the rows are
// deliberately independent (no grouping transaction), so one row can exist
// even when a sibling insert failed.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – customer who booked.
//  ServiceID  – service being performed.
//  StylistID  – stylist performing it.
//  Location   – "home" or "salon".
//  Date       – appointment day (YYYY-MM-DD).
//  TimeSlot   – slot label within the day (e.g. "10:00").
//  Status     – lifecycle state, see constants above.
//  Price      – effective price charged at booking time.
//  Notes      – optional customer notes.
//  Address    – required for home appointments.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Appointment struct {
	ID        uint64    // appointments.id
	UserID    uint64    // appointments.user_id
	ServiceID uint64    // appointments.service_id
	StylistID uint64    // appointments.stylist_id
	Location  string    // appointments.location
	Date      string    // appointments.date
	TimeSlot  string    // appointments.time_slot
	Status    string    // appointments.status
	Price     float64   // appointments.price
	Notes     string    // appointments.notes
	Address   string    // appointments.address
	CreatedAt time.Time // appointments.created_at
	UpdatedAt time.Time // appointments.updated_at
}
