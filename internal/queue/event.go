// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentConfirmedEvent is published once a booking request has been
// written.  It carries enough for downstream consumers to log or notify
// without querying the primary database.  Services holds one entry per
// appointment row created by the booking; failed rows are absent.
type AppointmentConfirmedEvent struct {
	UserID      uint64                  `json:"user_id"`
	StylistID   uint64                  `json:"stylist_id"`
	StylistName string                  `json:"stylist_name"`
	Location    string                  `json:"location"`
	Date        string                  `json:"date"`
	TimeSlot    string                  `json:"time_slot"`
	Services    []AppointmentEventEntry `json:"services"`
	Total       float64                 `json:"total"`
	ConfirmedAt string                  `json:"confirmed_at"`
}

// AppointmentEventEntry is one booked service inside a confirmed booking.
type AppointmentEventEntry struct {
	AppointmentID uint64  `json:"appointment_id"`
	ServiceID     uint64  `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	Price         float64 `json:"price"`
}

// EnquiryReceivedEvent is published when a contact-form enquiry arrives, so
// staff notification can happen off the request path.
type EnquiryReceivedEvent struct {
	EnquiryID  uint64 `json:"enquiry_id"`
	Reference  string `json:"reference"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	ReceivedAt string `json:"received_at"`
}
