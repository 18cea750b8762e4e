package model

import "time"

// Enquiry statuses walked by the admin back office.
const (
	EnquiryNew      = "NEW"
	EnquiryOpen     = "OPEN"
	EnquiryResolved = "RESOLVED"
)

// Enquiry is a contact-form message.  Reference is a short public
// identifier the customer can quote in follow-ups.
type Enquiry struct {
	ID        uint64    // enquiries.id
	Reference string    // enquiries.reference (public identifier)
	Name      string    // enquiries.name
	Email     string    // enquiries.email
	Phone     string    // enquiries.phone
	Subject   string    // enquiries.subject
	Message   string    // enquiries.message
	Status    string    // enquiries.status
	CreatedAt time.Time // enquiries.created_at
	UpdatedAt time.Time // enquiries.updated_at
}
