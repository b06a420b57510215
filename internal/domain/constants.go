package domain

// Default booking policy values
const (
	DefaultAdvanceBookingDays = 7
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxFieldNameLength    = 100
	MaxDescriptionLength  = 500
	MaxCustomerNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Roles recognised by the identity headers
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Outbox event types
const (
	EventBookingPaid = "booking.paid"
)
