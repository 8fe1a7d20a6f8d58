package domain

// Default booking policy values
const (
	DefaultAutoConfirm               = false
	DefaultAllowMultipleReservations = false
)

// Business validation constants
const (
	MaxNameLength  = 200
	MaxEmailLength = 320
	MaxPhoneLength = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// UnconfirmedStatuses statuses that fall into the "unconfirmed" partition
var UnconfirmedStatuses = []ReservationStatus{
	StatusPending,
	StatusDenied,
}
