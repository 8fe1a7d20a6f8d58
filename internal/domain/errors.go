package domain

import "errors"

// Backend-neutral store errors. Every storage backend (postgres, mongo, memory)
// wraps these so callers can match them with errors.Is.
var (
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrAccountNotFound         = errors.New("account not found")
	ErrSlotTaken               = errors.New("slot already has a reservation")
	ErrUnavailableTimeNotFound = errors.New("unavailable time not found")
)
