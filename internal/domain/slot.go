package domain

import (
	"fmt"
	"time"
)

// Slot represents a bookable (date, time) pair.
// Both parts are compared by exact string equality; there is no duration or overlap model.
type Slot struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// NewSlot builds a slot after validating both parts.
func NewSlot(date, t string) (Slot, error) {
	s := Slot{Date: date, Time: t}
	if err := s.Validate(); err != nil {
		return Slot{}, err
	}
	return s, nil
}

// Key returns the canonical key used to serialize writes per slot.
func (s Slot) Key() string {
	return s.Date + "T" + s.Time
}

// String implements fmt.Stringer
func (s Slot) String() string {
	return s.Date + " " + s.Time
}

// IsZero returns true if neither date nor time is set
func (s Slot) IsZero() bool {
	return s.Date == "" && s.Time == ""
}

// Validate checks that the date is YYYY-MM-DD and the time is HH:MM
func (s Slot) Validate() error {
	if _, err := time.Parse(DateFormat, s.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected %s", s.Date, DateFormat)
	}
	if _, err := time.Parse(TimeFormat, s.Time); err != nil {
		return fmt.Errorf("invalid time %q: expected %s", s.Time, TimeFormat)
	}
	return nil
}
