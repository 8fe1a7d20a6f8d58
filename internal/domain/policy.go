package domain

import "time"

// BookingPolicy is the global booking configuration singleton
type BookingPolicy struct {
	AutoConfirm               bool
	AllowMultipleReservations bool

	// Insertion-ordered set of blacked-out slots; no duplicates
	UnavailableTimes []Slot

	UpdatedAt time.Time
}

// DefaultBookingPolicy returns the policy created implicitly on first read
func DefaultBookingPolicy() *BookingPolicy {
	return &BookingPolicy{
		AutoConfirm:               DefaultAutoConfirm,
		AllowMultipleReservations: DefaultAllowMultipleReservations,
		UnavailableTimes:          []Slot{},
	}
}

// IsUnavailable returns true if the slot is blacked out
func (p *BookingPolicy) IsUnavailable(s Slot) bool {
	for _, u := range p.UnavailableTimes {
		if u == s {
			return true
		}
	}
	return false
}

// InitialStatus returns the status of a newly created reservation under this policy
func (p *BookingPolicy) InitialStatus() ReservationStatus {
	if p.AutoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}

// Clone returns a deep copy
func (p *BookingPolicy) Clone() *BookingPolicy {
	c := *p
	c.UnavailableTimes = append([]Slot{}, p.UnavailableTimes...)
	return &c
}

// PolicyPatch is a partial update; nil fields are preserved
type PolicyPatch struct {
	AutoConfirm               *bool
	AllowMultipleReservations *bool
}

// IsEmpty returns true if the patch changes nothing
func (p PolicyPatch) IsEmpty() bool {
	return p.AutoConfirm == nil && p.AllowMultipleReservations == nil
}

// Apply merges the patch into the policy
func (p PolicyPatch) Apply(policy *BookingPolicy) {
	if p.AutoConfirm != nil {
		policy.AutoConfirm = *p.AutoConfirm
	}
	if p.AllowMultipleReservations != nil {
		policy.AllowMultipleReservations = *p.AllowMultipleReservations
	}
}
