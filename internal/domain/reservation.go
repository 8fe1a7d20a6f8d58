package domain

import (
	"fmt"
	"time"
)

// ReservationStatus represents the review state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusDenied    ReservationStatus = "denied"
)

// IsValid returns true for the three known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDenied:
		return true
	}
	return false
}

// Outcome is an admin decision on a reservation
type Outcome string

const (
	OutcomeConfirm Outcome = "confirm"
	OutcomeDeny    Outcome = "deny"
)

// ParseOutcome converts the API representation into an Outcome
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeConfirm, OutcomeDeny:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// Status returns the status an outcome moves a reservation to
func (o Outcome) Status() ReservationStatus {
	if o == OutcomeConfirm {
		return StatusConfirmed
	}
	return StatusDenied
}

// Reservation represents a booked slot
type Reservation struct {
	ID     string
	UserID string

	// Captured at creation time, never re-derived from the account
	Name         string
	ContactEmail string
	ContactPhone string

	Date   string
	Time   string
	Status ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the (date, time) pair of the reservation
func (r *Reservation) Slot() Slot {
	return Slot{Date: r.Date, Time: r.Time}
}

// IsConfirmed mirrors the legacy "confirmed" flag
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// IsDenied mirrors the legacy "notConfirmed" flag
func (r *Reservation) IsDenied() bool {
	return r.Status == StatusDenied
}

// IsPending returns true if no admin decision has been made yet
func (r *Reservation) IsPending() bool {
	return r.Status == StatusPending
}

// CanTransitionTo reports whether the reservation may move to next.
// Pending -> Confirmed|Denied and Confirmed <-> Denied are allowed; nothing returns to Pending.
// Repeating the current status is allowed and is a no-op.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch next {
	case StatusConfirmed, StatusDenied:
		return r.Status.IsValid()
	}
	return false
}

// MissingNotificationFields lists the fields a notification needs but the record lacks
func (r *Reservation) MissingNotificationFields() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Date == "" {
		missing = append(missing, "date")
	}
	if r.Time == "" {
		missing = append(missing, "time")
	}
	if r.ContactEmail == "" {
		missing = append(missing, "contactEmail")
	}
	return missing
}

// Partition selects a subset of reservations by confirmation
type Partition string

const (
	PartitionAll         Partition = "all"
	PartitionConfirmed   Partition = "confirmed"
	PartitionUnconfirmed Partition = "unconfirmed"
)

// ParsePartition converts the API representation into a Partition; empty means all
func ParsePartition(s string) (Partition, error) {
	switch Partition(s) {
	case "":
		return PartitionAll, nil
	case PartitionAll, PartitionConfirmed, PartitionUnconfirmed:
		return Partition(s), nil
	}
	return "", fmt.Errorf("unknown partition %q", s)
}

// Matches partitions strictly on the confirmed flag
func (p Partition) Matches(r *Reservation) bool {
	switch p {
	case PartitionConfirmed:
		return r.IsConfirmed()
	case PartitionUnconfirmed:
		return !r.IsConfirmed()
	default:
		return true
	}
}

// Filter returns the reservations matching the partition, preserving order
func (p Partition) Filter(reservations []*Reservation) []*Reservation {
	out := make([]*Reservation, 0, len(reservations))
	for _, r := range reservations {
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
