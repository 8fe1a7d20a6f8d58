package domain

// TemplateKind selects the message template a notification is rendered with
type TemplateKind string

const (
	TemplateReservationPending   TemplateKind = "reservation_pending"
	TemplateReservationConfirmed TemplateKind = "reservation_confirmed"
	TemplateReservationDenied    TemplateKind = "reservation_denied"
)

// NotificationFields is the fixed field set passed to every template
type NotificationFields struct {
	ToName          string
	ReservationDate string
	ReservationTime string
	UserEmail       string
}

// FieldsFor builds notification fields for a reservation addressed to recipient
func FieldsFor(r *Reservation, recipient string) NotificationFields {
	return NotificationFields{
		ToName:          r.Name,
		ReservationDate: r.Date,
		ReservationTime: r.Time,
		UserEmail:       recipient,
	}
}

// TemplateForStatus returns the template announcing a reservation in the given status
func TemplateForStatus(s ReservationStatus) TemplateKind {
	switch s {
	case StatusConfirmed:
		return TemplateReservationConfirmed
	case StatusDenied:
		return TemplateReservationDenied
	default:
		return TemplateReservationPending
	}
}

// NotificationReport summarizes a notification fan-out.
// A failed delivery never fails the operation that triggered it.
type NotificationReport struct {
	Sent   int
	Failed int
	Err    error
}

// Delivered returns true if every recipient was notified and nothing was skipped
func (r NotificationReport) Delivered() bool {
	return r.Failed == 0 && r.Err == nil
}
