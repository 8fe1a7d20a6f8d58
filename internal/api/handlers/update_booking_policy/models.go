package update_booking_policy

import "github.com/m04kA/bookit/internal/domain"

// UpdatePolicyRequest HTTP request model; отсутствующие поля не меняются
type UpdatePolicyRequest struct {
	AutoConfirm               *bool `json:"autoConfirm,omitempty"`
	AllowMultipleReservations *bool `json:"allowMultipleReservations,omitempty"`
}

// ToPatch конвертирует HTTP запрос в частичное обновление
func (r *UpdatePolicyRequest) ToPatch() domain.PolicyPatch {
	return domain.PolicyPatch{
		AutoConfirm:               r.AutoConfirm,
		AllowMultipleReservations: r.AllowMultipleReservations,
	}
}
