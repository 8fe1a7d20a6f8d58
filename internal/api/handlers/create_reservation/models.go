package create_reservation

import (
	createReservation "github.com/m04kA/bookit/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Name         string `json:"name"`
	Date         string `json:"date"` // "2024-06-01"
	Time         string `json:"time"` // "10:00"
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) *createReservation.Request {
	return &createReservation.Request{
		UserID:       userID,
		Name:         r.Name,
		Date:         r.Date,
		Time:         r.Time,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
	}
}
