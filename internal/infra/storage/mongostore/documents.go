package mongostore

import (
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// reservationDocument документ коллекции reservations.
// Поля confirmed/notConfirmed дублируют статус для совместимости со старыми клиентами.
type reservationDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	Name         string    `bson:"name"`
	ContactEmail string    `bson:"contactEmail"`
	ContactPhone string    `bson:"contactPhone"`
	Date         string    `bson:"date"`
	Time         string    `bson:"time"`
	Status       string    `bson:"status"`
	Confirmed    bool      `bson:"confirmed"`
	NotConfirmed bool      `bson:"notConfirmed"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func newReservationDocument(r *domain.Reservation) reservationDocument {
	return reservationDocument{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Date:         r.Date,
		Time:         r.Time,
		Status:       string(r.Status),
		Confirmed:    r.IsConfirmed(),
		NotConfirmed: r.IsDenied(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d reservationDocument) toDomain() *domain.Reservation {
	status := domain.ReservationStatus(d.Status)
	if !status.IsValid() {
		// документы без status, созданные до его появления
		switch {
		case d.Confirmed:
			status = domain.StatusConfirmed
		case d.NotConfirmed:
			status = domain.StatusDenied
		default:
			status = domain.StatusPending
		}
	}

	return &domain.Reservation{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         d.Name,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Date:         d.Date,
		Time:         d.Time,
		Status:       status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// slotDocument элемент массива unavailableTimes; порядок полей важен для $addToSet и $pull
type slotDocument struct {
	Date string `bson:"date"`
	Time string `bson:"time"`
}

// policyDocument документ settings/configurations
type policyDocument struct {
	ID                        string         `bson:"_id"`
	AutoConfirm               bool           `bson:"autoConfirm"`
	AllowMultipleReservations bool           `bson:"allowMultipleReservations"`
	UnavailableTimes          []slotDocument `bson:"unavailableTimes"`
	UpdatedAt                 time.Time      `bson:"updatedAt"`
}

func (d policyDocument) toDomain() *domain.BookingPolicy {
	policy := &domain.BookingPolicy{
		AutoConfirm:               d.AutoConfirm,
		AllowMultipleReservations: d.AllowMultipleReservations,
		UnavailableTimes:          make([]domain.Slot, 0, len(d.UnavailableTimes)),
		UpdatedAt:                 d.UpdatedAt,
	}
	for _, s := range d.UnavailableTimes {
		policy.UnavailableTimes = append(policy.UnavailableTimes, domain.Slot{Date: s.Date, Time: s.Time})
	}
	return policy
}

// accountDocument документ коллекции users
type accountDocument struct {
	ID                 string    `bson:"_id"`
	Email              string    `bson:"email"`
	Phone              string    `bson:"phone"`
	Name               string    `bson:"name"`
	UserType           string    `bson:"userType"`
	RequestAdminAccess bool      `bson:"requestAdminAccess"`
	Protected          bool      `bson:"protected"`
	CreatedAt          time.Time `bson:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt"`
}

func (d accountDocument) toDomain() *domain.Account {
	accountType := domain.AccountType(d.UserType)
	if !accountType.IsValid() {
		accountType = domain.AccountTypeUser
	}

	return &domain.Account{
		ID:                 d.ID,
		Email:              d.Email,
		Phone:              d.Phone,
		Name:               d.Name,
		Type:               accountType,
		RequestAdminAccess: d.RequestAdminAccess,
		Protected:          d.Protected,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
