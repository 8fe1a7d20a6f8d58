package create_reservation

import "github.com/m04kA/bookit/internal/domain"

// Request модель запроса на создание бронирования.
// Пустые Name, ContactEmail и ContactPhone берутся из аккаунта заявителя.
type Request struct {
	UserID       string // ID аккаунта (subject токена)
	Name         string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	ContactEmail string
	ContactPhone string
}

// Response модель ответа с созданным бронированием.
// Notification.Err содержит notifications.ErrIncompleteRecord, если письмо собрать не удалось.
type Response struct {
	Reservation  *domain.Reservation
	Notification domain.NotificationReport
}
