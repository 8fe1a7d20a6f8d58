package set_reservation_outcome

import "github.com/m04kA/bookit/internal/domain"

// Request модель запроса на подтверждение или отклонение бронирования
type Request struct {
	CallerID      string
	ReservationID string
	Outcome       string // "confirm" | "deny"
}

// Response модель ответа с обновлённым бронированием.
// Notification.Err содержит notifications.ErrIncompleteRecord, если письмо собрать не удалось;
// изменение статуса при этом уже сохранено.
type Response struct {
	Reservation  *domain.Reservation
	Notification domain.NotificationReport
}
