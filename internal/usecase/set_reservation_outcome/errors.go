package set_reservation_outcome

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("set_reservation_outcome: invalid input data")

	// ErrAccessDenied возвращается, если вызывающий не администратор
	ErrAccessDenied = errors.New("set_reservation_outcome: access denied")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("set_reservation_outcome: reservation not found")

	// ErrInvalidTransition возвращается для недопустимой смены статуса
	ErrInvalidTransition = errors.New("set_reservation_outcome: invalid status transition")

	// ErrTimeout возвращается, если хранилище не ответило за отведённое время
	ErrTimeout = errors.New("set_reservation_outcome: store call timed out")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_reservation_outcome: internal error")
)
