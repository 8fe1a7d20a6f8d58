package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrAccountNotFound возвращается, когда аккаунт заявителя не найден
	ErrAccountNotFound = errors.New("create_reservation: account not found")

	// ErrSlotBlackedOut возвращается, когда слот в списке недоступных
	ErrSlotBlackedOut = errors.New("create_reservation: slot is unavailable")

	// ErrSlotAlreadyBooked возвращается, когда на слот уже есть бронирование,
	// а несколько бронирований на слот запрещены
	ErrSlotAlreadyBooked = errors.New("create_reservation: slot is already booked")

	// ErrTimeout возвращается, если хранилище не ответило за отведённое время
	ErrTimeout = errors.New("create_reservation: store call timed out")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
