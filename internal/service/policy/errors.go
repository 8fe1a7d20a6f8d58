package policy

import "errors"

var (
	// ErrAccessDenied возвращается, когда вызывающий не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnavailableTimeNotFound возвращается при удалении отсутствующего слота
	ErrUnavailableTimeNotFound = errors.New("unavailable time not found")

	// ErrTimeout возвращается, если хранилище не ответило за отведённое время
	ErrTimeout = errors.New("policy service: store call timed out")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy service: internal error")
)
