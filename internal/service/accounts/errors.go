package accounts

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт не найден
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoPendingRequest возвращается, если у аккаунта нет заявки на права администратора
	ErrNoPendingRequest = errors.New("account has no pending admin request")

	// ErrProtectedAccount возвращается при попытке понизить защищённый аккаунт
	ErrProtectedAccount = errors.New("account is protected")

	// ErrNotAdmin возвращается при попытке понизить аккаунт без роли администратора
	ErrNotAdmin = errors.New("account is not an admin")

	// ErrTimeout возвращается, если хранилище не ответило за отведённое время
	ErrTimeout = errors.New("accounts service: store call timed out")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("accounts service: internal error")
)
