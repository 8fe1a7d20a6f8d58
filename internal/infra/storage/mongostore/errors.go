package mongostore

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к MongoDB
	ErrConnect = errors.New("mongostore: failed to connect")

	// ErrQuery возвращается при ошибке выполнения запроса
	ErrQuery = errors.New("mongostore: failed to execute query")

	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("mongostore: failed to decode document")
)
