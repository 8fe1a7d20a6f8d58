package emailapi

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда почтовый API не принял письмо
	ErrDeliveryFailed = errors.New("emailapi client: delivery failed")

	// ErrUnknownTemplate возвращается для вида уведомления без настроенного шаблона
	ErrUnknownTemplate = errors.New("emailapi client: unknown template")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("emailapi client: internal error")
)
