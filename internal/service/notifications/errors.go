package notifications

import "errors"

var (
	// ErrNotificationFailed возвращается в отчёте, если хотя бы одно письмо не доставлено
	ErrNotificationFailed = errors.New("notifications: delivery failed")

	// ErrIncompleteRecord возвращается в отчёте, если в бронировании нет полей для письма
	ErrIncompleteRecord = errors.New("notifications: reservation record is incomplete")
)
