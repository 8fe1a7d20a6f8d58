package notifications

import (
	"context"

	"github.com/m04kA/bookit/internal/domain"
)

// Sender отправляет одно уведомление (реализуется emailapi.Client и emailapi.LogSender)
type Sender interface {
	Send(ctx context.Context, kind domain.TemplateKind, recipient string, fields domain.NotificationFields) error
}

// Recorder учитывает отправки в метриках
type Recorder interface {
	NotificationSent(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
