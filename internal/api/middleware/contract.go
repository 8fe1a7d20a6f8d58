package middleware

import "github.com/m04kA/bookit/internal/integrations/identity"

// TokenVerifier проверяет bearer-токен
type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
