package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/bookit/internal/api/handlers"
	"github.com/m04kA/bookit/internal/integrations/identity"
)

type contextKey int

const (
	userIDKey contextKey = iota
	emailKey
)

// Auth проверяет заголовок Authorization и кладёт subject и email в контекст
func Auth(verifier TokenVerifier, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := identity.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				log.Warn("Auth: %s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "отсутствует токен авторизации")
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "недействительный токен авторизации")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id.Subject, id.Email)))
		})
	}
}

// WithIdentity кладёт проверенного пользователя в контекст
func WithIdentity(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}

// GetUserID получает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// GetEmail получает email пользователя из контекста
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}
