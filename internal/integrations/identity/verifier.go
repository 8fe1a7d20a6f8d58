// Package identity проверяет bearer-токены внешнего провайдера идентификации.
// Сервис токены не выпускает, только проверяет подпись и стандартные claims.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken возвращается, если заголовок Authorization пуст или не Bearer
	ErrMissingToken = errors.New("identity: missing bearer token")

	// ErrInvalidToken возвращается при неверной подписи, истёкшем сроке или неверных claims
	ErrInvalidToken = errors.New("identity: invalid token")
)

// Config параметры проверки токенов
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Claims claims токена провайдера; subject используется как ID аккаунта
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity проверенный пользователь
type Identity struct {
	Subject string
	Email   string
}

// Verifier проверяет HS256-токены общим секретом
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

// NewVerifier создает верификатор
func NewVerifier(cfg Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}

	return &Verifier{secret: []byte(cfg.Secret), opts: opts}
}

// Verify разбирает и проверяет токен
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject is empty", ErrInvalidToken)
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email}, nil
}

// BearerToken извлекает токен из значения заголовка Authorization
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
