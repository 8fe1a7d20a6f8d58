package create_reservation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/bookit/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if err := (domain.Slot{Date: req.Date, Time: req.Time}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if len(req.ContactPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: contactPhone must be at most %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.ContactEmail != "" {
		if len(req.ContactEmail) > domain.MaxEmailLength {
			return fmt.Errorf("%w: contactEmail must be at most %d characters", ErrInvalidInput, domain.MaxEmailLength)
		}
		if _, err := mail.ParseAddress(req.ContactEmail); err != nil {
			return fmt.Errorf("%w: invalid contactEmail: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// fillFromAccount подставляет контактные данные аккаунта для незаполненных полей
func fillFromAccount(req *Request, acc *domain.Account) {
	if strings.TrimSpace(req.Name) == "" {
		req.Name = acc.Name
	}
	if strings.TrimSpace(req.ContactEmail) == "" {
		req.ContactEmail = acc.Email
	}
	if strings.TrimSpace(req.ContactPhone) == "" {
		req.ContactPhone = acc.Phone
	}
}

// adminEmails возвращает адреса администраторов
func adminEmails(admins []*domain.Account) []string {
	out := make([]string, 0, len(admins))
	for _, a := range admins {
		out = append(out, a.Email)
	}
	return out
}
