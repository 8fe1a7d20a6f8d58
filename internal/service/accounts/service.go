package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/accounts/models"
	"github.com/m04kA/bookit/pkg/deadline"
)

// Service сервис каталога аккаунтов: профиль, заявки на права администратора, понижение
type Service struct {
	accountRepo AccountRepository
	counter     ReservationCounter
	callTimeout time.Duration
	logger      Logger
}

// NewService создает новый экземпляр сервиса аккаунтов
func NewService(accountRepo AccountRepository, counter ReservationCounter, callTimeout time.Duration, logger Logger) *Service {
	return &Service{
		accountRepo: accountRepo,
		counter:     counter,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// GetProfile возвращает профиль пользователя.
// При первом обращении аккаунт создаётся с ролью user.
func (s *Service) GetProfile(ctx context.Context, id, email string) (*domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}

	account, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return s.accountRepo.Ensure(ctx, &domain.Account{
			ID:    id,
			Email: email,
			Type:  domain.AccountTypeUser,
		})
	})
	if err != nil {
		return nil, s.storeError("GetProfile", err)
	}
	return account, nil
}

// UpdateProfile обновляет имя и телефон
func (s *Service) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*domain.Account, error) {
	s.logger.Info("UpdateProfile: account=%s", req.AccountID)

	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(phone) > domain.MaxPhoneLength {
		return nil, fmt.Errorf("%w: phone must be at most %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	account, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return s.accountRepo.UpdateProfile(ctx, req.AccountID, name, phone)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, s.storeError("UpdateProfile", err)
	}
	return account, nil
}

// RequestAdminAccess ставит заявку на права администратора.
// Для администратора ничего не делает.
func (s *Service) RequestAdminAccess(ctx context.Context, id string) (*domain.Account, error) {
	s.logger.Info("RequestAdminAccess: account=%s", id)

	account, err := s.get(ctx, "RequestAdminAccess", id)
	if err != nil {
		return nil, err
	}
	if account.IsAdmin() || account.RequestAdminAccess {
		return account, nil
	}

	err = deadline.Run(ctx, s.callTimeout, func(ctx context.Context) error {
		return s.accountRepo.SetRequestAdminAccess(ctx, id, true)
	})
	if err != nil {
		return nil, s.storeError("RequestAdminAccess", err)
	}

	account.RequestAdminAccess = true
	return account, nil
}

// ListAdminRequests возвращает аккаунты с активной заявкой
func (s *Service) ListAdminRequests(ctx context.Context, callerID string) ([]*domain.Account, error) {
	if _, err := s.checkAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	list, err := deadline.Call(ctx, s.callTimeout, s.accountRepo.ListRequestingAdmin)
	if err != nil {
		return nil, s.storeError("ListAdminRequests", err)
	}
	return list, nil
}

// ListAdmins возвращает всех администраторов
func (s *Service) ListAdmins(ctx context.Context, callerID string) ([]*domain.Account, error) {
	if _, err := s.checkAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	list, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) ([]*domain.Account, error) {
		return s.accountRepo.ListByType(ctx, domain.AccountTypeAdmin)
	})
	if err != nil {
		return nil, s.storeError("ListAdmins", err)
	}
	return list, nil
}

// ListUsers возвращает все аккаунты с количеством бронирований
func (s *Service) ListUsers(ctx context.Context, callerID string) ([]*domain.AccountSummary, error) {
	if _, err := s.checkAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	list, err := deadline.Call(ctx, s.callTimeout, s.accountRepo.ListAll)
	if err != nil {
		return nil, s.storeError("ListUsers", err)
	}
	counts, err := deadline.Call(ctx, s.callTimeout, s.counter.CountByUser)
	if err != nil {
		return nil, s.storeError("ListUsers", err)
	}

	out := make([]*domain.AccountSummary, 0, len(list))
	for _, acc := range list {
		out = append(out, &domain.AccountSummary{
			Account:           acc,
			TotalReservations: counts[acc.ID],
		})
	}
	return out, nil
}

// ResolveAdminRequest принимает или отклоняет заявку.
// Принятие повышает роль до admin, в обоих случаях флаг заявки сбрасывается.
func (s *Service) ResolveAdminRequest(ctx context.Context, req *models.ResolveAdminRequest) (*domain.Account, error) {
	s.logger.Info("ResolveAdminRequest: account=%s accept=%t caller=%s", req.AccountID, req.Accept, req.CallerID)

	if _, err := s.checkAdmin(ctx, req.CallerID); err != nil {
		return nil, err
	}

	target, err := s.get(ctx, "ResolveAdminRequest", req.AccountID)
	if err != nil {
		return nil, err
	}
	if !target.RequestAdminAccess {
		s.logger.Warn("ResolveAdminRequest: account=%s has no pending request", req.AccountID)
		return nil, ErrNoPendingRequest
	}

	// Роль и флаг заявки меняются одной записью
	err = deadline.Run(ctx, s.callTimeout, func(ctx context.Context) error {
		return s.accountRepo.CompleteAdminRequest(ctx, req.AccountID, req.Accept)
	})
	if err != nil {
		return nil, s.storeError("ResolveAdminRequest", err)
	}
	if req.Accept {
		target.Type = domain.AccountTypeAdmin
	}
	target.RequestAdminAccess = false

	s.logger.Info("ResolveAdminRequest: account=%s resolved, type=%s", req.AccountID, target.Type)
	return target, nil
}

// DemoteAdmin понижает администратора до user.
// Доступно только защищённому администратору; защищённые аккаунты понизить нельзя.
func (s *Service) DemoteAdmin(ctx context.Context, callerID, accountID string) (*domain.Account, error) {
	s.logger.Info("DemoteAdmin: account=%s caller=%s", accountID, callerID)

	caller, err := s.checkAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Protected {
		s.logger.Warn("DemoteAdmin: caller=%s is not a protected admin", callerID)
		return nil, ErrAccessDenied
	}

	target, err := s.get(ctx, "DemoteAdmin", accountID)
	if err != nil {
		return nil, err
	}
	if target.Protected {
		return nil, ErrProtectedAccount
	}
	if !target.IsAdmin() {
		return nil, ErrNotAdmin
	}

	err = deadline.Run(ctx, s.callTimeout, func(ctx context.Context) error {
		return s.accountRepo.SetRole(ctx, accountID, domain.AccountTypeUser)
	})
	if err != nil {
		return nil, s.storeError("DemoteAdmin", err)
	}

	target.Type = domain.AccountTypeUser
	return target, nil
}

// Provision создает или перезаписывает аккаунт (команда account provision)
func (s *Service) Provision(ctx context.Context, req *models.ProvisionRequest) (*domain.Account, error) {
	s.logger.Info("Provision: account=%s admin=%t protected=%t", req.ID, req.Admin, req.Protected)

	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}
	if req.Protected && !req.Admin {
		return nil, fmt.Errorf("%w: only admin accounts can be protected", ErrInvalidInput)
	}

	accountType := domain.AccountTypeUser
	if req.Admin {
		accountType = domain.AccountTypeAdmin
	}

	account, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return s.accountRepo.Upsert(ctx, &domain.Account{
			ID:        req.ID,
			Email:     req.Email,
			Name:      req.Name,
			Phone:     req.Phone,
			Type:      accountType,
			Protected: req.Protected,
		})
	})
	if err != nil {
		return nil, s.storeError("Provision", err)
	}
	return account, nil
}

func (s *Service) get(ctx context.Context, op, id string) (*domain.Account, error) {
	account, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return s.accountRepo.Get(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Warn("%s: account=%s not found", op, id)
			return nil, ErrAccountNotFound
		}
		return nil, s.storeError(op, err)
	}
	return account, nil
}

func (s *Service) checkAdmin(ctx context.Context, callerID string) (*domain.Account, error) {
	caller, err := s.get(ctx, "checkAdmin", callerID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	if !caller.IsAdmin() {
		s.logger.Warn("checkAdmin: caller id=%s is not admin", callerID)
		return nil, ErrAccessDenied
	}
	return caller, nil
}

func (s *Service) storeError(op string, err error) error {
	if errors.Is(err, deadline.ErrTimeout) {
		s.logger.Error("%s: store call timed out: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
