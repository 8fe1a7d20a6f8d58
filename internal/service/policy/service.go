package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/pkg/deadline"
)

// Service сервис для работы с политикой бронирования
type Service struct {
	policyRepo  PolicyRepository
	accountRepo AccountRepository
	callTimeout time.Duration
	logger      Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(policyRepo PolicyRepository, accountRepo AccountRepository, callTimeout time.Duration, logger Logger) *Service {
	return &Service{
		policyRepo:  policyRepo,
		accountRepo: accountRepo,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// Get возвращает текущую политику (публичное чтение)
func (s *Service) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	policy, err := deadline.Call(ctx, s.callTimeout, s.policyRepo.Get)
	if err != nil {
		return nil, s.storeError("Get", err)
	}
	return policy, nil
}

// Patch частично обновляет флаги политики; отсутствующие поля сохраняются
func (s *Service) Patch(ctx context.Context, callerID string, patch domain.PolicyPatch) (*domain.BookingPolicy, error) {
	s.logger.Info("Patch: updating booking policy by caller=%s", callerID)

	if err := s.checkAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	// Пустой патч ничего не меняет, просто возвращаем текущее состояние
	if patch.IsEmpty() {
		return s.Get(ctx)
	}

	policy, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.BookingPolicy, error) {
		return s.policyRepo.Patch(ctx, patch)
	})
	if err != nil {
		return nil, s.storeError("Patch", err)
	}

	s.logger.Info("Patch: policy updated autoConfirm=%t allowMultiple=%t", policy.AutoConfirm, policy.AllowMultipleReservations)
	return policy, nil
}

// AddUnavailableTime добавляет слот в список недоступных.
// Повторное добавление не является ошибкой и возвращает added=false.
func (s *Service) AddUnavailableTime(ctx context.Context, callerID string, slot domain.Slot) (bool, error) {
	s.logger.Info("AddUnavailableTime: slot=%s caller=%s", slot, callerID)

	if err := slot.Validate(); err != nil {
		s.logger.Warn("AddUnavailableTime: %v", err)
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.checkAdmin(ctx, callerID); err != nil {
		return false, err
	}

	added, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (bool, error) {
		return s.policyRepo.AddUnavailableTime(ctx, slot)
	})
	if err != nil {
		return false, s.storeError("AddUnavailableTime", err)
	}

	if !added {
		s.logger.Info("AddUnavailableTime: slot=%s already unavailable", slot)
	}
	return added, nil
}

// RemoveUnavailableTime удаляет слот из списка недоступных по ключу (date, time)
func (s *Service) RemoveUnavailableTime(ctx context.Context, callerID string, slot domain.Slot) error {
	s.logger.Info("RemoveUnavailableTime: slot=%s caller=%s", slot, callerID)

	if err := slot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.checkAdmin(ctx, callerID); err != nil {
		return err
	}

	err := deadline.Run(ctx, s.callTimeout, func(ctx context.Context) error {
		return s.policyRepo.RemoveUnavailableTime(ctx, slot)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnavailableTimeNotFound) {
			s.logger.Warn("RemoveUnavailableTime: slot=%s not found", slot)
			return fmt.Errorf("%w: %s", ErrUnavailableTimeNotFound, slot)
		}
		return s.storeError("RemoveUnavailableTime", err)
	}
	return nil
}

func (s *Service) checkAdmin(ctx context.Context, callerID string) error {
	caller, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return s.accountRepo.Get(ctx, callerID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return ErrAccessDenied
		}
		return s.storeError("checkAdmin", err)
	}
	if !caller.IsAdmin() {
		s.logger.Warn("checkAdmin: caller id=%s is not admin", callerID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) storeError(op string, err error) error {
	if errors.Is(err, deadline.ErrTimeout) {
		s.logger.Error("%s: store call timed out: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
