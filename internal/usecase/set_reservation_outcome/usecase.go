package set_reservation_outcome

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/notifications"
	"github.com/m04kA/bookit/pkg/deadline"
)

// UseCase use case для решения администратора по бронированию
type UseCase struct {
	reservationRepo ReservationRepository
	accountRepo     AccountRepository
	notifier        Notifier
	metrics         MetricsRecorder
	callTimeout     time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	accountRepo AccountRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		notifier:        notifier,
		metrics:         metrics,
		callTimeout:     opts.CallTimeout,
		logger:          logger,
	}
}

// Execute подтверждает или отклоняет бронирование.
// Повтор текущего решения ничего не меняет и не рассылает писем.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetReservationOutcome: caller=%s, reservation=%s, outcome=%s", req.CallerID, req.ReservationID, req.Outcome)

	// 1. Валидация входных данных
	outcome, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SetReservationOutcome: validation failed: %v", err)
		return nil, err
	}

	// 2. Решение принимает только администратор
	if err := uc.checkAdmin(ctx, req.CallerID); err != nil {
		return nil, err
	}

	// 3. Текущее состояние бронирования
	current, err := deadline.Call(ctx, uc.callTimeout, func(ctx context.Context) (*domain.Reservation, error) {
		return uc.reservationRepo.GetByID(ctx, req.ReservationID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			uc.logger.Warn("SetReservationOutcome: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		return nil, uc.storeError("get reservation", err)
	}

	target := outcome.Status()
	if !current.CanTransitionTo(target) {
		uc.logger.Warn("SetReservationOutcome: reservation id=%s cannot move %s -> %s", current.ID, current.Status, target)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
	}

	if current.Status == target {
		uc.logger.Info("SetReservationOutcome: reservation id=%s already %s", current.ID, target)
		return &Response{Reservation: current}, nil
	}

	// 4. Сохраняем статус; хранилище возвращает перечитанную запись
	updated, err := deadline.Call(ctx, uc.callTimeout, func(ctx context.Context) (*domain.Reservation, error) {
		return uc.reservationRepo.SetStatus(ctx, current.ID, target)
	})
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, uc.storeError("set status", err)
	}

	uc.metrics.OutcomeApplied(string(outcome))
	uc.logger.Info("SetReservationOutcome: reservation id=%s is now %s", updated.ID, updated.Status)

	// 5. Уведомляем заявителя; неполная запись не откатывает изменение статуса
	if missing := updated.MissingNotificationFields(); len(missing) > 0 {
		uc.logger.Warn("SetReservationOutcome: reservation id=%s missing %v, notification skipped", updated.ID, missing)
		return &Response{Reservation: updated, Notification: notifications.Incomplete(updated)}, nil
	}

	report := uc.notifier.Dispatch(ctx, domain.TemplateForStatus(updated.Status), updated, []string{updated.ContactEmail})

	return &Response{
		Reservation:  updated,
		Notification: report,
	}, nil
}

func (uc *UseCase) checkAdmin(ctx context.Context, callerID string) error {
	caller, err := deadline.Call(ctx, uc.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return uc.accountRepo.Get(ctx, callerID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			uc.logger.Warn("SetReservationOutcome: caller id=%s has no account", callerID)
			return ErrAccessDenied
		}
		return uc.storeError("get caller", err)
	}

	if !caller.IsAdmin() {
		uc.logger.Warn("SetReservationOutcome: caller id=%s is not admin", callerID)
		return ErrAccessDenied
	}
	return nil
}

func (uc *UseCase) storeError(op string, err error) error {
	if errors.Is(err, deadline.ErrTimeout) {
		uc.logger.Error("SetReservationOutcome: %s timed out: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	uc.logger.Error("SetReservationOutcome: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}
