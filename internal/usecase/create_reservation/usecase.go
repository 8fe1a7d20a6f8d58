package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/notifications"
	"github.com/m04kA/bookit/pkg/deadline"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	policyRepo      PolicyRepository
	accountRepo     AccountRepository
	notifier        Notifier
	metrics         MetricsRecorder
	callTimeout     time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	policyRepo PolicyRepository,
	accountRepo AccountRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		accountRepo:     accountRepo,
		notifier:        notifier,
		metrics:         metrics,
		callTimeout:     opts.CallTimeout,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Политика читается один раз; проверка занятости слота и вставка атомарны на стороне хранилища.
// Ошибки уведомлений не отменяют созданное бронирование и возвращаются в отчёте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, date=%s, time=%s", req.UserID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	slot := domain.Slot{Date: req.Date, Time: req.Time}

	// 2. Аккаунт заявителя: контактные данные по умолчанию
	account, err := deadline.Call(ctx, uc.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return uc.accountRepo.Get(ctx, req.UserID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			uc.logger.Warn("CreateReservation: account id=%s not found", req.UserID)
			return nil, ErrAccountNotFound
		}
		return nil, uc.storeError("get account", err)
	}
	fillFromAccount(req, account)

	// 3. Политика читается один раз на всю операцию
	policy, err := deadline.Call(ctx, uc.callTimeout, uc.policyRepo.Get)
	if err != nil {
		return nil, uc.storeError("get policy", err)
	}

	// 4. Недоступный слот отклоняется до любой записи
	if policy.IsUnavailable(slot) {
		uc.logger.Warn("CreateReservation: slot %s is blacked out", slot)
		return nil, fmt.Errorf("%w: %s", ErrSlotBlackedOut, slot)
	}

	// 5. Сохраняем бронирование
	reservation := &domain.Reservation{
		UserID:       req.UserID,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Date:         req.Date,
		Time:         req.Time,
		Status:       policy.InitialStatus(),
	}

	exclusive := !policy.AllowMultipleReservations
	created, err := deadline.Call(ctx, uc.callTimeout, func(ctx context.Context) (*domain.Reservation, error) {
		return uc.reservationRepo.CreateInSlot(ctx, reservation, exclusive)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.logger.Warn("CreateReservation: slot %s already booked", slot)
			return nil, fmt.Errorf("%w: %s", ErrSlotAlreadyBooked, slot)
		}
		return nil, uc.storeError("create reservation", err)
	}

	uc.metrics.ReservationCreated(string(created.Status))
	uc.logger.Info("CreateReservation: created reservation id=%s status=%s", created.ID, created.Status)

	// 6. Уведомляем заявителя и всех администраторов; неполная запись не отменяет бронирование
	if missing := created.MissingNotificationFields(); len(missing) > 0 {
		uc.logger.Warn("CreateReservation: reservation id=%s missing %v, notification skipped", created.ID, missing)
		return &Response{Reservation: created, Notification: notifications.Incomplete(created)}, nil
	}

	recipients := []string{created.ContactEmail}
	admins, err := deadline.Call(ctx, uc.callTimeout, func(ctx context.Context) ([]*domain.Account, error) {
		return uc.accountRepo.ListByType(ctx, domain.AccountTypeAdmin)
	})
	var adminsErr error
	if err != nil {
		adminsErr = fmt.Errorf("list admins: %w", err)
		uc.logger.Error("CreateReservation: failed to list admins for reservation id=%s: %v", created.ID, err)
	} else {
		recipients = append(recipients, adminEmails(admins)...)
	}

	report := uc.notifier.Dispatch(ctx, domain.TemplateForStatus(created.Status), created, recipients)
	if adminsErr != nil {
		report.Err = errors.Join(report.Err, adminsErr)
	}

	return &Response{
		Reservation:  created,
		Notification: report,
	}, nil
}

func (uc *UseCase) storeError(op string, err error) error {
	if errors.Is(err, deadline.ErrTimeout) {
		uc.logger.Error("CreateReservation: %s timed out: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	uc.logger.Error("CreateReservation: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}
