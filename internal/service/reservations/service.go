package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/service/reservations/models"
	"github.com/m04kA/bookit/pkg/deadline"
)

// Service сервис чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	accountRepo     AccountRepository
	callTimeout     time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	accountRepo AccountRepository,
	callTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		callTimeout:     callTimeout,
		logger:          logger,
	}
}

// List возвращает бронирования на дату в порядке создания
// Доступно только администраторам
// Разбиение строго по confirmed: отклонённые попадают в unconfirmed
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) ([]*domain.Reservation, error) {
	s.logger.Info("List: fetching reservations date=%s partition=%s for caller=%s", req.Date, req.Partition, req.CallerID)

	partition, err := domain.ParsePartition(req.Partition)
	if err != nil {
		s.logger.Warn("List: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		s.logger.Warn("List: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: date must be %s", ErrInvalidInput, domain.DateFormat)
	}

	if err := s.checkAdmin(ctx, req.CallerID); err != nil {
		return nil, err
	}

	list, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) ([]*domain.Reservation, error) {
		return s.reservationRepo.ListByDate(ctx, req.Date)
	})
	if err != nil {
		return nil, s.storeError("List", err)
	}

	out := partition.Filter(list)
	s.logger.Info("List: fetched %d of %d reservations date=%s", len(out), len(list), req.Date)
	return out, nil
}

// ListForUser возвращает бронирования пользователя
func (s *Service) ListForUser(ctx context.Context, req *models.ListUserReservationsRequest) ([]*domain.Reservation, error) {
	s.logger.Info("ListForUser: fetching reservations for user=%s partition=%s", req.UserID, req.Partition)

	partition, err := domain.ParsePartition(req.Partition)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) ([]*domain.Reservation, error) {
		return s.reservationRepo.ListByUser(ctx, req.UserID)
	})
	if err != nil {
		return nil, s.storeError("ListForUser", err)
	}

	return partition.Filter(list), nil
}

// Get получает бронирование по ID
// Пользователь видит только своё бронирование, администратор любое
func (s *Service) Get(ctx context.Context, callerID, id string) (*domain.Reservation, error) {
	s.logger.Info("Get: fetching reservation id=%s for caller=%s", id, callerID)

	r, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Reservation, error) {
		return s.reservationRepo.GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Warn("Get: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		return nil, s.storeError("Get", err)
	}

	if r.UserID == callerID {
		return r, nil
	}
	if err := s.checkAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) checkAdmin(ctx context.Context, callerID string) error {
	caller, err := deadline.Call(ctx, s.callTimeout, func(ctx context.Context) (*domain.Account, error) {
		return s.accountRepo.Get(ctx, callerID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Warn("checkAdmin: caller id=%s has no account", callerID)
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
