package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/bookit/internal/domain"
)

// ReservationRepository хранилище бронирований в памяти процесса
// Проверка конфликта слота и вставка выполняются под одним мьютексом
type ReservationRepository struct {
	mu    sync.Mutex
	items []*domain.Reservation
	byID  map[string]*domain.Reservation
	now   func() time.Time
}

// NewReservationRepository создает пустое хранилище бронирований
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		byID: make(map[string]*domain.Reservation),
		now:  time.Now,
	}
}

// CreateInSlot сохраняет бронирование
// При exclusive=true возвращает domain.ErrSlotTaken, если на слот уже есть бронирование
func (r *ReservationRepository) CreateInSlot(ctx context.Context, reservation *domain.Reservation, exclusive bool) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if exclusive {
		for _, existing := range r.items {
			if existing.Date == reservation.Date && existing.Time == reservation.Time {
				return nil, fmt.Errorf("%w: %s", domain.ErrSlotTaken, reservation.Slot())
			}
		}
	}

	stored := *reservation
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	r.items = append(r.items, &stored)
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}
	out := *stored
	return &out, nil
}

// ListByDate возвращает бронирования на дату в порядке создания
func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	return r.list(ctx, func(res *domain.Reservation) bool { return res.Date == date })
}

// ListByUser возвращает бронирования пользователя
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return r.list(ctx, func(res *domain.Reservation) bool { return res.UserID == userID })
}

// SetStatus обновляет статус и возвращает обновлённую запись
func (r *ReservationRepository) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}
	stored.Status = status
	stored.UpdatedAt = r.now().UTC()

	out := *stored
	return &out, nil
}

// CountByUser возвращает количество бронирований по каждому пользователю
func (r *ReservationRepository) CountByUser(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int)
	for _, res := range r.items {
		counts[res.UserID]++
	}
	return counts, nil
}

func (r *ReservationRepository) list(ctx context.Context, match func(*domain.Reservation) bool) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.items {
		if match(res) {
			c := *res
			out = append(out, &c)
		}
	}
	return out, nil
}
