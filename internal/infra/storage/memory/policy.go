package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// PolicyRepository хранилище глобальной политики бронирования в памяти
type PolicyRepository struct {
	mu     sync.Mutex
	policy *domain.BookingPolicy
	now    func() time.Time
}

// NewPolicyRepository создает хранилище; политика по умолчанию создаётся при первом чтении
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{now: time.Now}
}

// Get возвращает текущую политику
func (r *PolicyRepository) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current().Clone(), nil
}

// Patch применяет частичное обновление (отсутствующие поля сохраняются)
func (r *PolicyRepository) Patch(ctx context.Context, patch domain.PolicyPatch) (*domain.BookingPolicy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	policy := r.current()
	patch.Apply(policy)
	policy.UpdatedAt = r.now().UTC()
	return policy.Clone(), nil
}

// AddUnavailableTime добавляет слот в список недоступных; повторное добавление ничего не меняет
func (r *PolicyRepository) AddUnavailableTime(ctx context.Context, slot domain.Slot) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	policy := r.current()
	if policy.IsUnavailable(slot) {
		return false, nil
	}
	policy.UnavailableTimes = append(policy.UnavailableTimes, slot)
	policy.UpdatedAt = r.now().UTC()
	return true, nil
}

// RemoveUnavailableTime удаляет слот из списка недоступных по ключу
func (r *PolicyRepository) RemoveUnavailableTime(ctx context.Context, slot domain.Slot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	policy := r.current()
	for i, u := range policy.UnavailableTimes {
		if u == slot {
			policy.UnavailableTimes = append(policy.UnavailableTimes[:i], policy.UnavailableTimes[i+1:]...)
			policy.UpdatedAt = r.now().UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrUnavailableTimeNotFound, slot)
}

// current вызывается под мьютексом
func (r *PolicyRepository) current() *domain.BookingPolicy {
	if r.policy == nil {
		r.policy = domain.DefaultBookingPolicy()
		r.policy.UpdatedAt = r.now().UTC()
	}
	return r.policy
}
