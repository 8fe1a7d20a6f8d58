package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// AccountRepository каталог аккаунтов в памяти
type AccountRepository struct {
	mu    sync.Mutex
	items map[string]*domain.Account
	now   func() time.Time
}

// NewAccountRepository создает пустой каталог
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		items: make(map[string]*domain.Account),
		now:   time.Now,
	}
}

// Get получает аккаунт по ID
func (r *AccountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrAccountNotFound, id)
	}
	out := *acc
	return &out, nil
}

// Ensure создает аккаунт, если его ещё нет, и возвращает сохранённую запись
func (r *AccountRepository) Ensure(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if acc, ok := r.items[account.ID]; ok {
		out := *acc
		return &out, nil
	}
	return r.put(account), nil
}

// Upsert создает или полностью перезаписывает аккаунт (используется при провиженинге)
func (r *AccountRepository) Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt := time.Time{}
	if acc, ok := r.items[account.ID]; ok {
		createdAt = acc.CreatedAt
	}
	out := r.put(account)
	if !createdAt.IsZero() {
		r.items[account.ID].CreatedAt = createdAt
		out.CreatedAt = createdAt
	}
	return out, nil
}

// ListAll возвращает все аккаунты, упорядоченные по дате создания
func (r *AccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	return r.list(ctx, func(*domain.Account) bool { return true })
}

// ListByType возвращает аккаунты с указанной ролью
func (r *AccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	return r.list(ctx, func(a *domain.Account) bool { return a.Type == accountType })
}

// ListRequestingAdmin возвращает аккаунты с активной заявкой на права администратора
func (r *AccountRepository) ListRequestingAdmin(ctx context.Context) ([]*domain.Account, error) {
	return r.list(ctx, func(a *domain.Account) bool { return a.RequestAdminAccess })
}

// SetRole меняет роль аккаунта
func (r *AccountRepository) SetRole(ctx context.Context, id string, accountType domain.AccountType) error {
	return r.update(ctx, id, func(a *domain.Account) { a.Type = accountType })
}

// SetRequestAdminAccess устанавливает флаг заявки на права администратора
func (r *AccountRepository) SetRequestAdminAccess(ctx context.Context, id string, requested bool) error {
	return r.update(ctx, id, func(a *domain.Account) { a.RequestAdminAccess = requested })
}

// CompleteAdminRequest снимает флаг заявки и при grant=true назначает роль admin
func (r *AccountRepository) CompleteAdminRequest(ctx context.Context, id string, grant bool) error {
	return r.update(ctx, id, func(a *domain.Account) {
		if grant {
			a.Type = domain.AccountTypeAdmin
		}
		a.RequestAdminAccess = false
	})
}

// UpdateProfile обновляет имя и телефон
func (r *AccountRepository) UpdateProfile(ctx context.Context, id string, name, phone string) (*domain.Account, error) {
	if err := r.update(ctx, id, func(a *domain.Account) {
		a.Name = name
		a.Phone = phone
	}); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// put вызывается под мьютексом
func (r *AccountRepository) put(account *domain.Account) *domain.Account {
	stored := *account
	now := r.now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = &stored

	out := stored
	return &out
}

func (r *AccountRepository) update(ctx context.Context, id string, fn func(*domain.Account)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: id=%s", domain.ErrAccountNotFound, id)
	}
	fn(acc)
	acc.UpdatedAt = r.now().UTC()
	return nil
}

func (r *AccountRepository) list(ctx context.Context, match func(*domain.Account) bool) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Account, 0)
	for _, acc := range r.items {
		if match(acc) {
			c := *acc
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
