package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/pkg/dbmetrics"
	"github.com/m04kA/bookit/pkg/psqlbuilder"
)

const table = "accounts"

var columns = []string{
	"id",
	"email",
	"phone",
	"name",
	"user_type",
	"request_admin_access",
	"protected",
	"created_at",
	"updated_at",
}

// Repository каталог аккаунтов в PostgreSQL
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аккаунтов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает аккаунт по ID
func (r *Repository) Get(ctx context.Context, id string) (*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	acc, err := scanAccount(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan account: %v", ErrScanRow, err)
	}

	return acc, nil
}

// Ensure создает аккаунт при первом входе; существующая запись не меняется
func (r *Repository) Ensure(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// DO UPDATE без изменений нужен, чтобы RETURNING вернул существующую строку
	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "email", "phone", "name", "user_type").
		Values(acc.ID, acc.Email, acc.Phone, acc.Name, acc.Type).
		Suffix("ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Ensure - build insert query: %v", ErrBuildQuery, err)
	}

	stored, err := scanAccount(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Ensure - execute insert: %v", ErrExecQuery, err)
	}

	return stored, nil
}

// Upsert создает или перезаписывает аккаунт целиком (провиженинг из CLI)
func (r *Repository) Upsert(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "email", "phone", "name", "user_type", "request_admin_access", "protected").
		Values(acc.ID, acc.Email, acc.Phone, acc.Name, acc.Type, acc.RequestAdminAccess, acc.Protected).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			name = EXCLUDED.name,
			user_type = EXCLUDED.user_type,
			request_admin_access = EXCLUDED.request_admin_access,
			protected = EXCLUDED.protected,
			updated_at = NOW()
		RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	stored, err := scanAccount(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return stored, nil
}

// ListAll возвращает все аккаунты
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	return r.list(ctx, "ListAll", nil)
}

// ListByType возвращает аккаунты с указанной ролью
func (r *Repository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	return r.list(ctx, "ListByType", squirrel.Eq{"user_type": accountType})
}

// ListRequestingAdmin возвращает аккаунты с активной заявкой на права администратора
func (r *Repository) ListRequestingAdmin(ctx context.Context) ([]*domain.Account, error) {
	return r.list(ctx, "ListRequestingAdmin", squirrel.Eq{"request_admin_access": true})
}

// SetRole меняет роль аккаунта
func (r *Repository) SetRole(ctx context.Context, id string, accountType domain.AccountType) error {
	return r.update(ctx, "SetRole", id, map[string]interface{}{"user_type": accountType})
}

// CompleteAdminRequest одним UPDATE снимает флаг заявки и при grant=true назначает роль admin
func (r *Repository) CompleteAdminRequest(ctx context.Context, id string, grant bool) error {
	values := map[string]interface{}{"request_admin_access": false}
	if grant {
		values["user_type"] = domain.AccountTypeAdmin
	}
	return r.update(ctx, "CompleteAdminRequest", id, values)
}

// SetRequestAdminAccess устанавливает флаг заявки на права администратора
func (r *Repository) SetRequestAdminAccess(ctx context.Context, id string, requested bool) error {
	return r.update(ctx, "SetRequestAdminAccess", id, map[string]interface{}{"request_admin_access": requested})
}

// UpdateProfile обновляет имя и телефон
func (r *Repository) UpdateProfile(ctx context.Context, id string, name, phone string) (*domain.Account, error) {
	if err := r.update(ctx, "UpdateProfile", id, map[string]interface{}{"name": name, "phone": phone}); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *Repository) update(ctx context.Context, op string, id string, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%s", domain.ErrAccountNotFound, id)
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan account: %v", ErrScanRow, op, err)
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		acc                  domain.Account
		phone, name          sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&acc.ID,
		&acc.Email,
		&phone,
		&name,
		&acc.Type,
		&acc.RequestAdminAccess,
		&acc.Protected,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc.Phone = phone.String
	acc.Name = name.String
	acc.CreatedAt = createdAt.Time
	acc.UpdatedAt = updatedAt.Time
	return &acc, nil
}
