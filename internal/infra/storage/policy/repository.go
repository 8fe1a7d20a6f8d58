package policy

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/pkg/dbmetrics"
	"github.com/m04kA/bookit/pkg/psqlbuilder"
)

const (
	policyTable      = "booking_policy"
	unavailableTable = "unavailable_times"

	// policyRowID единственная строка политики (CHECK id = 1)
	policyRowID = 1
)

// Repository репозиторий глобальной политики бронирования в PostgreSQL
type Repository struct {
	db DBExecutor
	tx TxManager
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor, tx TxManager) *Repository {
	return &Repository{db: db, tx: tx}
}

// Get возвращает текущую политику вместе со списком недоступных слотов.
// Строка политики создаётся со значениями по умолчанию, если её ещё нет.
func (r *Repository) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	var policy *domain.BookingPolicy

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		if err := r.ensure(ctx); err != nil {
			return err
		}
		p, err := r.read(ctx)
		if err != nil {
			return err
		}
		policy = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return policy, nil
}

// Patch обновляет только переданные поля политики
func (r *Repository) Patch(ctx context.Context, patch domain.PolicyPatch) (*domain.BookingPolicy, error) {
	var policy *domain.BookingPolicy

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		if err := r.ensure(ctx); err != nil {
			return err
		}

		if !patch.IsEmpty() {
			update := psqlbuilder.Update(policyTable).
				Set("updated_at", squirrel.Expr("NOW()")).
				Where(squirrel.Eq{"id": policyRowID})
			if patch.AutoConfirm != nil {
				update = update.Set("auto_confirm", *patch.AutoConfirm)
			}
			if patch.AllowMultipleReservations != nil {
				update = update.Set("allow_multiple_reservations", *patch.AllowMultipleReservations)
			}

			query, args, err := update.ToSql()
			if err != nil {
				return fmt.Errorf("%w: Patch - build update query: %v", ErrBuildQuery, err)
			}
			if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: Patch - execute update: %v", ErrExecQuery, err)
			}
		}

		p, err := r.read(ctx)
		if err != nil {
			return err
		}
		policy = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return policy, nil
}

// AddUnavailableTime добавляет слот в список недоступных.
// Возвращает false, если слот уже был в списке.
func (r *Repository) AddUnavailableTime(ctx context.Context, slot domain.Slot) (bool, error) {
	var added bool

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, r.db)

		if err := r.ensure(ctx); err != nil {
			return err
		}

		query, args, err := psqlbuilder.Insert(unavailableTable).
			Columns("slot_date", "slot_time").
			Values(slot.Date, slot.Time).
			Suffix("ON CONFLICT (slot_date, slot_time) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: AddUnavailableTime - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: AddUnavailableTime - execute insert: %v", ErrExecQuery, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: AddUnavailableTime - get rows affected: %v", ErrExecQuery, err)
		}
		added = affected > 0

		if added {
			return r.touch(ctx)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return added, nil
}

// RemoveUnavailableTime удаляет слот из списка недоступных
func (r *Repository) RemoveUnavailableTime(ctx context.Context, slot domain.Slot) error {
	return r.tx.Do(ctx, func(ctx context.Context) error {
		query, args, err := psqlbuilder.Delete(unavailableTable).
			Where(squirrel.Eq{"slot_date": slot.Date, "slot_time": slot.Time}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: RemoveUnavailableTime - build delete query: %v", ErrBuildQuery, err)
		}

		result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: RemoveUnavailableTime - execute delete: %v", ErrExecQuery, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: RemoveUnavailableTime - get rows affected: %v", ErrExecQuery, err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrUnavailableTimeNotFound, slot)
		}

		return r.touch(ctx)
	})
}

func (r *Repository) ensure(ctx context.Context) error {
	query, args, err := psqlbuilder.Insert(policyTable).
		Columns("id", "auto_confirm", "allow_multiple_reservations").
		Values(policyRowID, domain.DefaultAutoConfirm, domain.DefaultAllowMultipleReservations).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ensure - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ensure - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) touch(ctx context.Context) error {
	query, args, err := psqlbuilder.Update(policyTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: touch - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: touch - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) read(ctx context.Context) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("auto_confirm", "allow_multiple_reservations", "updated_at").
		From(policyTable).
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: read - build select query: %v", ErrBuildQuery, err)
	}

	policy := domain.DefaultBookingPolicy()
	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.AutoConfirm,
		&policy.AllowMultipleReservations,
		&policy.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: read - scan policy: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("slot_date", "slot_time").
		From(unavailableTable).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: read - build unavailable times query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: read - execute unavailable times query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(&slot.Date, &slot.Time); err != nil {
			return nil, fmt.Errorf("%w: read - scan unavailable time: %v", ErrScanRow, err)
		}
		policy.UnavailableTimes = append(policy.UnavailableTimes, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read - rows error: %v", ErrScanRow, err)
	}

	return policy, nil
}
