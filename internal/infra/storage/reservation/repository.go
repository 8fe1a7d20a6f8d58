package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/pkg/dbmetrics"
	"github.com/m04kA/bookit/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"name",
	"contact_email",
	"contact_phone",
	"reservation_date",
	"reservation_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
	tx TxManager
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, tx TxManager) *Repository {
	return &Repository{db: db, tx: tx}
}

// CreateInSlot создает бронирование внутри транзакции.
// Записи на один слот сериализуются через pg_advisory_xact_lock по ключу слота,
// поэтому проверка занятости и вставка не могут перемешаться между запросами.
// При exclusive=true и занятом слоте возвращает domain.ErrSlotTaken.
func (r *Repository) CreateInSlot(ctx context.Context, res *domain.Reservation, exclusive bool) (*domain.Reservation, error) {
	var created *domain.Reservation

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, r.db)

		if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", res.Slot().Key()); err != nil {
			return fmt.Errorf("%w: CreateInSlot - slot=%s: %v", ErrLockSlot, res.Slot(), err)
		}

		if exclusive {
			taken, err := r.slotTaken(ctx, executor, res.Slot())
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: %s", domain.ErrSlotTaken, res.Slot())
			}
		}

		stored, err := r.insert(ctx, executor, res)
		if err != nil {
			return err
		}
		created = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *Repository) slotTaken(ctx context.Context, executor DBExecutor, slot domain.Slot) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(squirrel.Eq{"reservation_date": slot.Date, "reservation_time": slot.Time}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: slotTaken - build exists query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: slotTaken - scan exists: %v", ErrScanRow, err)
	}
	return exists, nil
}

func (r *Repository) insert(ctx context.Context, executor DBExecutor, res *domain.Reservation) (*domain.Reservation, error) {
	stored := *res
	stored.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"user_id",
			"name",
			"contact_email",
			"contact_phone",
			"reservation_date",
			"reservation_time",
			"status",
		).
		Values(
			stored.ID,
			stored.UserID,
			stored.Name,
			stored.ContactEmail,
			stored.ContactPhone,
			stored.Date,
			stored.Time,
			stored.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stored.CreatedAt, &stored.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: insert - execute insert: %v", ErrExecQuery, err)
	}

	return &stored, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListByDate возвращает бронирования на дату в порядке создания
func (r *Repository) ListByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListByDate", squirrel.Eq{"reservation_date": date})
}

// ListByUser возвращает бронирования пользователя в порядке создания
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListByUser", squirrel.Eq{"user_id": userID})
}

// SetStatus обновляет статус бронирования и возвращает обновлённую запись
func (r *Repository) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	return res, nil
}

// CountByUser возвращает количество бронирований каждого пользователя
func (r *Repository) CountByUser(ctx context.Context) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "COUNT(*)").
		From(table).
		GroupBy("user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByUser - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			userID string
			total  int
		)
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, fmt.Errorf("%w: CountByUser - scan row: %v", ErrScanRow, err)
		}
		counts[userID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByUser - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Name,
		&res.ContactEmail,
		&res.ContactPhone,
		&res.Date,
		&res.Time,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}
