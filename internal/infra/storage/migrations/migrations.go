// Package migrations применяет схему PostgreSQL.
// Файлы *.sql применяются по порядку имени, каждый не более одного раза.
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/bookit/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// ErrApply возвращается при ошибке применения миграции
var ErrApply = errors.New("migrations: failed to apply migration")

// TxRunner выполняет функцию в транзакции (реализуется *txmanager.TransactionManager)
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Names возвращает имена файлов миграций в порядке применения
func Names() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Up применяет все ещё не применённые миграции; возвращает число применённых
func Up(ctx context.Context, db dbmetrics.DBExecutor, tx TxRunner, log Logger) (int, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApply, err)
	}

	names, err := Names()
	if err != nil {
		return 0, fmt.Errorf("%w: list files: %v", ErrApply, err)
	}

	applied := 0
	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("%w: read %s: %v", ErrApply, name, err)
		}

		var done bool
		err = tx.Do(ctx, func(ctx context.Context) error {
			executor := dbmetrics.GetExecutor(ctx, db)

			var exists bool
			if err := executor.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name,
			).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return nil
			}

			if _, err := executor.ExecContext(ctx, string(body)); err != nil {
				return err
			}
			if _, err := executor.ExecContext(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1)`, name,
			); err != nil {
				return err
			}
			done = true
			return nil
		})
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApply, name, err)
		}

		if done {
			applied++
			log.Info("Migrations: applied version=%s", name)
		}
	}

	return applied, nil
}
