package reservation

import (
	"context"

	"github.com/m04kA/bookit/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxManager выполняет функцию внутри транзакции (реализуется *txmanager.TransactionManager)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
