package policy

import (
	"context"

	"github.com/m04kA/bookit/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

// TxManager выполняет функцию внутри транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
