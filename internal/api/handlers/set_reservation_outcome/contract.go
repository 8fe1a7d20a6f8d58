package set_reservation_outcome

import (
	"context"

	setOutcome "github.com/m04kA/bookit/internal/usecase/set_reservation_outcome"
)

type SetOutcomeUseCase interface {
	Execute(ctx context.Context, req *setOutcome.Request) (*setOutcome.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
