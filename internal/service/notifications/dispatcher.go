package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/pkg/deadline"
)

// Dispatcher рассылает одно уведомление нескольким адресатам и собирает отчёт
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	metrics Recorder
	logger  Logger
}

// NewDispatcher создает диспетчер; timeout ограничивает каждую отправку
func NewDispatcher(sender Sender, timeout time.Duration, metrics Recorder, logger Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Dispatch отправляет письмо kind каждому адресату (без повторов и пустых адресов).
// Ошибки не прерывают рассылку и попадают в отчёт.
func (d *Dispatcher) Dispatch(ctx context.Context, kind domain.TemplateKind, r *domain.Reservation, recipients []string) domain.NotificationReport {
	var (
		report domain.NotificationReport
		errs   []error
	)

	for _, to := range Recipients(recipients...) {
		err := deadline.Run(ctx, d.timeout, func(ctx context.Context) error {
			return d.sender.Send(ctx, kind, to, domain.FieldsFor(r, to))
		})
		d.metrics.NotificationSent(string(kind), err)

		if err != nil {
			report.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", to, err))
			d.logger.Warn("Dispatch: kind=%s reservation=%s recipient=%s failed: %v", kind, r.ID, to, err)
			continue
		}
		report.Sent++
	}

	if len(errs) > 0 {
		report.Err = fmt.Errorf("%w: %w", ErrNotificationFailed, errors.Join(errs...))
	}

	d.logger.Info("Dispatch: kind=%s reservation=%s sent=%d failed=%d", kind, r.ID, report.Sent, report.Failed)
	return report
}

// Recipients убирает пустые адреса и повторы (без учёта регистра), сохраняя порядок
func Recipients(addrs ...string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Incomplete возвращает отчёт для бронирования, по которому письмо собрать нельзя
func Incomplete(r *domain.Reservation) domain.NotificationReport {
	return domain.NotificationReport{
		Err: fmt.Errorf("%w: reservation=%s missing %s",
			ErrIncompleteRecord, r.ID, strings.Join(r.MissingNotificationFields(), ", ")),
	}
}
