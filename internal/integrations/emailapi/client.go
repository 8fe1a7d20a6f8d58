package emailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// DefaultEndpoint адрес отправки писем
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config параметры доступа к почтовому API
type Config struct {
	Endpoint    string
	ServiceID   string
	PublicKey   string
	AccessToken string

	// Templates идентификатор шаблона для каждого вида уведомления
	Templates map[domain.TemplateKind]string
}

// Client клиент транзакционного почтового API
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет одно письмо по шаблону kind на адрес recipient
func (c *Client) Send(ctx context.Context, kind domain.TemplateKind, recipient string, fields domain.NotificationFields) error {
	templateID, ok := c.cfg.Templates[kind]
	if !ok || templateID == "" {
		return fmt.Errorf("%w: kind=%s", ErrUnknownTemplate, kind)
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  templateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.AccessToken,
		TemplateParams: templateParams{
			ToName:          fields.ToName,
			ReservationDate: fields.ReservationDate,
			ReservationTime: fields.ReservationTime,
			UserEmail:       recipient,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Warn("EmailAPI.Send: rejected kind=%s status=%d body=%s", kind, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	c.log.Info("EmailAPI.Send: delivered kind=%s date=%s time=%s", kind, fields.ReservationDate, fields.ReservationTime)
	return nil
}

// LogSender пишет уведомления в лог вместо отправки (email.enabled = false)
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя, который только логирует
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Send логирует уведомление
func (s *LogSender) Send(_ context.Context, kind domain.TemplateKind, recipient string, fields domain.NotificationFields) error {
	s.log.Info("EmailAPI.LogSender: kind=%s to=%s name=%s date=%s time=%s",
		kind, recipient, fields.ToName, fields.ReservationDate, fields.ReservationTime)
	return nil
}
