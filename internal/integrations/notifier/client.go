package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

const (
	eventIDHeader = "X-Event-ID"
	maxErrorBody  = 512
)

// Client отправляет вебхуки о смене статуса заявок внешней системе.
// С пустым URL клиент выключен и ничего не отправляет.
type Client struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента вебхуков
func NewClient(url string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled сообщает, настроен ли адрес получателя
func (c *Client) Enabled() bool {
	return c.url != ""
}

// NotifyStatusChange отправляет событие о смене статуса.
// Вызывающий код только логирует ошибку: переход статуса уже зафиксирован
func (c *Client) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	if !c.Enabled() {
		return nil
	}

	event := newStatusChangeEvent(uuid.NewString(), change)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(eventIDHeader, event.EventID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Notifier: failed to deliver event=%s for %s request id=%d: %v",
			event.EventID, event.Kind, event.RequestID, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("Notifier: delivered event=%s (%s request id=%d %s -> %s)",
		event.EventID, event.Kind, event.RequestID, event.From, event.To)
	return nil
}
