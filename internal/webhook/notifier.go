// Package webhook delivers completed registrations to an external endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wardline/server/internal/intake/engine"
	"github.com/wardline/server/internal/intake/model"
)

// ================ Config ================
type Config struct {
	URL            string `envconfig:"WEBHOOK_URL" required:"true"`
	TimeoutSeconds int    `envconfig:"WEBHOOK_TIMEOUT_SECONDS" default:"10"`
}

// Notifier posts the registration payload as JSON to the configured URL.
// The client timeout bounds the only network suspension point in a turn.
type Notifier struct {
	url    string
	client *http.Client
}

func NewNotifier(cfg Config) *Notifier {
	return &Notifier{
		url: cfg.URL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Notify sends the payload. Any transport error, timeout, or non-2xx status
// is reported as an error; it never panics past this boundary.
func (n *Notifier) Notify(ctx context.Context, payload model.WebhookPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

var _ engine.Notifier = (*Notifier)(nil)
