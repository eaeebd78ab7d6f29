// Package notify delivers human-readable event messages to external sinks.
//
// Delivery is best-effort: callers fire notifications without depending on
// the outcome, and sink failures are logged rather than raised.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Sink receives plain-text notification messages.
type Sink interface {
	Notify(ctx context.Context, message string) error
}

// NopSink discards all messages.
type NopSink struct{}

func (NopSink) Notify(ctx context.Context, message string) error { return nil }

// FuncSink adapts a function to the Sink interface. Useful in tests.
type FuncSink func(ctx context.Context, message string) error

func (f FuncSink) Notify(ctx context.Context, message string) error { return f(ctx, message) }

// WebhookSink posts messages to a Discord-compatible webhook as
// {"content": message}. An empty URL disables delivery entirely.
type WebhookSink struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewWebhookSink creates a webhook sink with a short delivery timeout.
func NewWebhookSink(url string, logger zerolog.Logger) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger.With().Str("component", "webhook").Logger(),
	}
}

// Notify posts one message. Failures are logged and returned; callers treat
// them as non-fatal.
func (s *WebhookSink) Notify(ctx context.Context, message string) error {
	if s.url == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("webhook delivery failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("webhook returned status %d", resp.StatusCode)
		s.logger.Warn().Int("status", resp.StatusCode).Msg("webhook delivery rejected")
		return err
	}
	return nil
}
