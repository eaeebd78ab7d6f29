// Package ui provides the embeddable web dashboard for bosswatch.
package ui

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures the UI handler.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

type config struct {
	title         string
	credential    string
	announcements map[string]string
	middleware    func(http.Handler) http.Handler
	metrics       *Metrics
	logger        zerolog.Logger
}

// WithTitle sets the dashboard title. Default: "Boss Timer".
func WithTitle(title string) Option {
	return optionFunc(func(c *config) {
		if title != "" {
			c.title = title
		}
	})
}

// WithAdminCredential enables the edit endpoints, gated by the given opaque
// credential. An empty credential leaves editing disabled.
func WithAdminCredential(credential string) Option {
	return optionFunc(func(c *config) {
		c.credential = credential
	})
}

// WithAnnouncements maps boss names to kill announcement templates; the
// literal "{killer}" is replaced with the submitted killer name.
func WithAnnouncements(m map[string]string) Option {
	return optionFunc(func(c *config) {
		c.announcements = m
	})
}

// WithMiddleware wraps the handler with middleware (auth, logging, etc.).
func WithMiddleware(mw func(http.Handler) http.Handler) Option {
	return optionFunc(func(c *config) {
		c.middleware = mw
	})
}

// WithMetrics exposes the given collectors on /metrics and counts edits.
func WithMetrics(m *Metrics) Option {
	return optionFunc(func(c *config) {
		c.metrics = m
	})
}

// WithLogger sets the handler logger.
func WithLogger(logger zerolog.Logger) Option {
	return optionFunc(func(c *config) {
		c.logger = logger
	})
}
