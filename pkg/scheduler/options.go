package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/lord9tools/bosswatch/pkg/notify"
)

// Option configures a SpawnScheduler.
type Option interface {
	apply(*SpawnScheduler)
}

type optionFunc func(*SpawnScheduler)

func (f optionFunc) apply(s *SpawnScheduler) { f(s) }

// WithSink sets the notification sink. Default: notify.NopSink.
func WithSink(sink notify.Sink) Option {
	return optionFunc(func(s *SpawnScheduler) {
		if sink != nil {
			s.sink = sink
		}
	})
}

// WithLogger sets the scheduler logger. Default: no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return optionFunc(func(s *SpawnScheduler) {
		s.logger = logger
	})
}

// WithZoneLabel overrides the timezone label used in notification messages.
// Default: the location's name.
func WithZoneLabel(label string) Option {
	return optionFunc(func(s *SpawnScheduler) {
		if label != "" {
			s.zone = label
		}
	})
}
