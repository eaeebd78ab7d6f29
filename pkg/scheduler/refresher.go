package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// Refresher recomputes the scheduler projection at a bounded cadence and
// hands the latest snapshot to readers without blocking them. The dashboard
// and metrics read Current instead of projecting on every request.
type Refresher struct {
	sched    *SpawnScheduler
	interval time.Duration
	logger   zerolog.Logger
	onSnap   func(*Snapshot)

	mu   sync.RWMutex
	snap *Snapshot

	subsMu sync.Mutex
	subs   map[chan *Snapshot]struct{}
}

// RefresherOption configures a Refresher.
type RefresherOption interface {
	applyRefresher(*Refresher)
}

type refresherOptionFunc func(*Refresher)

func (f refresherOptionFunc) applyRefresher(r *Refresher) { f(r) }

// WithInterval sets the refresh cadence. Default: one second.
func WithInterval(d time.Duration) RefresherOption {
	return refresherOptionFunc(func(r *Refresher) {
		if d > 0 {
			r.interval = d
		}
	})
}

// WithRefresherLogger sets the refresher logger.
func WithRefresherLogger(logger zerolog.Logger) RefresherOption {
	return refresherOptionFunc(func(r *Refresher) {
		r.logger = logger
	})
}

// WithOnSnapshot installs a callback invoked after each recompute, e.g. to
// update metrics gauges. It runs on the refresh goroutine and must be cheap.
func WithOnSnapshot(fn func(*Snapshot)) RefresherOption {
	return refresherOptionFunc(func(r *Refresher) {
		r.onSnap = fn
	})
}

// NewRefresher creates a refresher over the scheduler.
func NewRefresher(s *SpawnScheduler, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		sched:    s,
		interval: time.Second,
		logger:   zerolog.Nop(),
		subs:     make(map[chan *Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt.applyRefresher(r)
	}
	r.logger = r.logger.With().Str("component", "refresher").Logger()
	return r
}

// Start runs the refresh loop. Blocks until the context is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	r.refresh()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refresh()
		}
	}
}

func (r *Refresher) refresh() {
	now := time.Now().In(r.sched.Location())
	snap, err := r.sched.Project(now)
	if err != nil {
		r.logger.Error().Err(err).Msg("projection failed")
		return
	}

	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()

	if r.onSnap != nil {
		r.onSnap(snap)
	}
	r.sched.emit(&core.SnapshotRefreshed{Next: snap.Banner, Timestamp: now})

	r.subsMu.Lock()
	for ch := range r.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	r.subsMu.Unlock()
}

// Current returns the latest snapshot, or a fresh projection when the loop
// has not produced one yet.
func (r *Refresher) Current() (*Snapshot, error) {
	r.mu.RLock()
	snap := r.snap
	r.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return r.sched.Project(time.Now().In(r.sched.Location()))
}

// Subscribe registers for snapshot ticks. The returned cancel func must be
// called when the subscriber goes away.
func (r *Refresher) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 4)
	r.subsMu.Lock()
	r.subs[ch] = struct{}{}
	r.subsMu.Unlock()

	cancel := func() {
		r.subsMu.Lock()
		delete(r.subs, ch)
		r.subsMu.Unlock()
	}
	return ch, cancel
}
