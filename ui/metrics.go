package ui

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lord9tools/bosswatch/pkg/scheduler"
)

// Metrics exposes spawn projection gauges and edit counters.
type Metrics struct {
	registry *prometheus.Registry

	nextSpawnSeconds *prometheus.GaugeVec
	bannerSeconds    prometheus.Gauge
	editsTotal       prometheus.Counter
}

// NewMetrics creates and registers the bosswatch collectors on a fresh
// registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		nextSpawnSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bosswatch",
			Name:      "next_spawn_seconds",
			Help:      "Seconds until the next projected spawn, per boss.",
		}, []string{"boss", "kind"}),
		bannerSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bosswatch",
			Name:      "banner_spawn_seconds",
			Help:      "Seconds until the globally soonest spawn.",
		}),
		editsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bosswatch",
			Name:      "edits_total",
			Help:      "Number of accepted timer edits.",
		}),
	}

	reg.MustRegister(m.nextSpawnSeconds, m.bannerSeconds, m.editsTotal)
	return m
}

// Observe updates the spawn gauges from a snapshot. Safe to pass to
// scheduler.WithOnSnapshot.
func (m *Metrics) Observe(snap *scheduler.Snapshot) {
	for _, row := range snap.Field {
		m.nextSpawnSeconds.WithLabelValues(row.Owner, "field").Set(row.Countdown.Seconds())
	}
	for _, row := range snap.Weekly {
		m.nextSpawnSeconds.WithLabelValues(row.Owner, "weekly").Set(row.Countdown.Seconds())
	}
	m.bannerSeconds.Set(snap.Banner.Countdown.Seconds())
}

// EditObserved increments the edit counter.
func (m *Metrics) EditObserved() {
	m.editsTotal.Inc()
}
