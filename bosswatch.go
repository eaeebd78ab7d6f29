// Package bosswatch tracks respawn timers for recurring game bosses and
// projects live countdowns over them.
//
// This is the main package users should import. It re-exports the public
// types from the pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	loc, _ := time.LoadLocation("Asia/Manila")
//	store := bosswatch.NewJSONStore("boss_timers.json", "boss_history.json", loc, defaults, logger)
//	sched, _ := bosswatch.New(ctx, store, loc, weeklyBosses)
//
//	// Pure projection against "now"
//	next, _ := sched.NextGlobalSpawn(time.Now())
//	fmt.Println(next.Owner, bosswatch.FormatCountdown(next.Countdown))
//
//	// The single mutation path
//	sched.RecordEdit(ctx, "Waterlord", "2025-09-21 07:40 AM", "gm_ana", time.Now())
package bosswatch

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lord9tools/bosswatch/pkg/core"
	"github.com/lord9tools/bosswatch/pkg/notify"
	"github.com/lord9tools/bosswatch/pkg/schedule"
	"github.com/lord9tools/bosswatch/pkg/scheduler"
	"github.com/lord9tools/bosswatch/pkg/storage"
)

// Type aliases for the public API surface
type (
	// BossTimerRecord is the persisted state of one field boss.
	BossTimerRecord = core.BossTimerRecord

	// WeeklySlot is one fixed weekday/time-of-day respawn slot.
	WeeklySlot = core.WeeklySlot

	// WeeklyBossRecord describes a boss bound to fixed weekly slots.
	WeeklyBossRecord = core.WeeklyBossRecord

	// DerivedSpawn is a computed projection of one upcoming spawn.
	DerivedSpawn = core.DerivedSpawn

	// EditHistoryEntry records one timer edit.
	EditHistoryEntry = core.EditHistoryEntry

	// Severity classifies a countdown into presentation bands.
	Severity = core.Severity

	// Event is the interface for all scheduler events.
	Event = core.Event

	// EditRecorded is emitted after an edit has been persisted.
	EditRecorded = core.EditRecorded

	// SnapshotRefreshed is emitted after each projection recompute.
	SnapshotRefreshed = core.SnapshotRefreshed

	// FixedIntervalTimer projects spawns for one field boss.
	FixedIntervalTimer = schedule.FixedIntervalTimer

	// WeeklySchedule projects spawns for one weekly boss.
	WeeklySchedule = schedule.WeeklySchedule

	// SpawnScheduler aggregates every timer and owns the edit path.
	SpawnScheduler = scheduler.SpawnScheduler

	// Snapshot is a full pure projection against one instant.
	Snapshot = scheduler.Snapshot

	// Refresher recomputes the projection at a bounded cadence.
	Refresher = scheduler.Refresher

	// Store defines the persistence layer.
	Store = storage.Store

	// JSONStore is the legacy flat-file store.
	JSONStore = storage.JSONStore

	// GormStore is the GORM/SQLite store.
	GormStore = storage.GormStore

	// Sink receives plain-text notification messages.
	Sink = notify.Sink

	// WebhookSink posts messages to a Discord-compatible webhook.
	WebhookSink = notify.WebhookSink
)

// Severity tiers
const (
	SeverityCritical = core.SeverityCritical
	SeverityWarning  = core.SeverityWarning
	SeverityNormal   = core.SeverityNormal
)

// Error variables
var (
	ErrInvalidTimestamp = core.ErrInvalidTimestamp
	ErrNoFieldTimers    = core.ErrNoFieldTimers
	ErrUnknownBoss      = core.ErrUnknownBoss
	ErrInvalidInterval  = core.ErrInvalidInterval
	ErrNoSlots          = core.ErrNoSlots
)

// New creates a SpawnScheduler over the given store and weekly roster.
func New(ctx context.Context, store Store, loc *time.Location, weekly []WeeklyBossRecord, opts ...scheduler.Option) (*SpawnScheduler, error) {
	return scheduler.New(ctx, store, loc, weekly, opts...)
}

// NewJSONStore creates the legacy flat-file store.
func NewJSONStore(dataPath, historyPath string, loc *time.Location, defaults []BossTimerRecord, logger zerolog.Logger) *JSONStore {
	return storage.NewJSONStore(dataPath, historyPath, loc, defaults, logger)
}

// NewGormStore creates a GORM-backed store. path identifies the backing
// database in write errors.
func NewGormStore(db *gorm.DB, path string) *GormStore {
	return storage.NewGormStore(db, path)
}

// NewWebhookSink creates a webhook notification sink.
func NewWebhookSink(url string, logger zerolog.Logger) *WebhookSink {
	return notify.NewWebhookSink(url, logger)
}

// NewRefresher creates a snapshot refresher over a scheduler.
func NewRefresher(s *SpawnScheduler, opts ...scheduler.RefresherOption) *Refresher {
	return scheduler.NewRefresher(s, opts...)
}

// ClassifySeverity maps a countdown to its severity tier.
func ClassifySeverity(countdown time.Duration) Severity {
	return core.ClassifySeverity(countdown)
}

// ParseTime parses a persisted timestamp string in the fixed timezone.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	return core.ParseTime(s, loc)
}

// FormatTime renders a timestamp in the persisted wire format.
func FormatTime(t time.Time) string {
	return core.FormatTime(t)
}

// FormatCountdown renders a countdown as "HH:MM:SS" or "Dd HH:MM:SS".
func FormatCountdown(d time.Duration) string {
	return core.FormatCountdown(d)
}
