package core

import (
	"math"
	"time"
)

// BossTimerRecord is the persisted state of one field boss.
//
// LastSpawn is a naive local timestamp interpreted in the deployment's single
// fixed timezone. Records are upserted, never deleted; the only mutation path
// replaces LastSpawn via an explicit edit.
type BossTimerRecord struct {
	Name            string    `gorm:"primaryKey;size:64"`
	IntervalMinutes float64   `gorm:"not null"`
	LastSpawn       time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// IntervalDuration converts IntervalMinutes to a whole-second duration.
// Fractional minutes are supported (20.1666667 -> 20m10s); the product is
// rounded to the nearest second so the conversion is deterministic.
func (r BossTimerRecord) IntervalDuration() time.Duration {
	return time.Duration(math.Round(r.IntervalMinutes*60)) * time.Second
}

// WeeklySlot is one fixed weekday/time-of-day respawn slot.
// Slots come from static configuration and are not user-editable.
type WeeklySlot struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// WeeklyBossRecord describes a boss that respawns at fixed weekly slots,
// independent of kill history. A boss may also carry cron expressions for
// slots the weekday/time form cannot express. Slots must be non-empty
// (counting cron entries) and their order is significant for tie-breaks.
type WeeklyBossRecord struct {
	Name  string
	Slots []WeeklySlot
	Crons []string
}

// DerivedSpawn is a computed projection of one upcoming spawn. It is never
// persisted; callers recompute it against "now" on every query.
type DerivedSpawn struct {
	Owner     string
	At        time.Time
	Countdown time.Duration
	Weekly    bool
	Severity  Severity
}

// EditHistoryEntry records one timer edit. Entries are append-only and
// immutable once written.
type EditHistoryEntry struct {
	ID       string    `gorm:"primaryKey;size:36"`
	Boss     string    `gorm:"index;size:64;not null"`
	OldTime  time.Time `gorm:"not null"`
	NewTime  time.Time `gorm:"not null"`
	EditedAt time.Time `gorm:"index;not null"`
	EditedBy string    `gorm:"size:64"`
}

// Severity classifies a countdown into presentation bands.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityNormal   Severity = "normal"
)

// Severity thresholds.
const (
	CriticalWindow = 60 * time.Second
	WarningWindow  = 300 * time.Second
)

// ClassifySeverity maps a countdown to its severity tier. It is a pure
// function shared by the aggregate banner and per-row table coloring.
func ClassifySeverity(countdown time.Duration) Severity {
	switch {
	case countdown <= CriticalWindow:
		return SeverityCritical
	case countdown <= WarningWindow:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}
