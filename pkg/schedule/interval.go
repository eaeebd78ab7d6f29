package schedule

import (
	"time"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// FixedIntervalTimer projects spawns for one field boss: the boss respawns a
// fixed duration after its last recorded kill, indefinitely.
//
// Projections are pure; the stored last-kill time is only replaced through an
// explicit edit, never as a side effect of reading a countdown.
type FixedIntervalTimer struct {
	name      string
	interval  time.Duration
	lastSpawn time.Time
}

// NewFixedIntervalTimer builds a timer from a persisted record.
// Returns core.ErrInvalidInterval unless the record's interval is positive.
func NewFixedIntervalTimer(rec core.BossTimerRecord) (*FixedIntervalTimer, error) {
	interval := rec.IntervalDuration()
	if interval <= 0 {
		return nil, core.ErrInvalidInterval
	}
	return &FixedIntervalTimer{
		name:      rec.Name,
		interval:  interval,
		lastSpawn: rec.LastSpawn,
	}, nil
}

// Name returns the boss name.
func (t *FixedIntervalTimer) Name() string { return t.name }

// Interval returns the whole-second respawn interval.
func (t *FixedIntervalTimer) Interval() time.Duration { return t.interval }

// LastSpawn returns the recorded last kill time.
func (t *FixedIntervalTimer) LastSpawn() time.Time { return t.lastSpawn }

// NextSpawn returns the first projected spawn at or after now:
// lastSpawn + ceil((now-lastSpawn)/interval) * interval, with the interval
// count clamped at zero so a future lastSpawn is returned unchanged.
//
// The result never trails now, and while lastSpawn is in the past it leads
// now by less than one full interval.
func (t *FixedIntervalTimer) NextSpawn(now time.Time) time.Time {
	elapsed := now.Sub(t.lastSpawn)
	if elapsed <= 0 {
		return t.lastSpawn
	}
	n := int64(elapsed / t.interval)
	if elapsed%t.interval != 0 {
		n++
	}
	return t.lastSpawn.Add(time.Duration(n) * t.interval)
}

// RolledLast returns the most recent occurrence at or before now: the value
// the mutating roll-forward formulation would have stored. Exposed for
// display ("last spawn" column) without committing the roll to storage.
func (t *FixedIntervalTimer) RolledLast(now time.Time) time.Time {
	elapsed := now.Sub(t.lastSpawn)
	if elapsed <= 0 {
		return t.lastSpawn
	}
	n := int64(elapsed / t.interval)
	return t.lastSpawn.Add(time.Duration(n) * t.interval)
}

// Countdown returns NextSpawn(now) - now, clamped at zero.
func (t *FixedIntervalTimer) Countdown(now time.Time) time.Duration {
	d := t.NextSpawn(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Next implements Schedule.
func (t *FixedIntervalTimer) Next(from time.Time) time.Time {
	return t.NextSpawn(from)
}
