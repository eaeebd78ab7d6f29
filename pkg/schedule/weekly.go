package schedule

import (
	"time"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// WeeklySchedule projects spawns for one weekly boss across its configured
// slots. Slot order is preserved: when two slots produce the same candidate,
// the earlier-configured slot wins.
type WeeklySchedule struct {
	name  string
	slots []Schedule
}

// NewWeeklySchedule builds a schedule from a weekly boss record.
// Returns core.ErrNoSlots when the record has neither weekday slots nor cron
// expressions.
func NewWeeklySchedule(rec core.WeeklyBossRecord, loc *time.Location) (*WeeklySchedule, error) {
	slots := make([]Schedule, 0, len(rec.Slots)+len(rec.Crons))
	for _, s := range rec.Slots {
		slots = append(slots, &slotSchedule{day: s.Weekday, hour: s.Hour, minute: s.Minute, loc: loc})
	}
	for _, expr := range rec.Crons {
		cs, err := CronSlot(expr, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, cs)
	}
	if len(slots) == 0 {
		return nil, core.ErrNoSlots
	}
	return &WeeklySchedule{name: rec.Name, slots: slots}, nil
}

// Name returns the boss name.
func (s *WeeklySchedule) Name() string { return s.name }

// NextOccurrence returns the soonest candidate across all slots. Weekday
// slots always yield a candidate strictly after now and within seven days.
func (s *WeeklySchedule) NextOccurrence(now time.Time) time.Time {
	var best time.Time
	for _, slot := range s.slots {
		candidate := slot.Next(now)
		if best.IsZero() || candidate.Before(best) {
			best = candidate
		}
	}
	return best
}

// Countdown returns NextOccurrence(now) - now.
func (s *WeeklySchedule) Countdown(now time.Time) time.Duration {
	return s.NextOccurrence(now).Sub(now)
}

// Next implements Schedule.
func (s *WeeklySchedule) Next(from time.Time) time.Time {
	return s.NextOccurrence(from)
}
