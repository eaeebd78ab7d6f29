package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule computes the next occurrence of a recurring event.
type Schedule interface {
	// Next returns the first occurrence at or after from. Implementations
	// document whether equality with from is possible.
	Next(from time.Time) time.Time
}

// slotSchedule runs at a specific weekday and time each week.
type slotSchedule struct {
	day    time.Weekday
	hour   int
	minute int
	loc    *time.Location
}

// Next returns the next slot occurrence strictly after from. When the slot's
// weekday is today but its time has already passed (or is exactly now), the
// occurrence rolls to next week.
func (s *slotSchedule) Next(from time.Time) time.Time {
	from = from.In(s.loc)

	daysAhead := int(s.day-from.Weekday()) % 7
	if daysAhead < 0 {
		daysAhead += 7
	}

	next := time.Date(from.Year(), from.Month(), from.Day()+daysAhead, s.hour, s.minute, 0, 0, s.loc)
	if !next.After(from) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// cronSlot wraps a cron expression pinned to a location.
type cronSlot struct {
	schedule cron.Schedule
	loc      *time.Location
}

// CronSlot creates a schedule from a standard five-field cron expression.
func CronSlot(expr string, loc *time.Location) (Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return &cronSlot{schedule: schedule, loc: loc}, nil
}

func (s *cronSlot) Next(from time.Time) time.Time {
	return s.schedule.Next(from.In(s.loc))
}
