package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the wire format for persisted timestamps, e.g.
// "2025-09-20 08:00 AM". It is a naive local time; the deployment's fixed
// timezone supplies the offset on parse.
const TimeLayout = "2006-01-02 03:04 PM"

// ClockLayout renders only the 12-hour clock portion of a timestamp.
const ClockLayout = "03:04 PM"

// ParseTime parses a persisted timestamp string in the fixed timezone.
// Returns ErrInvalidTimestamp on malformed input.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// FormatTime renders a timestamp in the persisted wire format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatCountdown renders a countdown as "HH:MM:SS", or "Dd HH:MM:SS" when it
// spans at least one day. Negative durations render as "00:00:00".
func FormatCountdown(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		return "00:00:00"
	}
	days := total / 86400
	rem := total % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatInterval renders a whole-second interval as a human label such as
// "20m 10s" or "45m".
func FormatInterval(d time.Duration) string {
	total := int64(d / time.Second)
	mins := total / 60
	secs := total % 60
	if secs > 0 {
		return fmt.Sprintf("%dm %02ds", mins, secs)
	}
	return fmt.Sprintf("%dm", mins)
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekday parses a full English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSlot, name)
	}
	return wd, nil
}

// ParseSlot parses a configured weekly slot such as "Sunday 20:00".
func ParseSlot(s string) (WeeklySlot, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return WeeklySlot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	wd, err := ParseWeekday(fields[0])
	if err != nil {
		return WeeklySlot{}, err
	}
	hh, mm, ok := strings.Cut(fields[1], ":")
	if !ok {
		return WeeklySlot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return WeeklySlot{}, fmt.Errorf("%w: bad hour in %q", ErrInvalidSlot, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return WeeklySlot{}, fmt.Errorf("%w: bad minute in %q", ErrInvalidSlot, s)
	}
	return WeeklySlot{Weekday: wd, Hour: hour, Minute: minute}, nil
}
