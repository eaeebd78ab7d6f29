package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2025-09-20 08:00 AM", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("2025-09-20 08:00 PM", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Hour())
}

func TestParseTime_TrimsWhitespace(t *testing.T) {
	_, err := ParseTime("  2025-09-20 08:00 AM ", time.UTC)
	assert.NoError(t, err)
}

func TestParseTime_Invalid(t *testing.T) {
	for _, s := range []string{"", "tomorrow", "2025-09-20", "2025-09-20 25:00 AM", "20/09/2025 08:00"} {
		_, err := ParseTime(s, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, "input %q", s)
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	orig := time.Date(2025, 9, 20, 20, 10, 0, 0, time.UTC)
	parsed, err := ParseTime(FormatTime(orig), time.UTC)
	require.NoError(t, err)
	assert.True(t, orig.Equal(parsed))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatCountdown(0))
	assert.Equal(t, "00:00:05", FormatCountdown(5*time.Second))
	assert.Equal(t, "00:20:10", FormatCountdown(20*time.Minute+10*time.Second))
	assert.Equal(t, "13:05:09", FormatCountdown(13*time.Hour+5*time.Minute+9*time.Second))
	assert.Equal(t, "1d 02:00:00", FormatCountdown(26*time.Hour))
	assert.Equal(t, "3d 00:00:01", FormatCountdown(72*time.Hour+time.Second))
}

func TestFormatCountdown_NegativeClampsToZero(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatCountdown(-time.Minute))
}

func TestFormatInterval(t *testing.T) {
	assert.Equal(t, "20m 10s", FormatInterval(20*time.Minute+10*time.Second))
	assert.Equal(t, "45m", FormatInterval(45*time.Minute))
	assert.Equal(t, "90m", FormatInterval(90*time.Minute))
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("Sunday 20:00")
	require.NoError(t, err)
	assert.Equal(t, WeeklySlot{Weekday: time.Sunday, Hour: 20, Minute: 0}, slot)

	slot, err = ParseSlot("monday 11:30")
	require.NoError(t, err)
	assert.Equal(t, WeeklySlot{Weekday: time.Monday, Hour: 11, Minute: 30}, slot)
}

func TestParseSlot_Invalid(t *testing.T) {
	for _, s := range []string{"", "Sunday", "Funday 20:00", "Sunday 24:00", "Sunday 20:61", "Sunday 20-00"} {
		_, err := ParseSlot(s)
		assert.ErrorIs(t, err, ErrInvalidSlot, "input %q", s)
	}
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("Friday")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, wd)

	_, err = ParseWeekday("Freeday")
	assert.ErrorIs(t, err, ErrInvalidSlot)
}
