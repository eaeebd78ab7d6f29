package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalDuration_RoundsToNearestSecond(t *testing.T) {
	// 20m10s expressed as decimal minutes.
	rec := BossTimerRecord{IntervalMinutes: 20.1666667}
	assert.Equal(t, 20*time.Minute+10*time.Second, rec.IntervalDuration())

	rec = BossTimerRecord{IntervalMinutes: 0.5}
	assert.Equal(t, 30*time.Second, rec.IntervalDuration())

	rec = BossTimerRecord{IntervalMinutes: 60}
	assert.Equal(t, time.Hour, rec.IntervalDuration())
}

func TestClassifySeverity(t *testing.T) {
	assert.Equal(t, SeverityCritical, ClassifySeverity(0))
	assert.Equal(t, SeverityCritical, ClassifySeverity(60*time.Second))
	assert.Equal(t, SeverityWarning, ClassifySeverity(61*time.Second))
	assert.Equal(t, SeverityWarning, ClassifySeverity(300*time.Second))
	assert.Equal(t, SeverityNormal, ClassifySeverity(301*time.Second))
	assert.Equal(t, SeverityNormal, ClassifySeverity(26*time.Hour))
}

func TestStoreWriteError(t *testing.T) {
	inner := assert.AnError
	err := WriteFailed("boss_timers.json", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "boss_timers.json")

	var swe *StoreWriteError
	assert.ErrorAs(t, err, &swe)
	assert.Equal(t, "boss_timers.json", swe.Path)
}
