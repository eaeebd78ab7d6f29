package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lord9tools/bosswatch/pkg/core"
)

const rosterYAML = `
field_bosses:
  - name: Waterlord
    interval_minutes: 20.1666667
    last_spawn: "2025-09-20 08:00 AM"
    kill_message: "Waterlord slain by {killer}"
  - name: Stormbringer
    interval_minutes: 45
    last_spawn: "2025-09-21 10:30 AM"
weekly_bosses:
  - name: Capricorn
    slots:
      - "Sunday 20:00"
  - name: Aries
    cron:
      - "0 21 * * 5"
`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bosses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoster_ParsesYAML(t *testing.T) {
	r, err := LoadRoster(writeRoster(t, rosterYAML))
	require.NoError(t, err)

	require.Len(t, r.FieldBosses, 2)
	assert.Equal(t, "Waterlord", r.FieldBosses[0].Name)
	assert.Equal(t, 20.1666667, r.FieldBosses[0].IntervalMinutes)
	require.Len(t, r.WeeklyBosses, 2)
	assert.Equal(t, []string{"Sunday 20:00"}, r.WeeklyBosses[0].Slots)
	assert.Equal(t, []string{"0 21 * * 5"}, r.WeeklyBosses[1].Cron)
}

func TestLoadRoster_MissingFileYieldsDefault(t *testing.T) {
	r, err := LoadRoster(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.Len(t, r.FieldBosses, 1)
	assert.Equal(t, "Waterlord", r.FieldBosses[0].Name)
	require.Len(t, r.WeeklyBosses, 1)
	assert.Equal(t, "Capricorn", r.WeeklyBosses[0].Name)
}

func TestLoadRoster_MalformedYAMLIsError(t *testing.T) {
	_, err := LoadRoster(writeRoster(t, "field_bosses: {nope"))
	assert.Error(t, err)
}

func TestLoadRoster_EmptyFieldRosterIsError(t *testing.T) {
	_, err := LoadRoster(writeRoster(t, "weekly_bosses:\n  - name: Capricorn\n    slots: [\"Sunday 20:00\"]\n"))
	assert.ErrorIs(t, err, core.ErrNoFieldTimers)
}

func TestRoster_Records(t *testing.T) {
	r, err := LoadRoster(writeRoster(t, rosterYAML))
	require.NoError(t, err)

	records, err := r.Records(time.UTC)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Waterlord", records[0].Name)
	assert.Equal(t, time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC), records[0].LastSpawn)
}

func TestRoster_RecordsRejectsBadTimestamp(t *testing.T) {
	r := &Roster{FieldBosses: []FieldBoss{
		{Name: "Waterlord", IntervalMinutes: 20, LastSpawn: "whenever"},
	}}
	_, err := r.Records(time.UTC)
	assert.ErrorIs(t, err, core.ErrInvalidTimestamp)
}

func TestRoster_RecordsRejectsNonPositiveInterval(t *testing.T) {
	r := &Roster{FieldBosses: []FieldBoss{
		{Name: "Waterlord", IntervalMinutes: 0, LastSpawn: "2025-09-20 08:00 AM"},
	}}
	_, err := r.Records(time.UTC)
	assert.ErrorIs(t, err, core.ErrInvalidInterval)
}

func TestRoster_WeeklyRecords(t *testing.T) {
	r, err := LoadRoster(writeRoster(t, rosterYAML))
	require.NoError(t, err)

	records, err := r.WeeklyRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Capricorn", records[0].Name)
	require.Len(t, records[0].Slots, 1)
	assert.Equal(t, time.Sunday, records[0].Slots[0].Weekday)
	assert.Equal(t, 20, records[0].Slots[0].Hour)

	assert.Equal(t, []string{"0 21 * * 5"}, records[1].Crons)
}

func TestRoster_WeeklyRecordsRejectsSlotlessBoss(t *testing.T) {
	r := &Roster{
		FieldBosses:  DefaultRoster().FieldBosses,
		WeeklyBosses: []WeeklyBoss{{Name: "Capricorn"}},
	}
	_, err := r.WeeklyRecords()
	assert.ErrorIs(t, err, core.ErrNoSlots)
}

func TestRoster_Announcements(t *testing.T) {
	r, err := LoadRoster(writeRoster(t, rosterYAML))
	require.NoError(t, err)

	ann := r.Announcements()
	assert.Equal(t, "Waterlord slain by {killer}", ann["Waterlord"])
	_, ok := ann["Stormbringer"]
	assert.False(t, ok)
}
