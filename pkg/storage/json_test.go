package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lord9tools/bosswatch/pkg/core"
)

func newTestJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	dir := t.TempDir()
	defaults := []core.BossTimerRecord{
		{
			Name:            "Waterlord",
			IntervalMinutes: 20.1666667,
			LastSpawn:       time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC),
		},
	}
	store := NewJSONStore(
		filepath.Join(dir, "boss_timers.json"),
		filepath.Join(dir, "boss_history.json"),
		time.UTC, defaults, zerolog.Nop(),
	)
	require.NoError(t, store.Migrate(context.Background()))
	return store, dir
}

func TestJSONStore_MissingFileSeedsDefaults(t *testing.T) {
	store, dir := newTestJSONStore(t)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Waterlord", records[0].Name)

	// The default set is persisted for the next load.
	raw, err := os.ReadFile(filepath.Join(dir, "boss_timers.json"))
	require.NoError(t, err)
	var triples [][]any
	require.NoError(t, json.Unmarshal(raw, &triples))
	require.Len(t, triples, 1)
	assert.Equal(t, "Waterlord", triples[0][0])
	assert.Equal(t, "2025-09-20 08:00 AM", triples[0][2])
}

func TestJSONStore_RoundTrip(t *testing.T) {
	store, _ := newTestJSONStore(t)

	in := []core.BossTimerRecord{
		{Name: "Waterlord", IntervalMinutes: 20.1666667, LastSpawn: time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC)},
		{Name: "Stormbringer", IntervalMinutes: 45, LastSpawn: time.Date(2025, 9, 21, 10, 30, 0, 0, time.UTC)},
	}
	require.NoError(t, store.Save(context.Background(), in))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].Name, out[i].Name)
		assert.Equal(t, in[i].IntervalMinutes, out[i].IntervalMinutes)
		assert.True(t, in[i].LastSpawn.Equal(out[i].LastSpawn))
	}
}

func TestJSONStore_NormalizesLegacyObjectShape(t *testing.T) {
	store, dir := newTestJSONStore(t)

	legacy := `[{"name": "Waterlord", "interval_minutes": 25, "last_time_str": "2025-09-20 09:00 AM"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boss_timers.json"), []byte(legacy), 0o644))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Waterlord", records[0].Name)
	assert.Equal(t, 25.0, records[0].IntervalMinutes)
	assert.Equal(t, time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC), records[0].LastSpawn)

	// The canonical triple form replaces the legacy shape on disk.
	raw, err := os.ReadFile(filepath.Join(dir, "boss_timers.json"))
	require.NoError(t, err)
	var triples [][]any
	assert.NoError(t, json.Unmarshal(raw, &triples))
}

func TestJSONStore_SubstitutesBadInterval(t *testing.T) {
	store, dir := newTestJSONStore(t)

	data := `[["Waterlord", "soon", "2025-09-20 09:00 AM"]]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boss_timers.json"), []byte(data), 0o644))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, DefaultIntervalMinutes, records[0].IntervalMinutes)

	substituted, dropped := store.NormalizationStats()
	assert.Equal(t, 1, substituted)
	assert.Equal(t, 0, dropped)
}

func TestJSONStore_SubstitutesBadTimestamp(t *testing.T) {
	store, dir := newTestJSONStore(t)

	data := `[["Waterlord", 20, "yesterday-ish"]]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boss_timers.json"), []byte(data), 0o644))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	want, _ := core.ParseTime(DefaultLastSpawn, time.UTC)
	assert.True(t, want.Equal(records[0].LastSpawn))
}

func TestJSONStore_NumericStringIntervalAccepted(t *testing.T) {
	store, dir := newTestJSONStore(t)

	data := `[["Waterlord", "20.1666667", "2025-09-20 09:00 AM"]]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boss_timers.json"), []byte(data), 0o644))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20.1666667, records[0].IntervalMinutes)
}

func TestJSONStore_DropsUnusableEntries(t *testing.T) {
	store, dir := newTestJSONStore(t)

	data := `[["Waterlord", 20, "2025-09-20 09:00 AM"], ["short"], 42]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boss_timers.json"), []byte(data), 0o644))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Waterlord", records[0].Name)

	_, dropped := store.NormalizationStats()
	assert.Equal(t, 2, dropped)
}

func TestJSONStore_CorruptFileFallsBackToDefaults(t *testing.T) {
	store, dir := newTestJSONStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "boss_timers.json"), []byte("{not json"), 0o644))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Waterlord", records[0].Name)
}

func TestJSONStore_HistoryAppendAndRead(t *testing.T) {
	store, _ := newTestJSONStore(t)
	ctx := context.Background()

	e1 := core.EditHistoryEntry{
		Boss:     "Waterlord",
		OldTime:  time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC),
		NewTime:  time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC),
		EditedAt: time.Date(2025, 9, 20, 9, 5, 0, 0, time.UTC),
		EditedBy: "ana",
	}
	require.NoError(t, store.AppendHistory(ctx, e1))

	e2 := e1
	e2.NewTime = time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	e2.EditedAt = time.Date(2025, 9, 20, 10, 5, 0, 0, time.UTC)
	require.NoError(t, store.AppendHistory(ctx, e2))

	entries, err := store.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Waterlord", entries[0].Boss)
	assert.Equal(t, "ana", entries[0].EditedBy)
	assert.NotEmpty(t, entries[0].ID)
	assert.True(t, e1.NewTime.Equal(entries[0].NewTime))
	assert.True(t, e2.NewTime.Equal(entries[1].NewTime))
}

func TestJSONStore_HistoryMissingFileIsEmpty(t *testing.T) {
	store, _ := newTestJSONStore(t)

	entries, err := store.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJSONStore_SaveIsAtomic(t *testing.T) {
	store, dir := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []core.BossTimerRecord{
		{Name: "Waterlord", IntervalMinutes: 20, LastSpawn: time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC)},
	}))

	// No temp files left behind after a successful write.
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
