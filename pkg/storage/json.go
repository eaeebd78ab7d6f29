package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// Defaults substituted while normalizing malformed persisted entries.
const (
	// DefaultIntervalMinutes replaces intervals that fail to parse (20m10s).
	DefaultIntervalMinutes = 20.1666667

	// DefaultLastSpawn replaces last-spawn timestamps that fail to parse.
	DefaultLastSpawn = "2025-09-20 08:00 AM"
)

// JSONStore persists boss timers and edit history as legacy flat JSON files.
//
// The timer file is an ordered array of [name, intervalMinutes, lastSpawn]
// triples; the history file an ordered array of edit objects. Load tolerates
// the older object-per-entry timer shape, non-numeric intervals and
// missing/corrupt files, substituting documented defaults and re-persisting
// the cleaned set.
type JSONStore struct {
	dataPath    string
	historyPath string
	loc         *time.Location
	defaults    []core.BossTimerRecord
	logger      zerolog.Logger

	mu          sync.Mutex
	substituted int
	dropped     int
}

// NewJSONStore creates a flat-file store. defaults seed the timer file when
// it is missing or unreadable.
func NewJSONStore(dataPath, historyPath string, loc *time.Location, defaults []core.BossTimerRecord, logger zerolog.Logger) *JSONStore {
	return &JSONStore{
		dataPath:    dataPath,
		historyPath: historyPath,
		loc:         loc,
		defaults:    defaults,
		logger:      logger.With().Str("component", "jsonstore").Logger(),
	}
}

// Migrate ensures the parent directories exist.
func (s *JSONStore) Migrate(ctx context.Context) error {
	for _, p := range []string{s.dataPath, s.historyPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return core.WriteFailed(dir, err)
			}
		}
	}
	return nil
}

// NormalizationStats reports how many entries the last Load repaired or
// dropped.
func (s *JSONStore) NormalizationStats() (substituted, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.substituted, s.dropped
}

// Load reads the timer file, normalizes it, re-persists the cleaned set and
// returns it. A missing or corrupt file falls back to the default roster.
func (s *JSONStore) Load(ctx context.Context) ([]core.BossTimerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.substituted, s.dropped = 0, 0

	raw, err := os.ReadFile(s.dataPath)
	if err != nil {
		s.logger.Warn().Str("path", s.dataPath).Msg("timer file missing, seeding defaults")
		return s.resetLocked()
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn().Err(err).Str("path", s.dataPath).Msg("timer file corrupt, seeding defaults")
		return s.resetLocked()
	}

	records := make([]core.BossTimerRecord, 0, len(entries))
	for _, e := range entries {
		rec, ok := s.normalizeEntry(e)
		if !ok {
			s.dropped++
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return s.resetLocked()
	}

	if s.substituted > 0 || s.dropped > 0 {
		s.logger.Info().
			Int("substituted", s.substituted).
			Int("dropped", s.dropped).
			Msg("normalized timer records")
	}

	// Persist the cleaned set so the next load is canonical.
	if err := s.saveLocked(records); err != nil {
		return nil, err
	}
	return records, nil
}

// resetLocked seeds the timer file with the default roster.
func (s *JSONStore) resetLocked() ([]core.BossTimerRecord, error) {
	records := make([]core.BossTimerRecord, len(s.defaults))
	copy(records, s.defaults)
	if err := s.saveLocked(records); err != nil {
		return nil, err
	}
	return records, nil
}

// normalizeEntry coerces one persisted entry into the canonical record shape.
// Accepts the triple form and the legacy object form; repairs bad interval
// and timestamp values with the documented defaults.
func (s *JSONStore) normalizeEntry(raw json.RawMessage) (core.BossTimerRecord, bool) {
	var name, lastStr string
	var interval float64

	var triple []any
	if err := json.Unmarshal(raw, &triple); err == nil {
		if len(triple) != 3 {
			return core.BossTimerRecord{}, false
		}
		n, ok := triple[0].(string)
		if !ok {
			return core.BossTimerRecord{}, false
		}
		name = n
		interval = s.coerceInterval(triple[1])
		lastStr, _ = triple[2].(string)
	} else {
		var obj struct {
			Name     string `json:"name"`
			Interval any    `json:"interval_minutes"`
			LastTime string `json:"last_time_str"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.Name == "" {
			return core.BossTimerRecord{}, false
		}
		name = obj.Name
		interval = s.coerceInterval(obj.Interval)
		lastStr = obj.LastTime
	}

	last, err := core.ParseTime(lastStr, s.loc)
	if err != nil {
		last, _ = core.ParseTime(DefaultLastSpawn, s.loc)
		s.substituted++
	}

	return core.BossTimerRecord{
		Name:            name,
		IntervalMinutes: interval,
		LastSpawn:       last,
	}, true
}

// coerceInterval accepts numeric or numeric-string intervals; anything else
// (or a non-positive value) becomes DefaultIntervalMinutes.
func (s *JSONStore) coerceInterval(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return n
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil && f > 0 {
			return f
		}
	}
	s.substituted++
	return DefaultIntervalMinutes
}

// Save persists the record set as ordered triples.
func (s *JSONStore) Save(ctx context.Context, records []core.BossTimerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(records)
}

func (s *JSONStore) saveLocked(records []core.BossTimerRecord) error {
	triples := make([][]any, 0, len(records))
	for _, r := range records {
		triples = append(triples, []any{r.Name, r.IntervalMinutes, core.FormatTime(r.LastSpawn)})
	}
	data, err := json.MarshalIndent(triples, "", "    ")
	if err != nil {
		return core.WriteFailed(s.dataPath, err)
	}
	return writeFileAtomic(s.dataPath, data)
}

// historyJSON is the on-disk shape of one edit entry.
type historyJSON struct {
	ID       string `json:"id,omitempty"`
	Boss     string `json:"boss"`
	OldTime  string `json:"old_time"`
	NewTime  string `json:"new_time"`
	EditedAt string `json:"edited_at"`
	EditedBy string `json:"edited_by"`
}

// AppendHistory appends one entry to the history file. The legacy file is a
// single JSON array, so the append is a read-modify-write under the store
// mutex, finished with an atomic rename.
func (s *JSONStore) AppendHistory(ctx context.Context, entry core.EditHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.readHistoryLocked()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	existing = append(existing, historyJSON{
		ID:       entry.ID,
		Boss:     entry.Boss,
		OldTime:  core.FormatTime(entry.OldTime),
		NewTime:  core.FormatTime(entry.NewTime),
		EditedAt: core.FormatTime(entry.EditedAt),
		EditedBy: entry.EditedBy,
	})

	data, err := json.MarshalIndent(existing, "", "    ")
	if err != nil {
		return core.WriteFailed(s.historyPath, err)
	}
	return writeFileAtomic(s.historyPath, data)
}

// History returns all persisted edit entries in file order.
func (s *JSONStore) History(ctx context.Context) ([]core.EditHistoryEntry, error) {
	s.mu.Lock()
	raws := s.readHistoryLocked()
	s.mu.Unlock()

	entries := make([]core.EditHistoryEntry, 0, len(raws))
	for _, h := range raws {
		oldT, err1 := core.ParseTime(h.OldTime, s.loc)
		newT, err2 := core.ParseTime(h.NewTime, s.loc)
		editedAt, err3 := core.ParseTime(h.EditedAt, s.loc)
		if err1 != nil || err2 != nil || err3 != nil {
			s.logger.Warn().Str("boss", h.Boss).Msg("skipping malformed history entry")
			continue
		}
		entries = append(entries, core.EditHistoryEntry{
			ID:       h.ID,
			Boss:     h.Boss,
			OldTime:  oldT,
			NewTime:  newT,
			EditedAt: editedAt,
			EditedBy: h.EditedBy,
		})
	}
	return entries, nil
}

func (s *JSONStore) readHistoryLocked() []historyJSON {
	raw, err := os.ReadFile(s.historyPath)
	if err != nil {
		return nil
	}
	var entries []historyJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn().Err(err).Str("path", s.historyPath).Msg("history file corrupt, starting fresh")
		return nil
	}
	return entries
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never observe a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return core.WriteFailed(path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.WriteFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return core.WriteFailed(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return core.WriteFailed(path, err)
	}
	return nil
}
