package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lord9tools/bosswatch/pkg/core"
	"github.com/lord9tools/bosswatch/pkg/notify"
	"github.com/lord9tools/bosswatch/pkg/schedule"
	"github.com/lord9tools/bosswatch/pkg/storage"
)

// notifyTimeout bounds the fire-and-forget notification delivery.
const notifyTimeout = 5 * time.Second

// SpawnScheduler aggregates every configured timer, picks the globally
// soonest spawn, and applies user edits.
type SpawnScheduler struct {
	store  storage.Store
	sink   notify.Sink
	loc    *time.Location
	zone   string
	logger zerolog.Logger

	mu      sync.RWMutex
	records []core.BossTimerRecord
	weekly  []*schedule.WeeklySchedule

	subsMu    sync.Mutex
	eventSubs []chan core.Event

	notifyWG sync.WaitGroup
}

// New builds a scheduler over the given store and static weekly roster.
// Records are loaded (and normalized) from the store immediately.
func New(ctx context.Context, store storage.Store, loc *time.Location, weekly []core.WeeklyBossRecord, opts ...Option) (*SpawnScheduler, error) {
	s := &SpawnScheduler{
		store:  store,
		sink:   notify.NopSink{},
		loc:    loc,
		zone:   loc.String(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	s.logger = s.logger.With().Str("component", "scheduler").Logger()

	for _, rec := range weekly {
		ws, err := schedule.NewWeeklySchedule(rec, loc)
		if err != nil {
			return nil, fmt.Errorf("weekly boss %q: %w", rec.Name, err)
		}
		s.weekly = append(s.weekly, ws)
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory record snapshot from the store.
func (s *SpawnScheduler) Reload(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	if js, ok := s.store.(*storage.JSONStore); ok {
		if substituted, dropped := js.NormalizationStats(); substituted > 0 || dropped > 0 {
			s.emit(&core.RecordsNormalized{
				Substituted: substituted,
				Dropped:     dropped,
				Timestamp:   time.Now().In(s.loc),
			})
		}
	}
	return nil
}

// Records returns a copy of the current record snapshot.
func (s *SpawnScheduler) Records() []core.BossTimerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.BossTimerRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Location returns the fixed timezone every projection is computed in.
func (s *SpawnScheduler) Location() *time.Location { return s.loc }

// fieldTimers builds fresh timers from the current records.
// Caller must hold at least a read lock.
func (s *SpawnScheduler) fieldTimersLocked() ([]*schedule.FixedIntervalTimer, error) {
	timers := make([]*schedule.FixedIntervalTimer, 0, len(s.records))
	for _, rec := range s.records {
		t, err := schedule.NewFixedIntervalTimer(rec)
		if err != nil {
			return nil, fmt.Errorf("field boss %q: %w", rec.Name, err)
		}
		timers = append(timers, t)
	}
	return timers, nil
}

// NextGlobalSpawn returns the single soonest spawn across every schedule.
// The comparison is strict: on an exact countdown tie the field timer wins.
// Returns core.ErrNoFieldTimers when no field boss is configured.
func (s *SpawnScheduler) NextGlobalSpawn(now time.Time) (core.DerivedSpawn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextGlobalLocked(now)
}

func (s *SpawnScheduler) nextGlobalLocked(now time.Time) (core.DerivedSpawn, error) {
	timers, err := s.fieldTimersLocked()
	if err != nil {
		return core.DerivedSpawn{}, err
	}
	if len(timers) == 0 {
		return core.DerivedSpawn{}, core.ErrNoFieldTimers
	}

	best := timers[0]
	for _, t := range timers[1:] {
		if t.Countdown(now) < best.Countdown(now) {
			best = t
		}
	}

	chosen := core.DerivedSpawn{
		Owner:     best.Name(),
		At:        best.NextSpawn(now),
		Countdown: best.Countdown(now),
	}

	// A weekly boss wins only with a strictly smaller countdown; an exact
	// tie keeps the field timer.
	for _, w := range s.weekly {
		cd := w.Countdown(now)
		if cd < chosen.Countdown {
			chosen = core.DerivedSpawn{
				Owner:     w.Name(),
				At:        w.NextOccurrence(now),
				Countdown: cd,
				Weekly:    true,
			}
		}
	}

	chosen.Severity = core.ClassifySeverity(chosen.Countdown)
	return chosen, nil
}

// FieldRow is one dashboard row for a field boss.
type FieldRow struct {
	core.DerivedSpawn
	Interval  time.Duration
	LastSpawn time.Time
}

// Snapshot is a full pure projection of every schedule against one instant.
type Snapshot struct {
	Banner      core.DerivedSpawn
	Field       []FieldRow
	Weekly      []core.DerivedSpawn
	GeneratedAt time.Time
}

// Project computes a complete snapshot: sorted field rows, sorted weekly
// rows and the aggregate banner. It never mutates stored records.
func (s *SpawnScheduler) Project(now time.Time) (*Snapshot, error) {
	now = now.In(s.loc)

	s.mu.RLock()
	defer s.mu.RUnlock()

	banner, err := s.nextGlobalLocked(now)
	if err != nil {
		return nil, err
	}

	timers, err := s.fieldTimersLocked()
	if err != nil {
		return nil, err
	}

	field := make([]FieldRow, 0, len(timers))
	for _, t := range timers {
		cd := t.Countdown(now)
		field = append(field, FieldRow{
			DerivedSpawn: core.DerivedSpawn{
				Owner:     t.Name(),
				At:        t.NextSpawn(now),
				Countdown: cd,
				Severity:  core.ClassifySeverity(cd),
			},
			Interval:  t.Interval(),
			LastSpawn: t.RolledLast(now),
		})
	}
	sort.SliceStable(field, func(i, j int) bool { return field[i].At.Before(field[j].At) })

	weekly := make([]core.DerivedSpawn, 0, len(s.weekly))
	for _, w := range s.weekly {
		cd := w.Countdown(now)
		weekly = append(weekly, core.DerivedSpawn{
			Owner:     w.Name(),
			At:        w.NextOccurrence(now),
			Countdown: cd,
			Weekly:    true,
			Severity:  core.ClassifySeverity(cd),
		})
	}
	sort.SliceStable(weekly, func(i, j int) bool { return weekly[i].At.Before(weekly[j].At) })

	return &Snapshot{
		Banner:      banner,
		Field:       field,
		Weekly:      weekly,
		GeneratedAt: now,
	}, nil
}

// RecordEdit replaces a field boss's last spawn time. It is the single
// mutation path: the record is persisted first (a failed write leaves memory
// unchanged, so a retry is safe), then the history entry is appended, an
// EditRecorded event is emitted and one notification is fired best-effort.
func (s *SpawnScheduler) RecordEdit(ctx context.Context, bossName, newLastSpawn, editedBy string, now time.Time) (core.EditHistoryEntry, error) {
	if err := core.ValidateBossName(bossName); err != nil {
		return core.EditHistoryEntry{}, err
	}
	editedBy = core.SanitizeEditor(editedBy)

	newLast, err := core.ParseTime(newLastSpawn, s.loc)
	if err != nil {
		return core.EditHistoryEntry{}, err
	}
	now = now.In(s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, rec := range s.records {
		if rec.Name == bossName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.EditHistoryEntry{}, fmt.Errorf("%w: %q", core.ErrUnknownBoss, bossName)
	}

	oldLast := s.records[idx].LastSpawn

	updated := make([]core.BossTimerRecord, len(s.records))
	copy(updated, s.records)
	updated[idx].LastSpawn = newLast

	if err := s.store.Save(ctx, updated); err != nil {
		return core.EditHistoryEntry{}, err
	}
	s.records = updated

	entry := core.EditHistoryEntry{
		ID:       uuid.New().String(),
		Boss:     bossName,
		OldTime:  oldLast,
		NewTime:  newLast,
		EditedAt: now,
		EditedBy: editedBy,
	}
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		// The record edit itself succeeded; losing one history row is not
		// worth failing the edit over.
		s.logger.Error().Err(err).Str("boss", bossName).Msg("history append failed")
	}

	timer, err := schedule.NewFixedIntervalTimer(updated[idx])
	if err != nil {
		return core.EditHistoryEntry{}, err
	}

	s.emit(&core.EditRecorded{
		Entry:     entry,
		NextSpawn: timer.NextSpawn(now),
		Timestamp: now,
	})

	s.notifyAsync(fmt.Sprintf(
		"🛠 **%s** time updated by **%s**\nOld: `%s` → New: `%s` (%s time)",
		bossName, editedBy, core.FormatTime(oldLast), core.FormatTime(newLast), s.zone,
	))

	s.logger.Info().
		Str("boss", bossName).
		Str("edited_by", editedBy).
		Time("new_last_spawn", newLast).
		Msg("timer edited")

	return entry, nil
}

// History returns the persisted edit log, newest first.
func (s *SpawnScheduler) History(ctx context.Context) ([]core.EditHistoryEntry, error) {
	entries, err := s.store.History(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].EditedAt.After(entries[j].EditedAt) })
	return entries, nil
}

// Announce delivers a free-form message through the notification sink,
// best-effort.
func (s *SpawnScheduler) Announce(ctx context.Context, message string) {
	s.notifyAsync(message)
}

// notifyAsync fires one message without blocking the caller. Failures are
// logged by the sink and swallowed here.
func (s *SpawnScheduler) notifyAsync(message string) {
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.sink.Notify(ctx, message); err != nil {
			s.logger.Warn().Err(err).Msg("notification dropped")
		}
	}()
}

// Flush waits for in-flight notifications. Intended for shutdown and tests.
func (s *SpawnScheduler) Flush() {
	s.notifyWG.Wait()
}

// Subscribe returns a channel receiving scheduler events. Slow subscribers
// miss events rather than blocking the scheduler.
func (s *SpawnScheduler) Subscribe() <-chan core.Event {
	ch := make(chan core.Event, 64)
	s.subsMu.Lock()
	s.eventSubs = append(s.eventSubs, ch)
	s.subsMu.Unlock()
	return ch
}

func (s *SpawnScheduler) emit(ev core.Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.eventSubs {
		select {
		case ch <- ev:
		default:
		}
	}
}
