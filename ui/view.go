package ui

import (
	"time"

	"github.com/lord9tools/bosswatch/pkg/core"
	"github.com/lord9tools/bosswatch/pkg/scheduler"
)

// spawnView is the wire/template shape of one projected spawn.
type spawnView struct {
	Boss      string `json:"boss"`
	At        string `json:"at"`
	ClockTime string `json:"clock_time"`
	Day       string `json:"day,omitempty"`
	Countdown string `json:"countdown"`
	Seconds   int64  `json:"seconds"`
	Severity  string `json:"severity"`
	Weekly    bool   `json:"weekly"`
}

// fieldRowView adds the field-only table columns.
type fieldRowView struct {
	spawnView
	Interval  string `json:"interval"`
	LastSpawn string `json:"last_spawn"`
}

// snapshotView is the dashboard/websocket payload.
type snapshotView struct {
	Banner      spawnView      `json:"banner"`
	Field       []fieldRowView `json:"field"`
	Weekly      []spawnView    `json:"weekly"`
	GeneratedAt string         `json:"generated_at"`
}

// historyView is the wire shape of one edit entry.
type historyView struct {
	ID       string `json:"id,omitempty"`
	Boss     string `json:"boss"`
	OldTime  string `json:"old_time"`
	NewTime  string `json:"new_time"`
	EditedAt string `json:"edited_at"`
	EditedBy string `json:"edited_by"`
}

func newSpawnView(d core.DerivedSpawn) spawnView {
	v := spawnView{
		Boss:      d.Owner,
		At:        core.FormatTime(d.At),
		ClockTime: d.At.Format(core.ClockLayout),
		Countdown: core.FormatCountdown(d.Countdown),
		Seconds:   int64(d.Countdown / time.Second),
		Severity:  string(d.Severity),
		Weekly:    d.Weekly,
	}
	if d.Weekly {
		v.Day = d.At.Weekday().String()
	}
	return v
}

func newSnapshotView(snap *scheduler.Snapshot) snapshotView {
	out := snapshotView{
		Banner:      newSpawnView(snap.Banner),
		Field:       make([]fieldRowView, 0, len(snap.Field)),
		Weekly:      make([]spawnView, 0, len(snap.Weekly)),
		GeneratedAt: core.FormatTime(snap.GeneratedAt),
	}
	for _, row := range snap.Field {
		out.Field = append(out.Field, fieldRowView{
			spawnView: newSpawnView(row.DerivedSpawn),
			Interval:  core.FormatInterval(row.Interval),
			LastSpawn: row.LastSpawn.Format("2006/01/02 - 15:04"),
		})
	}
	for _, row := range snap.Weekly {
		out.Weekly = append(out.Weekly, newSpawnView(row))
	}
	return out
}

func newHistoryView(entries []core.EditHistoryEntry) []historyView {
	out := make([]historyView, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyView{
			ID:       e.ID,
			Boss:     e.Boss,
			OldTime:  core.FormatTime(e.OldTime),
			NewTime:  core.FormatTime(e.NewTime),
			EditedAt: core.FormatTime(e.EditedAt),
			EditedBy: e.EditedBy,
		})
	}
	return out
}
