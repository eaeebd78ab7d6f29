package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// Roster is the static boss configuration loaded from YAML. Field bosses
// seed the timer store on first run; weekly bosses are configuration-only
// and never user-edited.
type Roster struct {
	FieldBosses  []FieldBoss  `yaml:"field_bosses"`
	WeeklyBosses []WeeklyBoss `yaml:"weekly_bosses"`
}

// FieldBoss is one configured interval boss.
type FieldBoss struct {
	Name            string  `yaml:"name"`
	IntervalMinutes float64 `yaml:"interval_minutes"`
	LastSpawn       string  `yaml:"last_spawn"`

	// KillMessage, when set, is announced on edits that name a killer.
	// The literal "{killer}" is replaced with the killer's name.
	KillMessage string `yaml:"kill_message,omitempty"`
}

// WeeklyBoss is one configured weekly boss. Slots use the "Sunday 20:00"
// form; cron entries use standard five-field expressions.
type WeeklyBoss struct {
	Name  string   `yaml:"name"`
	Slots []string `yaml:"slots,omitempty"`
	Cron  []string `yaml:"cron,omitempty"`
}

// DefaultRoster returns the built-in roster used when no file exists.
func DefaultRoster() *Roster {
	return &Roster{
		FieldBosses: []FieldBoss{
			{
				Name:            "Waterlord",
				IntervalMinutes: 20.1666667,
				LastSpawn:       "2025-09-20 08:00 AM",
				KillMessage:     "CONGRATS! A rare CleanWater has dropped from the Waterlord killed by {killer}",
			},
		},
		WeeklyBosses: []WeeklyBoss{
			{Name: "Capricorn", Slots: []string{"Sunday 20:00"}},
		},
	}
}

// LoadRoster reads a roster file. A missing file yields the default roster;
// a malformed file is an error.
func LoadRoster(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRoster(), nil
		}
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}

	var r Roster
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	if len(r.FieldBosses) == 0 {
		return nil, core.ErrNoFieldTimers
	}
	return &r, nil
}

// Records converts the field roster into seed timer records.
func (r *Roster) Records(loc *time.Location) ([]core.BossTimerRecord, error) {
	records := make([]core.BossTimerRecord, 0, len(r.FieldBosses))
	for _, fb := range r.FieldBosses {
		if err := core.ValidateBossName(fb.Name); err != nil {
			return nil, fmt.Errorf("field boss %q: %w", fb.Name, err)
		}
		if fb.IntervalMinutes <= 0 {
			return nil, fmt.Errorf("field boss %q: %w", fb.Name, core.ErrInvalidInterval)
		}
		last, err := core.ParseTime(fb.LastSpawn, loc)
		if err != nil {
			return nil, fmt.Errorf("field boss %q: %w", fb.Name, err)
		}
		records = append(records, core.BossTimerRecord{
			Name:            fb.Name,
			IntervalMinutes: fb.IntervalMinutes,
			LastSpawn:       last,
		})
	}
	return records, nil
}

// WeeklyRecords converts the weekly roster into schedule records.
func (r *Roster) WeeklyRecords() ([]core.WeeklyBossRecord, error) {
	records := make([]core.WeeklyBossRecord, 0, len(r.WeeklyBosses))
	for _, wb := range r.WeeklyBosses {
		if err := core.ValidateBossName(wb.Name); err != nil {
			return nil, fmt.Errorf("weekly boss %q: %w", wb.Name, err)
		}
		rec := core.WeeklyBossRecord{Name: wb.Name, Crons: wb.Cron}
		for _, s := range wb.Slots {
			slot, err := core.ParseSlot(s)
			if err != nil {
				return nil, fmt.Errorf("weekly boss %q: %w", wb.Name, err)
			}
			rec.Slots = append(rec.Slots, slot)
		}
		if len(rec.Slots) == 0 && len(rec.Crons) == 0 {
			return nil, fmt.Errorf("weekly boss %q: %w", wb.Name, core.ErrNoSlots)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Announcements maps boss names to their kill announcement templates.
func (r *Roster) Announcements() map[string]string {
	out := make(map[string]string)
	for _, fb := range r.FieldBosses {
		if fb.KillMessage != "" {
			out[fb.Name] = fb.KillMessage
		}
	}
	return out
}
