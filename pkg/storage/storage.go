package storage

import (
	"context"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// Store defines the persistence layer for boss timers and edit history.
type Store interface {
	// Migrate prepares the backing store (tables, files, directories).
	Migrate(ctx context.Context) error

	// Records
	Load(ctx context.Context) ([]core.BossTimerRecord, error)
	Save(ctx context.Context, records []core.BossTimerRecord) error

	// History
	AppendHistory(ctx context.Context, entry core.EditHistoryEntry) error
	History(ctx context.Context) ([]core.EditHistoryEntry, error)
}
