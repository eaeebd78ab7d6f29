package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lord9tools/bosswatch/pkg/core"
)

// GormStore implements Store using GORM, typically over SQLite.
type GormStore struct {
	db   *gorm.DB
	path string
}

// NewGormStore creates a new GORM-backed store. path identifies the backing
// database in write errors.
func NewGormStore(db *gorm.DB, path string) *GormStore {
	if path == "" {
		path = db.Name()
	}
	return &GormStore{db: db, path: path}
}

// DB exposes the underlying handle for callers that layer extra queries.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// Migrate creates the necessary tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&core.BossTimerRecord{}, &core.EditHistoryEntry{})
}

// Load returns all boss timer records in insertion order.
func (s *GormStore) Load(ctx context.Context) ([]core.BossTimerRecord, error) {
	var records []core.BossTimerRecord
	err := s.db.WithContext(ctx).
		Order("created_at ASC, name ASC").
		Find(&records).Error
	return records, err
}

// Save upserts the record set in one transaction.
func (s *GormStore) Save(ctx context.Context, records []core.BossTimerRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Save(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return core.WriteFailed(s.path, err)
	}
	return nil
}

// AppendHistory inserts one edit entry.
func (s *GormStore) AppendHistory(ctx context.Context, entry core.EditHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.EditedAt.IsZero() {
		entry.EditedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return core.WriteFailed(s.path, err)
	}
	return nil
}

// History returns all edit entries, oldest first.
func (s *GormStore) History(ctx context.Context) ([]core.EditHistoryEntry, error) {
	var entries []core.EditHistoryEntry
	err := s.db.WithContext(ctx).
		Order("edited_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
