package core

import "time"

// Event is the interface for all scheduler events.
type Event interface {
	eventMarker()
}

// EditRecorded is emitted after an edit has been persisted.
type EditRecorded struct {
	Entry     EditHistoryEntry
	NextSpawn time.Time
	Timestamp time.Time
}

func (*EditRecorded) eventMarker() {}

// RecordsNormalized is emitted when loading the store substituted defaults
// for malformed persisted records.
type RecordsNormalized struct {
	Substituted int
	Dropped     int
	Timestamp   time.Time
}

func (*RecordsNormalized) eventMarker() {}

// SnapshotRefreshed is emitted by the refresher after recomputing the
// projection.
type SnapshotRefreshed struct {
	Next      DerivedSpawn
	Timestamp time.Time
}

func (*SnapshotRefreshed) eventMarker() {}
