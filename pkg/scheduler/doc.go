// Package scheduler aggregates field and weekly boss schedules into a single
// rolling projection and owns the one mutation path, RecordEdit.
//
// All reads (Project, NextGlobalSpawn) are pure functions of the stored
// records and "now". Concurrent edits are serialized by the scheduler's
// mutex; the persisted store is written atomically so a failed write leaves
// both disk and memory unchanged.
package scheduler
