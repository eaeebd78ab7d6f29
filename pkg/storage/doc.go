// Package storage provides persistence for boss timer records and the edit
// history log.
//
// This package includes:
//   - JSONStore: the legacy flat-file format (ordered triples), with
//     normalization of malformed and legacy-shaped entries
//   - GormStore: a GORM-based implementation backed by SQLite
//
// Both implement the Store interface. Writes are atomic: JSONStore writes a
// temp file and renames it over the target, GormStore wraps multi-row saves
// in a transaction.
package storage
