package core

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrInvalidTimestamp = errors.New("bosswatch: invalid timestamp")
	ErrInvalidSlot      = errors.New("bosswatch: invalid weekly slot")
	ErrNoFieldTimers    = errors.New("bosswatch: no field timers configured")
	ErrNoSlots          = errors.New("bosswatch: weekly boss has no slots")
	ErrUnknownBoss      = errors.New("bosswatch: unknown boss")
	ErrInvalidInterval  = errors.New("bosswatch: interval must be positive")
	ErrInvalidBossName  = errors.New("bosswatch: invalid boss name")
	ErrBossNameTooLong  = errors.New("bosswatch: boss name too long")
)

// StoreWriteError indicates a failed persisted-store write. In-memory state is
// left unchanged when it occurs, so retrying the operation is safe.
type StoreWriteError struct {
	Path string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write %s: %v", e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// WriteFailed wraps an error as a StoreWriteError for the given path.
func WriteFailed(path string, err error) error {
	return &StoreWriteError{Path: path, Err: err}
}
