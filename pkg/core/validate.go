package core

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input limits
const (
	// MaxBossNameLength is the maximum length for boss names
	MaxBossNameLength = 64

	// MaxEditorNameLength is the maximum length for editor identities
	MaxEditorNameLength = 64
)

// validBossName matches names starting with a letter, allowing spaces,
// digits, apostrophes, hyphens and dots after it.
var validBossName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 '\-\.]*$`)

// ValidateBossName validates a boss name
func ValidateBossName(name string) error {
	if name == "" {
		return ErrInvalidBossName
	}
	if len(name) > MaxBossNameLength {
		return ErrBossNameTooLong
	}
	if !validBossName.MatchString(name) {
		return ErrInvalidBossName
	}
	return nil
}

// SanitizeEditor trims and bounds an editor identity, stripping control
// characters. Empty input becomes "Unknown".
func SanitizeEditor(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "Unknown"
	}
	if len(out) > MaxEditorNameLength {
		// Truncate on a rune boundary so the stored identity stays valid
		// UTF-8.
		cut := MaxEditorNameLength
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return out
}
