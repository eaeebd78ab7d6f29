// Package core provides the fundamental types for the bosswatch module.
//
// This package contains:
//   - Boss timer and weekly boss records with GORM annotations
//   - Derived spawn projections and severity tiers
//   - Event types for edit/refresh monitoring
//   - The fixed-zone timestamp codec shared by storage and UI
//
// Most users should import the root package github.com/lord9tools/bosswatch
// instead of this package directly.
package core
