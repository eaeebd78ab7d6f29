// Package schedule provides the respawn time arithmetic for bosswatch.
//
// This package includes:
//   - Schedule interface for computing the next occurrence of an event
//   - FixedIntervalTimer for field bosses that respawn a fixed duration
//     after the last recorded kill
//   - WeeklySchedule for bosses bound to weekday/time-of-day slots
//   - CronSlot for slots expressed as cron expressions
//
// All projections are pure functions of the schedule state and "now";
// nothing here mutates persisted records.
package schedule
