// Package models defines the core domain models for the chore tracker.
//
// # Models
//
//   - User: a registered account, identified to other members by username
//   - Group: a household or team whose members share events and costs
//   - Event: a one-off or recurring chore scheduled within a group
//   - Cost: a shared expense paid by one member and split across others
//
// # Design Principles
//
//  1. Members are referenced by username, never by pointer, so models can be
//     passed between layers without cycles.
//  2. Recurrence and split arithmetic live in their own packages
//     (recurrence, calendar, calculator); models only carry data.
//  3. Timestamps are Unix seconds; calendar dates are time.Time values whose
//     time-of-day is kept for display but ignored when matching days.
package models
