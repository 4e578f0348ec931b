// Package journal persists the single-slot record of the most recent
// reversible action, plus a small settings table, backed by SQLite.
// Recording overwrites unconditionally; undo consumes the slot.
package journal
