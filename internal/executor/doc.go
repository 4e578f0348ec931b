// Package executor applies removals and groupings to the live tab
// collection, and reverses them during undo. Every batch is best
// effort: a per-unit failure is logged, counted, and skipped so one
// bad tab never aborts the run.
package executor
