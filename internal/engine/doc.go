// Package engine sequences the organize, close-only, and undo
// pipelines. One engine owns the single-flight job lock, the recency
// tracker, and the debounced automatic trigger; every tab mutation
// flows through it.
package engine
