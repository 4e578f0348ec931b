// Package daemon wraps the engine in a long-running process: it
// enforces single-instance execution with a file lock and polls the
// browser bridge for tab lifecycle events that feed the recency
// tracker and the automatic trigger.
package daemon
