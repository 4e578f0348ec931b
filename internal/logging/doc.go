// Package logging configures slog output for the daemon and CLI and
// provides attribute helpers plus standardized field keys used across
// the engine.
package logging
