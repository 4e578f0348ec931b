// Package notifications delivers job milestones via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The daemon translates progress events into notifications so the
// pipeline itself stays free of HTTP glue.
package notifications
