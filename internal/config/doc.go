// Package config loads, normalizes, and validates the tabtidy TOML
// configuration: filesystem paths, the browser bridge endpoint,
// per-purpose provider routing, provider credentials, organize tuning,
// and logging output.
package config
