// Package ipc exposes daemon control over JSON-RPC on a Unix domain
// socket: job entry points, status, journal inspection, and the
// persisted settings table.
package ipc
