// Package api holds presentation DTOs shared by the IPC layer and the
// CLI, decoupling wire shapes from engine and journal internals.
package api
