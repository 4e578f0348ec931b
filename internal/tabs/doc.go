// Package tabs defines the tab domain model shared across the engine
// and the Bridge contract through which the live browser collection is
// observed and mutated.
package tabs
