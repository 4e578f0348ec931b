// Package safety guards tab removal. Filter strips active, protected,
// and recently touched tabs from a close candidate set; RecencyTracker
// maintains the bounded last-touched map that feeds it.
package safety
