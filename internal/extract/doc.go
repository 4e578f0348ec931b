// Package extract enriches listed tabs with content snapshots fetched
// from the browser bridge. Extraction is best effort: a tab whose
// snapshot cannot be fetched keeps a zero snapshot and the run
// continues.
package extract
