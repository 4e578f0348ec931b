package api

import (
	"time"

	"tabtidy/internal/journal"
	"tabtidy/internal/preflight"
)

// FromActionRecord converts a journal record into its view form.
func FromActionRecord(record journal.ActionRecord) JournalView {
	view := JournalView{
		Kind:        string(record.Kind),
		JobID:       record.JobID,
		ClosedCount: len(record.ClosedTabs),
		GroupCount:  len(record.GroupedIDBatches),
		Rationale:   record.Rationale,
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, meta := range record.ClosedTabs {
		view.ClosedURLs = append(view.ClosedURLs, meta.URL)
	}
	return view
}

// FromPreflightResults converts preflight outcomes into view form.
func FromPreflightResults(results []preflight.Result) []CheckView {
	views := make([]CheckView, 0, len(results))
	for _, result := range results {
		views = append(views, CheckView{
			Name:   result.Name,
			Passed: result.Passed,
			Detail: result.Detail,
		})
	}
	return views
}
