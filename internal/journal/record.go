package journal

import (
	"time"

	"tabtidy/internal/tabs"
)

// Kind describes what a recorded action actually did.
type Kind string

const (
	KindClose     Kind = "close"
	KindGroup     Kind = "group"
	KindComposite Kind = "composite"
	KindNone      Kind = "none"
)

// DeriveKind computes the record kind from what happened, not what was
// requested.
func DeriveKind(closedCount, groupedBatches int) Kind {
	switch {
	case closedCount > 0 && groupedBatches > 0:
		return KindComposite
	case closedCount > 0:
		return KindClose
	case groupedBatches > 0:
		return KindGroup
	default:
		return KindNone
	}
}

// ActionRecord is the undo payload for one completed action. Closed
// tab metadata is captured before each close; grouped batches are
// captured after each successful grouping.
type ActionRecord struct {
	Kind             Kind                 `json:"kind"`
	JobID            string               `json:"job_id"`
	ClosedTabs       []tabs.ClosedTabMeta `json:"closed_tabs"`
	GroupedIDBatches [][]int64            `json:"grouped_id_batches"`
	Rationale        string               `json:"rationale,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}
