package classify

import (
	"context"

	"tabtidy/internal/tabs"
)

// Purpose identifies why a classification is being requested. Each
// purpose routes to its own provider and model.
type Purpose string

const (
	PurposeAnalyze   Purpose = "analyze"
	PurposeClose     Purpose = "close"
	PurposeAutomatic Purpose = "automatic"
)

// MaxGroups caps how many groups a result may carry. Provider output
// beyond the cap is dropped in order.
const MaxGroups = 8

// Request is one batch classification call.
type Request struct {
	Tabs      []tabs.Tab
	Threshold int
	// SnapshotLimit bounds the serialized content snapshot per tab, in
	// bytes. Zero means no truncation.
	SnapshotLimit int
}

// IDs returns the tab ids of the request in order.
func (r Request) IDs() []int64 {
	ids := make([]int64, 0, len(r.Tabs))
	for _, tab := range r.Tabs {
		ids = append(ids, tab.ID)
	}
	return ids
}

// Result is a provider's verdict over one batch.
type Result struct {
	CloseIDs  []int64
	Groups    []tabs.Group
	Rationale string
	// Fallback marks results synthesized after a provider failure.
	Fallback bool
}

// Provider performs one raw completion against a vendor API. The
// adapter owns its credentials and model; prompt construction and
// response decoding are shared and live in this package.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
