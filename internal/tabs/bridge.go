package tabs

import (
	"context"
	"time"
)

// CreateRequest describes a tab to open through the bridge.
type CreateRequest struct {
	URL      string
	WindowID int64
	Active   bool
}

// Bridge is the live tab collection host contract. Implementations
// talk to a real browser (internal/browser) or an in-memory fake
// (internal/testsupport). All calls are synchronous; batch tolerance
// is the caller's concern.
type Bridge interface {
	// List enumerates every open tab across all windows.
	List(ctx context.Context) ([]Tab, error)
	// Close removes one tab by id.
	Close(ctx context.Context, id int64) error
	// Create opens a new tab. A zero WindowID targets the current window.
	Create(ctx context.Context, req CreateRequest) (Tab, error)
	// Move places a tab at an index inside a window.
	Move(ctx context.Context, id, windowID int64, index int) error
	// Pin pins a tab.
	Pin(ctx context.Context, id int64) error
	// Group creates one labeled, colored group over the given ids.
	Group(ctx context.Context, name string, color GroupColor, ids []int64) (int64, error)
	// Ungroup removes the given ids from whatever groups hold them.
	Ungroup(ctx context.Context, ids []int64) error
	// Snapshot fetches the extracted content snapshot for one tab.
	Snapshot(ctx context.Context, id int64) (ContentSnapshot, error)
	// Events returns tab lifecycle events at or after since.
	Events(ctx context.Context, since time.Time) ([]Event, error)
}
