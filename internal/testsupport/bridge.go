package testsupport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tabtidy/internal/tabs"
)

// FakeBridge is an in-memory tabs.Bridge for tests. It keeps a mutable
// tab table, records mutations, and can be scripted to fail individual
// operations per tab id.
type FakeBridge struct {
	mu          sync.Mutex
	tabs        map[int64]tabs.Tab
	snapshots   map[int64]tabs.ContentSnapshot
	events      []tabs.Event
	nextTabID   int64
	nextGroupID int64

	CloseErrs    map[int64]error
	SnapshotErrs map[int64]error
	GroupErr     error
	UngroupErr   error
	CreateErr    error
	ListErr      error

	Closed    []int64
	Created   []tabs.CreateRequest
	Grouped   []tabs.Group
	Ungrouped [][]int64
	Moved     []MoveCall
	Pinned    []int64
}

// MoveCall records one Move invocation.
type MoveCall struct {
	ID       int64
	WindowID int64
	Index    int
}

// NewFakeBridge builds a bridge seeded with the given tabs.
func NewFakeBridge(seed ...tabs.Tab) *FakeBridge {
	bridge := &FakeBridge{
		tabs:         make(map[int64]tabs.Tab, len(seed)),
		snapshots:    make(map[int64]tabs.ContentSnapshot),
		CloseErrs:    make(map[int64]error),
		SnapshotErrs: make(map[int64]error),
		nextTabID:    1000,
		nextGroupID:  1,
	}
	for _, tab := range seed {
		bridge.tabs[tab.ID] = tab
		if tab.ID >= bridge.nextTabID {
			bridge.nextTabID = tab.ID + 1
		}
	}
	return bridge
}

// SetSnapshot scripts the snapshot returned for a tab id.
func (b *FakeBridge) SetSnapshot(id int64, snap tabs.ContentSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots[id] = snap
}

// AddEvent appends a lifecycle event to the fake feed.
func (b *FakeBridge) AddEvent(event tabs.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

// Tab returns the current state of one tab and whether it is open.
func (b *FakeBridge) Tab(id int64) (tabs.Tab, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab, ok := b.tabs[id]
	return tab, ok
}

// OpenCount reports how many tabs are open.
func (b *FakeBridge) OpenCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tabs)
}

func (b *FakeBridge) List(ctx context.Context) ([]tabs.Tab, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ListErr != nil {
		return nil, b.ListErr
	}
	listed := make([]tabs.Tab, 0, len(b.tabs))
	for _, tab := range b.tabs {
		listed = append(listed, tab)
	}
	return listed, nil
}

func (b *FakeBridge) Close(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.CloseErrs[id]; err != nil {
		return err
	}
	if _, ok := b.tabs[id]; !ok {
		return fmt.Errorf("tab %d not open", id)
	}
	delete(b.tabs, id)
	b.Closed = append(b.Closed, id)
	return nil
}

func (b *FakeBridge) Create(ctx context.Context, req tabs.CreateRequest) (tabs.Tab, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CreateErr != nil {
		return tabs.Tab{}, b.CreateErr
	}
	tab := tabs.Tab{
		ID:       b.nextTabID,
		URL:      req.URL,
		WindowID: req.WindowID,
		Active:   req.Active,
	}
	b.nextTabID++
	b.tabs[tab.ID] = tab
	b.Created = append(b.Created, req)
	return tab, nil
}

func (b *FakeBridge) Move(ctx context.Context, id, windowID int64, index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab, ok := b.tabs[id]
	if !ok {
		return fmt.Errorf("tab %d not open", id)
	}
	tab.WindowID = windowID
	tab.Index = index
	b.tabs[id] = tab
	b.Moved = append(b.Moved, MoveCall{ID: id, WindowID: windowID, Index: index})
	return nil
}

func (b *FakeBridge) Pin(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab, ok := b.tabs[id]
	if !ok {
		return fmt.Errorf("tab %d not open", id)
	}
	tab.Pinned = true
	b.tabs[id] = tab
	b.Pinned = append(b.Pinned, id)
	return nil
}

func (b *FakeBridge) Group(ctx context.Context, name string, color tabs.GroupColor, ids []int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GroupErr != nil {
		return 0, b.GroupErr
	}
	groupID := b.nextGroupID
	b.nextGroupID++
	b.Grouped = append(b.Grouped, tabs.Group{Name: name, Color: color, TabIDs: append([]int64(nil), ids...)})
	return groupID, nil
}

func (b *FakeBridge) Ungroup(ctx context.Context, ids []int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UngroupErr != nil {
		return b.UngroupErr
	}
	b.Ungrouped = append(b.Ungrouped, append([]int64(nil), ids...))
	return nil
}

func (b *FakeBridge) Snapshot(ctx context.Context, id int64) (tabs.ContentSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.SnapshotErrs[id]; err != nil {
		return tabs.ContentSnapshot{}, err
	}
	return b.snapshots[id], nil
}

func (b *FakeBridge) Events(ctx context.Context, since time.Time) ([]tabs.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	matched := make([]tabs.Event, 0, len(b.events))
	for _, event := range b.events {
		if !event.At.Before(since) {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

var _ tabs.Bridge = (*FakeBridge)(nil)
