package ipc_test

import (
	"context"
	"path/filepath"
	"testing"

	"tabtidy/internal/classify"
	"tabtidy/internal/daemon"
	"tabtidy/internal/engine"
	"tabtidy/internal/ipc"
	"tabtidy/internal/progress"
	"tabtidy/internal/tabs"
	"tabtidy/internal/testsupport"
)

type scriptedClassifier struct {
	result classify.Result
}

func (c scriptedClassifier) Classify(ctx context.Context, purpose classify.Purpose, req classify.Request) classify.Result {
	return c.result
}

func startServer(t *testing.T, bridge tabs.Bridge, classifier engine.Classifier) *ipc.Client {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	eng := engine.New(cfg, bridge, classifier, store, progress.NewBus(), nil)
	d, err := daemon.New(cfg, eng, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(d.Stop)

	socket := filepath.Join(t.TempDir(), ipc.SocketName)
	server, err := ipc.NewServer(context.Background(), socket, d, nil)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestOrganizeUndoRoundTrip(t *testing.T) {
	bridge := testsupport.NewFakeBridge(
		tabs.Tab{ID: 1, URL: "https://a.example", WindowID: 1},
		tabs.Tab{ID: 2, URL: "https://b.example", WindowID: 1},
		tabs.Tab{ID: 3, URL: "https://c.example", WindowID: 1, Active: true},
	)
	classifier := scriptedClassifier{result: classify.Result{
		CloseIDs: []int64{2},
		Groups:   []tabs.Group{{Name: "Rest", Color: tabs.ColorBlue, TabIDs: []int64{1, 3}}},
	}}
	client := startServer(t, bridge, classifier)

	organize, err := client.Organize(5, true)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if organize.Conflict || organize.JobID == "" {
		t.Fatalf("unexpected organize response: %+v", organize)
	}
	if bridge.OpenCount() != 2 {
		t.Fatalf("expected tab closed through ipc, %d open", bridge.OpenCount())
	}

	journalResp, err := client.Journal()
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	if !journalResp.Found || journalResp.Record.Kind != "composite" {
		t.Fatalf("unexpected journal view: %+v", journalResp)
	}

	undo, err := client.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undo.Conflict || undo.NothingToUndo {
		t.Fatalf("unexpected undo response: %+v", undo)
	}
	if bridge.OpenCount() != 3 {
		t.Fatalf("expected tab restored, %d open", bridge.OpenCount())
	}

	again, err := client.Undo()
	if err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if !again.NothingToUndo {
		t.Fatalf("expected NothingToUndo, got %+v", again)
	}
}

func TestStatusReportsRunningDaemon(t *testing.T) {
	client := startServer(t, testsupport.NewFakeBridge(), scriptedClassifier{})

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Status.Running || status.Status.PID == 0 {
		t.Fatalf("unexpected status: %+v", status.Status)
	}
	if status.Status.Phase != string(engine.PhaseIdle) {
		t.Fatalf("expected Idle phase, got %q", status.Status.Phase)
	}
	if len(status.Checks) == 0 {
		t.Fatal("expected preflight checks in status")
	}
}

func TestSettingsOverIPC(t *testing.T) {
	client := startServer(t, testsupport.NewFakeBridge(), scriptedClassifier{})

	if err := client.SettingSet("threshold", "7"); err != nil {
		t.Fatalf("SettingSet: %v", err)
	}
	got, err := client.SettingGet("threshold")
	if err != nil {
		t.Fatalf("SettingGet: %v", err)
	}
	if !got.Found || got.Value != "7" {
		t.Fatalf("unexpected setting: %+v", got)
	}
	if err := client.SettingRemove("threshold"); err != nil {
		t.Fatalf("SettingRemove: %v", err)
	}
	got, err = client.SettingGet("threshold")
	if err != nil {
		t.Fatalf("SettingGet after remove: %v", err)
	}
	if got.Found {
		t.Fatalf("expected setting removed, got %+v", got)
	}
}

func TestTestNotifyOverIPC(t *testing.T) {
	client := startServer(t, testsupport.NewFakeBridge(), scriptedClassifier{})

	resp, err := client.TestNotify()
	if err != nil {
		t.Fatalf("TestNotify: %v", err)
	}
	if resp.Message == "" {
		t.Fatalf("expected confirmation message, got %+v", resp)
	}
}

func TestSyntheticTabsOverIPC(t *testing.T) {
	bridge := testsupport.NewFakeBridge()
	client := startServer(t, bridge, scriptedClassifier{})

	resp, err := client.SyntheticTabs(3)
	if err != nil {
		t.Fatalf("SyntheticTabs: %v", err)
	}
	if resp.Conflict {
		t.Fatalf("unexpected conflict: %+v", resp)
	}
	if bridge.OpenCount() != 3 {
		t.Fatalf("expected 3 synthetic tabs, got %d", bridge.OpenCount())
	}
}
