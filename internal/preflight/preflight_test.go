package preflight_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tabtidy/internal/preflight"
	"tabtidy/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("State directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for writable dir: %+v", result)
	}

	missing := filepath.Join(dir, "nope")
	result = preflight.CheckDirectoryAccess("State directory", missing)
	if result.Passed {
		t.Fatalf("expected failure for missing dir: %+v", result)
	}
}

func TestCheckBridge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tabs":[]}`))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Browser.BridgeURL = server.URL
	result := preflight.CheckBridge(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected reachable bridge: %+v", result)
	}

	cfg.Browser.BridgeURL = "http://127.0.0.1:1"
	result = preflight.CheckBridge(context.Background(), cfg)
	if result.Passed {
		t.Fatalf("expected unreachable bridge: %+v", result)
	}
}

func TestCheckCredentialsFlagsMissingKeys(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Providers.OpenAI.APIKey = ""

	results := preflight.CheckCredentials(cfg)
	failed := 0
	for _, result := range results {
		if !result.Passed {
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly the openai check to fail: %+v", results)
	}
}
