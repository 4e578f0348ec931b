package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tabtidy/internal/classify/anthropic"
	"tabtidy/internal/config"
)

func TestCompleteSendsMessagesEnvelope(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"reasoning\":\"ok\"}"}]}`))
	}))
	defer server.Close()

	client := anthropic.NewClient(config.ProviderCredentials{
		APIKey:  "a-test",
		BaseURL: server.URL,
	}, "claude-3-5-haiku-latest", anthropic.WithHTTPClient(server.Client()))

	content, err := client.Complete(context.Background(), "organize these")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != `{"reasoning":"ok"}` {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotKey != "a-test" || gotVersion != "2023-06-01" {
		t.Fatalf("unexpected headers: key=%q version=%q", gotKey, gotVersion)
	}
	if gotBody.Model != "claude-3-5-haiku-latest" || gotBody.MaxTokens == 0 {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Content[0].Type != "text" {
		t.Fatalf("unexpected message shape: %+v", gotBody.Messages)
	}
}

func TestCompleteSkipsNonTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"thinking","text":""},{"type":"text","text":"payload"}]}`))
	}))
	defer server.Close()

	client := anthropic.NewClient(config.ProviderCredentials{
		APIKey:  "a-test",
		BaseURL: server.URL,
	}, "claude-3-5-haiku-latest", anthropic.WithHTTPClient(server.Client()))

	content, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "payload" {
		t.Fatalf("unexpected content: %q", content)
	}
}
