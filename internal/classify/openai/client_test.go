package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tabtidy/internal/classify/openai"
	"tabtidy/internal/config"
)

func TestCompleteSendsChatEnvelope(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"tabsToClose\":[]}"}}]}`))
	}))
	defer server.Close()

	client := openai.NewClient(config.ProviderCredentials{
		APIKey:  "sk-test",
		BaseURL: server.URL,
	}, "gpt-4o-mini", openai.WithHTTPClient(server.Client()))

	content, err := client.Complete(context.Background(), "organize these")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != `{"tabsToClose":[]}` {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" || len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	client := openai.NewClient(config.ProviderCredentials{BaseURL: "http://unused"}, "gpt-4o-mini")
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestCompleteSurfacesHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := openai.NewClient(config.ProviderCredentials{
		APIKey:  "sk-test",
		BaseURL: server.URL,
	}, "gpt-4o-mini", openai.WithHTTPClient(server.Client()))

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error from 429 response")
	}
}
