// Package gemini adapts the Gemini generate-content API to the
// classify.Provider contract.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tabtidy/internal/config"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	maxOutputTokens    = 4096
	temperature        = 0.2
)

// Client issues generate-content requests.
type Client struct {
	creds      config.ProviderCredentials
	model      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an adapter for one model.
func NewClient(creds config.ProviderCredentials, model string, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if creds.TimeoutSeconds > 0 {
		timeout = time.Duration(creds.TimeoutSeconds) * time.Second
	}
	client := &Client{
		creds:      creds,
		model:      strings.TrimSpace(model),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Name identifies the vendor for routing and fallback messages.
func (c *Client) Name() string { return "gemini" }

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("gemini request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Complete sends the prompt and returns the first candidate's text.
// The credential travels as a query parameter; the model is embedded
// in the request path.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.creds.APIKey) == "" {
		return "", errors.New("gemini complete: api key required")
	}
	var payload generateRequest
	payload.Contents = []generateContent{{Parts: []generatePart{{Text: prompt}}}}
	payload.GenerationConfig.Temperature = temperature
	payload.GenerationConfig.MaxOutputTokens = maxOutputTokens

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini complete: encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.creds.BaseURL, "/"), url.PathEscape(c.model), url.QueryEscape(c.creds.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("gemini complete: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini complete: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini complete: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", &httpStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("gemini complete: decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini complete: empty candidates")
	}
	content := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if content == "" {
		return "", errors.New("gemini complete: empty content")
	}
	return content, nil
}
