package testsupport

import (
	"path/filepath"
	"testing"

	"tabtidy/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Providers.OpenAI.APIKey = "test-openai"
	cfg.Providers.Gemini.APIKey = "test-gemini"
	cfg.Providers.Anthropic.APIKey = "test-anthropic"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithThreshold sets the importance threshold on the test config.
func WithThreshold(threshold int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.ImportanceThreshold = threshold
	}
}

// WithRoute overrides one purpose route on the test config.
func WithRoute(purpose, provider, model string) ConfigOption {
	return func(cfg *config.Config) {
		route := config.Route{Provider: provider, Model: model}
		switch purpose {
		case "analyze":
			cfg.Routing.Analyze = route
		case "close":
			cfg.Routing.Close = route
		case "automatic":
			cfg.Routing.Automatic = route
		}
	}
}
