package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Browser contains configuration for the browser bridge endpoint.
type Browser struct {
	BridgeURL      string `toml:"bridge_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Organize contains tuning for the organize/close pipelines.
type Organize struct {
	ImportanceThreshold  int  `toml:"importance_threshold"`
	AutoClose            bool `toml:"auto_close"`
	RecencyWindowSeconds int  `toml:"recency_window_seconds"`
	MaxGroups            int  `toml:"max_groups"`
	SnapshotLimitBytes   int  `toml:"snapshot_limit_bytes"`
	AutoTriggerEnabled   bool `toml:"auto_trigger_enabled"`
	AutoTriggerDebounce  int  `toml:"auto_trigger_debounce_seconds"`
}

// Route selects a provider and model for one invocation purpose.
type Route struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// Routing maps invocation purposes to provider routes.
type Routing struct {
	Analyze   Route `toml:"analyze"`
	Close     Route `toml:"close"`
	Automatic Route `toml:"automatic"`
}

// ProviderCredentials contains connection settings for one provider.
type ProviderCredentials struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Providers contains credentials for all supported providers.
type Providers struct {
	OpenAI    ProviderCredentials `toml:"openai"`
	Gemini    ProviderCredentials `toml:"gemini"`
	Anthropic ProviderCredentials `toml:"anthropic"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains settings for push notifications via ntfy.
// An empty topic disables notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config encapsulates all configuration values for tabtidy.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Browser       Browser       `toml:"browser"`
	Organize      Organize      `toml:"organize"`
	Routing       Routing       `toml:"routing"`
	Providers     Providers     `toml:"providers"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tabtidy/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tabtidy.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RouteFor returns the provider route configured for a purpose.
func (c *Config) RouteFor(purpose string) (Route, bool) {
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case "analyze":
		return c.Routing.Analyze, true
	case "close":
		return c.Routing.Close, true
	case "automatic":
		return c.Routing.Automatic, true
	default:
		return Route{}, false
	}
}

// CredentialsFor returns the credentials configured for a provider kind.
func (c *Config) CredentialsFor(provider string) (ProviderCredentials, bool) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return c.Providers.OpenAI, true
	case "gemini":
		return c.Providers.Gemini, true
	case "anthropic":
		return c.Providers.Anthropic, true
	default:
		return ProviderCredentials{}, false
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
