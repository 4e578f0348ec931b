package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBrowser()
	c.normalizeOrganize()
	c.normalizeRouting()
	c.normalizeProviders()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBrowser() {
	c.Browser.BridgeURL = strings.TrimRight(strings.TrimSpace(c.Browser.BridgeURL), "/")
	if c.Browser.BridgeURL == "" {
		c.Browser.BridgeURL = defaultBridgeURL
	}
	if c.Browser.RequestTimeout <= 0 {
		c.Browser.RequestTimeout = defaultBridgeTimeout
	}
}

func (c *Config) normalizeOrganize() {
	if c.Organize.ImportanceThreshold == 0 {
		c.Organize.ImportanceThreshold = defaultImportanceThreshold
	}
	if c.Organize.RecencyWindowSeconds <= 0 {
		c.Organize.RecencyWindowSeconds = defaultRecencyWindowSeconds
	}
	if c.Organize.MaxGroups <= 0 {
		c.Organize.MaxGroups = defaultMaxGroups
	}
	if c.Organize.SnapshotLimitBytes <= 0 {
		c.Organize.SnapshotLimitBytes = defaultSnapshotLimitBytes
	}
	if c.Organize.AutoTriggerDebounce <= 0 {
		c.Organize.AutoTriggerDebounce = defaultAutoTriggerDebounce
	}
}

func (c *Config) normalizeRouting() {
	normalizeRoute(&c.Routing.Analyze, "openai", defaultOpenAIModel)
	normalizeRoute(&c.Routing.Close, "openai", defaultOpenAIModel)
	normalizeRoute(&c.Routing.Automatic, "gemini", defaultGeminiModel)
}

func normalizeRoute(route *Route, fallbackProvider, fallbackModel string) {
	route.Provider = strings.ToLower(strings.TrimSpace(route.Provider))
	route.Model = strings.TrimSpace(route.Model)
	if route.Provider == "" {
		route.Provider = fallbackProvider
	}
	if route.Model == "" {
		route.Model = defaultModelFor(route.Provider, fallbackModel)
	}
}

func defaultModelFor(provider, fallback string) string {
	switch provider {
	case "openai":
		return defaultOpenAIModel
	case "gemini":
		return defaultGeminiModel
	case "anthropic":
		return defaultAnthropicModel
	default:
		return fallback
	}
}

func (c *Config) normalizeProviders() {
	normalizeCredentials(&c.Providers.OpenAI, defaultOpenAIBaseURL)
	normalizeCredentials(&c.Providers.Gemini, defaultGeminiBaseURL)
	normalizeCredentials(&c.Providers.Anthropic, defaultAnthropicBaseURL)
}

func normalizeCredentials(creds *ProviderCredentials, fallbackBase string) {
	creds.APIKey = strings.TrimSpace(creds.APIKey)
	creds.BaseURL = strings.TrimRight(strings.TrimSpace(creds.BaseURL), "/")
	if creds.BaseURL == "" {
		creds.BaseURL = fallbackBase
	}
	if creds.TimeoutSeconds <= 0 {
		creds.TimeoutSeconds = defaultProviderTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}
