package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var knownProviders = map[string]struct{}{
	"openai":    {},
	"gemini":    {},
	"anthropic": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBrowser(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateRouting(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBrowser() error {
	parsed, err := url.Parse(c.Browser.BridgeURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("browser.bridge_url %q is not a valid URL", c.Browser.BridgeURL)
	}
	if c.Browser.RequestTimeout <= 0 {
		return errors.New("browser.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if c.Organize.ImportanceThreshold < 1 || c.Organize.ImportanceThreshold > 10 {
		return errors.New("organize.importance_threshold must be between 1 and 10")
	}
	if c.Organize.MaxGroups < 1 {
		return errors.New("organize.max_groups must be at least 1")
	}
	if c.Organize.RecencyWindowSeconds <= 0 {
		return errors.New("organize.recency_window_seconds must be positive")
	}
	if c.Organize.SnapshotLimitBytes <= 0 {
		return errors.New("organize.snapshot_limit_bytes must be positive")
	}
	return nil
}

func (c *Config) validateRouting() error {
	routes := map[string]Route{
		"routing.analyze":   c.Routing.Analyze,
		"routing.close":     c.Routing.Close,
		"routing.automatic": c.Routing.Automatic,
	}
	for key, route := range routes {
		if _, ok := knownProviders[route.Provider]; !ok {
			return fmt.Errorf("%s.provider %q is not one of openai, gemini, anthropic", key, route.Provider)
		}
		if strings.TrimSpace(route.Model) == "" {
			return fmt.Errorf("%s.model must be set", key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
