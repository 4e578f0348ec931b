package config

const (
	defaultStateDir             = "~/.local/share/tabtidy"
	defaultLogDir               = "~/.local/share/tabtidy/logs"
	defaultBridgeURL            = "http://127.0.0.1:7433"
	defaultBridgeTimeout        = 10
	defaultImportanceThreshold  = 5
	defaultRecencyWindowSeconds = 30
	defaultMaxGroups            = 8
	defaultSnapshotLimitBytes   = 1500
	defaultAutoTriggerDebounce  = 30
	defaultLogFormat            = "text"
	defaultLogLevel             = "info"

	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultGeminiBaseURL    = "https://generativelanguage.googleapis.com"
	defaultAnthropicBaseURL = "https://api.anthropic.com"

	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultAnthropicModel = "claude-3-5-haiku-latest"

	defaultProviderTimeout = 60

	defaultNtfyTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Browser: Browser{
			BridgeURL:      defaultBridgeURL,
			RequestTimeout: defaultBridgeTimeout,
		},
		Organize: Organize{
			ImportanceThreshold:  defaultImportanceThreshold,
			AutoClose:            true,
			RecencyWindowSeconds: defaultRecencyWindowSeconds,
			MaxGroups:            defaultMaxGroups,
			SnapshotLimitBytes:   defaultSnapshotLimitBytes,
			AutoTriggerEnabled:   false,
			AutoTriggerDebounce:  defaultAutoTriggerDebounce,
		},
		Routing: Routing{
			Analyze:   Route{Provider: "openai", Model: defaultOpenAIModel},
			Close:     Route{Provider: "openai", Model: defaultOpenAIModel},
			Automatic: Route{Provider: "gemini", Model: defaultGeminiModel},
		},
		Providers: Providers{
			OpenAI:    ProviderCredentials{BaseURL: defaultOpenAIBaseURL, TimeoutSeconds: defaultProviderTimeout},
			Gemini:    ProviderCredentials{BaseURL: defaultGeminiBaseURL, TimeoutSeconds: defaultProviderTimeout},
			Anthropic: ProviderCredentials{BaseURL: defaultAnthropicBaseURL, TimeoutSeconds: defaultProviderTimeout},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
	}
}
