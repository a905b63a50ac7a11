// Package config holds dataviewer configuration from .dataviewer/config.json.
// Environment variables always win for credentials; the file carries optional
// overrides (model, streamlit binary, hub token) and the logging block.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig is the on-disk configuration.
//
// Supported models by provider:
//   - anthropic: claude-sonnet-4-20250514 (default), claude-3-7-sonnet-20250219
//   - openai:    gpt-4o (default), gpt-4o-mini, gpt-4-turbo
//   - gemini:    gemini-2.5-flash (default), gemini-2.5-pro
type UserConfig struct {
	// Provider selection (anthropic, openai, gemini). Optional; when empty
	// the first configured key wins.
	Provider string `json:"provider,omitempty"`

	// API keys per provider. Environment variables take precedence.
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`

	// Optional model override (see supported models above).
	Model string `json:"model,omitempty"`

	// Hugging Face hub token for gated datasets. HF_TOKEN wins when set.
	HFToken string `json:"hf_token,omitempty"`

	// Streamlit binary used to launch generated viewers. Default "streamlit".
	Streamlit string `json:"streamlit,omitempty"`

	// Debug logging settings.
	Logging LoggingConfig `json:"logging,omitempty"`
}

// LoggingConfig controls the category debug logs under .dataviewer/logs/.
// When DebugMode is false no log files are written.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode,omitempty"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// DefaultUserConfigPath returns the path to .dataviewer/config.json, rooted
// at the nearest directory carrying a .dataviewer directory, else the home
// directory, else the working directory.
func DefaultUserConfigPath() string {
	dir, err := os.Getwd()
	if err == nil {
		for {
			if _, statErr := os.Stat(filepath.Join(dir, ".dataviewer")); statErr == nil {
				return filepath.Join(dir, ".dataviewer", "config.json")
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".dataviewer", "config.json")
	}
	return filepath.Join(".dataviewer", "config.json")
}

// LoadUserConfig loads configuration from the given path. A missing file is
// not an error; it yields the zero config.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating the directory
// if needed.
func (c *UserConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	return nil
}

// GetActiveProvider returns the provider and API key from the config file.
// An explicit Provider setting wins; otherwise keys are checked in priority
// order (anthropic, openai, gemini).
func (c *UserConfig) GetActiveProvider() (provider string, apiKey string) {
	if c.Provider != "" {
		switch c.Provider {
		case "anthropic":
			if c.AnthropicAPIKey != "" {
				return "anthropic", c.AnthropicAPIKey
			}
		case "openai":
			if c.OpenAIAPIKey != "" {
				return "openai", c.OpenAIAPIKey
			}
		case "gemini":
			if c.GeminiAPIKey != "" {
				return "gemini", c.GeminiAPIKey
			}
		}
	}

	if c.AnthropicAPIKey != "" {
		return "anthropic", c.AnthropicAPIKey
	}
	if c.OpenAIAPIKey != "" {
		return "openai", c.OpenAIAPIKey
	}
	if c.GeminiAPIKey != "" {
		return "gemini", c.GeminiAPIKey
	}
	return "", ""
}

// GetHFToken returns the hub token, preferring the HF_TOKEN environment
// variable over the config file.
func (c *UserConfig) GetHFToken() string {
	if tok := os.Getenv("HF_TOKEN"); tok != "" {
		return tok
	}
	return c.HFToken
}

// GetStreamlit returns the streamlit binary to launch viewers with.
func (c *UserConfig) GetStreamlit() string {
	if c.Streamlit != "" {
		return c.Streamlit
	}
	return "streamlit"
}
