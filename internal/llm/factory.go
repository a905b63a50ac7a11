package llm

import (
	"errors"
	"fmt"
	"os"

	"dataviewer/internal/config"
)

// ErrNoCredentials indicates that no supported API key is configured.
// The command surface reports it as a configuration error before any
// dataset work is attempted.
var ErrNoCredentials = errors.New("no API key found; set one of: ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY")

// ProviderConfig holds the resolved provider and API key.
type ProviderConfig struct {
	Provider Provider
	APIKey   string
	Model    string // optional model override
}

// DetectProvider inspects environment variables first, then the user config
// file. The first variable present wins (ANTHROPIC > OPENAI > GEMINI).
func DetectProvider() (*ProviderConfig, error) {
	providers := []struct {
		envVar   string
		provider Provider
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic},
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"GEMINI_API_KEY", ProviderGemini},
	}

	modelOverride := ""
	userCfg, err := config.LoadUserConfig(config.DefaultUserConfigPath())
	if err == nil {
		modelOverride = userCfg.Model
	}

	for _, p := range providers {
		if key := os.Getenv(p.envVar); key != "" {
			return &ProviderConfig{Provider: p.provider, APIKey: key, Model: modelOverride}, nil
		}
	}

	// Fall back to keys stored in .dataviewer/config.json.
	if err == nil {
		if providerStr, apiKey := userCfg.GetActiveProvider(); apiKey != "" {
			return &ProviderConfig{Provider: Provider(providerStr), APIKey: apiKey, Model: modelOverride}, nil
		}
	}

	return nil, ErrNoCredentials
}

// NewClientFromEnv creates an LLM client based on environment variables or
// the user config file.
func NewClientFromEnv() (Client, error) {
	cfg, err := DetectProvider()
	if err != nil {
		return nil, err
	}
	return NewClientFromConfig(cfg)
}

// NewClientFromConfig creates an LLM client from a provider config.
func NewClientFromConfig(cfg *ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		client := NewAnthropicClient(cfg.APIKey)
		if cfg.Model != "" {
			client.SetModel(cfg.Model)
		}
		return client, nil

	case ProviderOpenAI:
		client := NewOpenAIClient(cfg.APIKey)
		if cfg.Model != "" {
			client.SetModel(cfg.Model)
		}
		return client, nil

	case ProviderGemini:
		client := NewGeminiClient(cfg.APIKey)
		if cfg.Model != "" {
			client.SetModel(cfg.Model)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
