package llm

import (
	"errors"
	"fmt"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func TestDetectProviderAnthropic(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider failed: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("expected anthropic, got %s", cfg.Provider)
	}
	if cfg.APIKey != "sk-ant-test" {
		t.Errorf("unexpected key: %s", cfg.APIKey)
	}
}

func TestDetectProviderPrecedence(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "sk-openai-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")

	cfg, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider failed: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("anthropic must win when all keys are set, got %s", cfg.Provider)
	}
}

func TestDetectProviderOpenAIFallback(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai-test")

	cfg, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider failed: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected openai, got %s", cfg.Provider)
	}
}

func TestDetectProviderGeminiFallback(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "gm-test")

	cfg, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider failed: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("expected gemini, got %s", cfg.Provider)
	}
}

func TestDetectProviderNoCredentials(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir()) // keep a real user config out of the lookup

	_, err := DetectProvider()
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials, got %v", err)
	}
}

func TestNewClientFromEnvNoCredentials(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())

	if _, err := NewClientFromEnv(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials, got %v", err)
	}
}

func TestNewClientFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		wantType string
	}{
		{"anthropic", ProviderConfig{Provider: ProviderAnthropic, APIKey: "k"}, "*llm.AnthropicClient"},
		{"openai", ProviderConfig{Provider: ProviderOpenAI, APIKey: "k"}, "*llm.OpenAIClient"},
		{"gemini", ProviderConfig{Provider: ProviderGemini, APIKey: "k"}, "*llm.GeminiClient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClientFromConfig(&tt.cfg)
			if err != nil {
				t.Fatalf("NewClientFromConfig failed: %v", err)
			}
			if got := fmt.Sprintf("%T", client); got != tt.wantType {
				t.Errorf("expected %s, got %s", tt.wantType, got)
			}
		})
	}
}

func TestNewClientFromConfigUnknownProvider(t *testing.T) {
	if _, err := NewClientFromConfig(&ProviderConfig{Provider: "cohere", APIKey: "k"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewClientFromConfigModelOverride(t *testing.T) {
	client, err := NewClientFromConfig(&ProviderConfig{
		Provider: ProviderAnthropic,
		APIKey:   "k",
		Model:    "claude-3-5-haiku-20241022",
	})
	if err != nil {
		t.Fatalf("NewClientFromConfig failed: %v", err)
	}
	ac, ok := client.(*AnthropicClient)
	if !ok {
		t.Fatalf("expected AnthropicClient, got %T", client)
	}
	if ac.GetModel() != "claude-3-5-haiku-20241022" {
		t.Errorf("model override not applied, got %s", ac.GetModel())
	}
}
