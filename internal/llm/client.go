// Package llm provides the language-model client abstraction used by the
// viewer generator. A small closed set of backends implements one capability
// interface; the active backend is resolved once at startup from whichever
// API-key environment variable is present.
package llm

import "context"

// Client defines the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider represents an LLM provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)
