// Package llm provides the chat-completion client abstraction and provider
// implementations. The rest of the system sees role-tagged messages in, one
// completion string out; provider failures surface as opaque errors.
package llm

import (
	"context"
	"fmt"
)

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// Client is an abstraction over chat-completion providers.
type Client interface {
	// Generate sends the conversation and returns the completion text.
	Generate(ctx context.Context, messages []Message) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Provider identifies a chat-completion backend.
type Provider string

// Supported providers.
const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Config holds provider selection and credentials.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	BaseURL  string // OpenAI-compatible endpoints only
}

// DefaultModel returns the default model name for a provider.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "gpt-4o-mini"
	}
}

// NewClient creates a chat-completion client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case ProviderOpenAI, "":
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
