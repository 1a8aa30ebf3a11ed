// Package llm provides the chat-completion client used by the optimization
// assistant, with the endpoint, credential and model supplied at runtime.
package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over chat-completion providers.
type Client interface {
	// Complete sends a single-message chat request and returns the raw
	// assistant text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Provider represents a chat-completion provider.
type Provider string

// Supported providers.
const (
	// ProviderOpenAI is any OpenAI-compatible chat-completions endpoint.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini API.
	ProviderGemini Provider = "gemini"
)

// Config holds everything needed to reach a model endpoint.
type Config struct {
	Provider    Provider
	Endpoint    string
	Credential  string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Default sampling parameters. Tunable defaults, not a contract.
const (
	DefaultTemperature float32 = 0.7
	DefaultMaxTokens           = 1024
)

// DefaultConfig returns an OpenAI-compatible configuration with the default
// sampling parameters; endpoint, credential and model come from settings.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// NewClient creates a client for the configured provider. Unrecognized
// providers fall back to the OpenAI-compatible client, which covers the
// widest range of hosted endpoints.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderOpenAI:
		return NewOpenAIClient(config), nil
	default:
		return NewOpenAIClient(config), nil
	}
}

// StatusError is returned when the endpoint answers with a non-success
// HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint returned status %d: %s", e.StatusCode, e.Body)
}
