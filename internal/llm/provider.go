package llm

import "context"

// Message is one chat message sent to the text-generation service.
type Message struct {
	Role    string
	Content string
}

// Request is a single text-completion call. The provider is treated as a
// free-form text channel: callers parse whatever comes back.
type Request struct {
	Model       string // Empty uses the provider's configured default
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Provider defines the interface for LLM text-generation providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete performs one chat completion and returns the raw response text
	Complete(ctx context.Context, req Request) (string, error)
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "groq" or "openai"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints (empty uses the provider default)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int
}
