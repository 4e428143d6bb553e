package generation

import (
	"context"
	"fmt"
)

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Options carries the provider-specific settings the factory needs.
type Options struct {
	Provider      string
	Model         string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OllamaBaseURL string
}

// New builds a Generator for the configured provider.
func New(ctx context.Context, opts Options) (Generator, error) {
	switch opts.Provider {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, opts.GeminiAPIKey, opts.Model)
	case ProviderOpenAI:
		return NewOpenAIGenerator(opts.OpenAIAPIKey, opts.Model)
	case ProviderOllama:
		return NewOllamaClient(opts.OllamaBaseURL, opts.Model), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q (supported: %s, %s, %s)",
			opts.Provider, ProviderGemini, ProviderOpenAI, ProviderOllama)
	}
}
