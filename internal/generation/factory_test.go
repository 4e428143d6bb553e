package generation

import (
	"context"
	"errors"
	"testing"
)

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), Options{Provider: "anthropic"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewOllama(t *testing.T) {
	gen, err := New(context.Background(), Options{
		Provider:      ProviderOllama,
		Model:         "llama3",
		OllamaBaseURL: "http://localhost:11434",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := gen.(*OllamaClient); !ok {
		t.Errorf("got %T, want *OllamaClient", gen)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), Options{Provider: ProviderGemini}); err == nil {
		t.Error("expected error for missing gemini key")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), Options{Provider: ProviderOpenAI}); err == nil {
		t.Error("expected error for missing openai key")
	}
}

func TestRetryClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		rateLimit bool
		server    bool
	}{
		{"nil", nil, false, false},
		{"429", errors.New("HTTP 429 Too Many Requests"), true, false},
		{"rate limit", errors.New("rate limit exceeded"), true, false},
		{"500", errors.New("HTTP 500"), false, true},
		{"server_error", errors.New(`{"type": "server_error"}`), false, true},
		{"auth", errors.New("HTTP 401 Unauthorized"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimitError(tt.err); got != tt.rateLimit {
				t.Errorf("isRateLimitError = %v, want %v", got, tt.rateLimit)
			}
			if got := isServerError(tt.err); got != tt.server {
				t.Errorf("isServerError = %v, want %v", got, tt.server)
			}
		})
	}
}
