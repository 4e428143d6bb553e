package generation

import "context"

// Generator abstracts the text-generation service. Given a fully composed
// prompt it returns a natural-language completion. Callers treat any error,
// or an empty completion, as a recoverable failure.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Message represents a chat message in the provider wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Schema describes the expected JSON output structure for structured chat responses.
type Schema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// SchemaProperty describes a single field within a Schema.
type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
