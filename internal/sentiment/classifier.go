package sentiment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/kalambet/solace/internal/generation"
)

const classifyTimeout = 3 * time.Second

// Label is the tri-state sentiment attached to each user turn.
type Label string

const (
	Negative Label = "negative"
	Neutral  Label = "neutral"
	Positive Label = "positive"
)

// Classifier maps free text to a tri-state sentiment label. Implementations
// must be total: every call yields one of the three labels, never an error.
type Classifier interface {
	Classify(ctx context.Context, text string) Label
}

// Chatter is the structured-chat interface the model-backed classifier
// needs. Satisfied by generation.OllamaClient.
type Chatter interface {
	Chat(ctx context.Context, model string, messages []generation.Message, jsonSchema *generation.Schema) (string, error)
}

// ModelClassifier scores sentiment with a fast local model requesting
// structured JSON output. Any failure (timeout, malformed JSON, unknown
// label) degrades to Neutral so the conversation never blocks on scoring.
type ModelClassifier struct {
	client Chatter
	model  string
}

// NewModelClassifier creates a ModelClassifier using the given chat client
// and model name.
func NewModelClassifier(client Chatter, model string) *ModelClassifier {
	return &ModelClassifier{client: client, model: model}
}

func labelSchema() *generation.Schema {
	return &generation.Schema{
		Type: "object",
		Properties: map[string]generation.SchemaProperty{
			"label": {
				Type:        "string",
				Description: "One of: negative, neutral, positive. A 1-5 star rating is also accepted.",
			},
		},
		Required: []string{"label"},
	}
}

// Classify scores the text. The raw model label is normalized through
// ParseLabel; on any failure the result is Neutral.
func (c *ModelClassifier) Classify(ctx context.Context, text string) Label {
	if strings.TrimSpace(text) == "" {
		return Neutral
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	raw, err := c.client.Chat(ctx, c.model, BuildPrompt(text), labelSchema())
	if err != nil {
		slog.Warn("sentiment classification failed", "error", err)
		return Neutral
	}

	var result struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		slog.Warn("failed to unmarshal sentiment label", "error", err, "response", raw)
		return Neutral
	}

	return ParseLabel(result.Label)
}

// ParseLabel normalizes a model's native output to a tri-state Label.
// Star ratings follow the usual review-model convention: 1-2 stars are
// negative, 4-5 stars positive, everything else neutral.
func ParseLabel(raw string) Label {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "1 star"), strings.HasPrefix(s, "2 star"):
		return Negative
	case strings.HasPrefix(s, "4 star"), strings.HasPrefix(s, "5 star"):
		return Positive
	}
	switch Label(s) {
	case Negative, Neutral, Positive:
		return Label(s)
	}
	return Neutral
}
