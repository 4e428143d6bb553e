package sentiment

import "github.com/kalambet/solace/internal/generation"

const systemPrompt = `You are a sentiment scoring engine. Rate the emotional tone of the user's message. Your output must be ONLY a single valid JSON object that conforms to the provided schema. Do not include any other text, prose, or markdown.

Labels:
- "negative": distress, sadness, anger, fear, hopelessness
- "neutral": factual, mixed, or emotionally flat
- "positive": relief, gratitude, hope, joy

A star rating between "1 star" and "5 stars" is also accepted and will be mapped to the labels above.`

// BuildPrompt constructs the chat messages for sentiment scoring.
func BuildPrompt(text string) []generation.Message {
	return []generation.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	}
}
