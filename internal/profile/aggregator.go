package profile

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/kalambet/solace/internal/sentiment"
)

// maxTopics caps the rolling topic list; the oldest topic is evicted once
// an eleventh distinct topic appears.
const maxTopics = 10

// minTopicLen filters out short filler words during topic extraction.
const minTopicLen = 4

// ApplyUserTurn folds a user message and its sentiment into the profile:
// the mood is appended, topic candidates are merged into the rolling topic
// list, and a user Turn is recorded at the given time.
func (p *Profile) ApplyUserTurn(content string, mood sentiment.Label, now time.Time) {
	p.Mood = append(p.Mood, mood)

	for _, topic := range ExtractTopics(content) {
		if !contains(p.Topics, topic) {
			p.Topics = append(p.Topics, topic)
		}
	}
	if len(p.Topics) > maxTopics {
		p.Topics = append(p.Topics[:0:0], p.Topics[len(p.Topics)-maxTopics:]...)
	}

	p.appendTurn(RoleUser, content, now)
}

// ApplyAssistantTurn records an assistant reply. Mood and topics are
// derived from user messages only.
func (p *Profile) ApplyAssistantTurn(content string, now time.Time) {
	p.appendTurn(RoleAssistant, content, now)
}

func (p *Profile) appendTurn(role, content string, now time.Time) {
	p.ChatHistory = append(p.ChatHistory, Turn{
		Role:      role,
		Content:   content,
		Timestamp: now.Format(TimestampLayout),
	})
}

// ExtractTopics returns the lowercase alphabetic tokens of the message that
// are long enough to be topic candidates, deduplicated in first-seen order.
func ExtractTopics(content string) []string {
	var topics []string
	for _, word := range strings.Fields(strings.ToLower(content)) {
		if utf8.RuneCountInString(word) < minTopicLen || !isAlpha(word) {
			continue
		}
		if !contains(topics, word) {
			topics = append(topics, word)
		}
	}
	return topics
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
