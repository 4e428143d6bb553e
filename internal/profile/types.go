package profile

import "github.com/kalambet/solace/internal/sentiment"

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TimestampLayout is the wall-clock format recorded on every Turn. Local
// time, matching the persisted histories written by earlier deployments.
const TimestampLayout = "2006-01-02 15:04:05"

// Turn is a single message in a conversation, from either side.
type Turn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Profile is the durable per-user conversational state. Mood and ChatHistory
// are append-only; consumers read them only through the suffix-window
// accessors below, so storage can stay unbounded without read cost growing
// with history length.
type Profile struct {
	Name        string            `json:"name"`
	Mood        []sentiment.Label `json:"mood"`
	Topics      []string          `json:"topics"`
	ChatHistory []Turn            `json:"chat_history"`
}

// LastMoods returns the most recent n mood entries in chronological order.
func (p *Profile) LastMoods(n int) []sentiment.Label {
	return suffix(p.Mood, n)
}

// LastTopics returns the most recent n distinct topics in insertion order.
func (p *Profile) LastTopics(n int) []string {
	return suffix(p.Topics, n)
}

// LastTurns returns the most recent n turns in chronological order.
func (p *Profile) LastTurns(n int) []Turn {
	return suffix(p.ChatHistory, n)
}

func suffix[T any](s []T, n int) []T {
	if n <= 0 || len(s) == 0 {
		return nil
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[len(s)-n:])
	return out
}

// Clone returns a deep copy, so callers can hand a profile across goroutine
// boundaries without sharing backing arrays.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return &Profile{}
	}
	cp := &Profile{Name: p.Name}
	if p.Mood != nil {
		cp.Mood = make([]sentiment.Label, len(p.Mood))
		copy(cp.Mood, p.Mood)
	}
	if p.Topics != nil {
		cp.Topics = make([]string, len(p.Topics))
		copy(cp.Topics, p.Topics)
	}
	if p.ChatHistory != nil {
		cp.ChatHistory = make([]Turn, len(p.ChatHistory))
		copy(cp.ChatHistory, p.ChatHistory)
	}
	return cp
}
