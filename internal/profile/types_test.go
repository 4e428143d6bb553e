package profile

import (
	"reflect"
	"testing"

	"github.com/kalambet/solace/internal/sentiment"
)

func TestSuffixWindows(t *testing.T) {
	p := &Profile{
		Mood:   []sentiment.Label{sentiment.Negative, sentiment.Neutral, sentiment.Positive, sentiment.Positive},
		Topics: []string{"work", "sleep", "family"},
		ChatHistory: []Turn{
			{Role: RoleUser, Content: "one"},
			{Role: RoleAssistant, Content: "two"},
			{Role: RoleUser, Content: "three"},
		},
	}

	if got := p.LastMoods(3); !reflect.DeepEqual(got, []sentiment.Label{sentiment.Neutral, sentiment.Positive, sentiment.Positive}) {
		t.Errorf("LastMoods(3) = %v", got)
	}
	if got := p.LastTopics(5); !reflect.DeepEqual(got, []string{"work", "sleep", "family"}) {
		t.Errorf("LastTopics(5) = %v, want all topics when fewer than n", got)
	}
	if got := p.LastTurns(2); len(got) != 2 || got[0].Content != "two" || got[1].Content != "three" {
		t.Errorf("LastTurns(2) = %v", got)
	}
	if got := p.LastTurns(0); got != nil {
		t.Errorf("LastTurns(0) = %v, want nil", got)
	}
	if got := (&Profile{}).LastMoods(3); got != nil {
		t.Errorf("LastMoods on empty profile = %v, want nil", got)
	}
}

func TestSuffixCopies(t *testing.T) {
	p := &Profile{Topics: []string{"a", "b", "c"}}
	got := p.LastTopics(2)
	got[0] = "mutated"
	if p.Topics[1] != "b" {
		t.Error("suffix window shares backing array with profile")
	}
}

func TestClone(t *testing.T) {
	orig := &Profile{
		Name:   "Alice",
		Mood:   []sentiment.Label{sentiment.Positive},
		Topics: []string{"work"},
		ChatHistory: []Turn{
			{Role: RoleUser, Content: "hi", Timestamp: "2025-06-01 12:00:00"},
		},
	}

	cp := orig.Clone()
	if !reflect.DeepEqual(cp, orig) {
		t.Fatalf("Clone() = %+v, want %+v", cp, orig)
	}

	cp.Name = "Bob"
	cp.Mood[0] = sentiment.Negative
	cp.Topics[0] = "sleep"
	cp.ChatHistory[0].Content = "changed"

	if orig.Name != "Alice" || orig.Mood[0] != sentiment.Positive ||
		orig.Topics[0] != "work" || orig.ChatHistory[0].Content != "hi" {
		t.Errorf("mutating clone affected original: %+v", orig)
	}
}

func TestCloneNil(t *testing.T) {
	var p *Profile
	cp := p.Clone()
	if cp == nil {
		t.Fatal("Clone of nil profile returned nil")
	}
	if cp.Name != "" || len(cp.Mood) != 0 {
		t.Errorf("Clone of nil profile not empty: %+v", cp)
	}
}
