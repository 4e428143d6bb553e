// Package session coordinates a single conversational turn: classify,
// aggregate, compose, generate, persist.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kalambet/solace/internal/composer"
	"github.com/kalambet/solace/internal/generation"
	"github.com/kalambet/solace/internal/sentiment"
	"github.com/kalambet/solace/internal/store"
)

// User-visible replies that never come from the generation service.
const (
	// EmptyMessageReply is returned for blank input; no state is mutated.
	EmptyMessageReply = "Please enter a message."
	// FallbackReply substitutes for any generation failure or empty output.
	FallbackReply = "I'm here for you. Let's talk more."
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Request is one inbound message from a presentation layer.
type Request struct {
	UserID  string
	Message string
	Name    string
}

// Result is the outcome of a completed turn. Sentiment and Fallback are
// diagnostics for surfaces that want them; end users only see Reply.
type Result struct {
	Reply     string
	Sentiment sentiment.Label
	Fallback  bool
}

// Orchestrator runs the per-turn state machine over a Store, a sentiment
// classifier, and a generation provider.
//
// The whole-snapshot read-modify-write is serialized behind a single mutex,
// so concurrent turns for different users cannot lose each other's updates.
// The lock is released around the blocking generation call and the snapshot
// re-loaded afterwards; a crash between the two persists leaves the user
// turn durably recorded without its paired reply, which is accepted.
type Orchestrator struct {
	store      store.Store
	classifier sentiment.Classifier
	generator  generation.Generator
	composer   *composer.Composer
	clock      Clock

	mu sync.Mutex
}

// NewOrchestrator wires the turn pipeline with a wall clock.
func NewOrchestrator(st store.Store, cl sentiment.Classifier, gen generation.Generator, comp *composer.Composer) *Orchestrator {
	return NewOrchestratorWithClock(st, cl, gen, comp, realClock{})
}

// NewOrchestratorWithClock is NewOrchestrator with a custom clock (for testing).
func NewOrchestratorWithClock(st store.Store, cl sentiment.Classifier, gen generation.Generator, comp *composer.Composer, clock Clock) *Orchestrator {
	return &Orchestrator{
		store:      st,
		classifier: cl,
		generator:  gen,
		composer:   comp,
		clock:      clock,
	}
}

// Turn processes one inbound message end to end and returns the reply.
// An error is returned only for storage write failures; generation failures
// are absorbed into the fallback reply.
func (o *Orchestrator) Turn(ctx context.Context, req Request) (Result, error) {
	message := strings.TrimSpace(req.Message)

	// A provided display name is persisted regardless of the turn outcome.
	if err := o.updateName(req.UserID, strings.TrimSpace(req.Name)); err != nil {
		return Result{}, err
	}

	if message == "" {
		return Result{Reply: EmptyMessageReply, Sentiment: sentiment.Neutral}, nil
	}

	mood := o.classifier.Classify(ctx, message)

	prompt, err := o.recordUserTurn(req.UserID, message, mood)
	if err != nil {
		return Result{}, err
	}

	reply, fallback := o.generate(ctx, prompt)

	if err := o.recordAssistantTurn(req.UserID, reply); err != nil {
		return Result{}, err
	}

	return Result{Reply: reply, Sentiment: mood, Fallback: fallback}, nil
}

// updateName persists a changed, non-empty display name. Empty names are
// ignored so a later anonymous request cannot clear a stored name.
func (o *Orchestrator) updateName(userID, name string) error {
	if name == "" {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	snap, err := o.store.Load()
	if err != nil {
		return err
	}
	p := snap.Resolve(userID)
	if p.Name == name {
		return nil
	}
	p.Name = name
	return o.store.Save(snap)
}

// recordUserTurn folds the message into the profile, persists, and returns
// the prompt composed from the just-updated profile. The persist must
// succeed before the turn may proceed to generation.
func (o *Orchestrator) recordUserTurn(userID, message string, mood sentiment.Label) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap, err := o.store.Load()
	if err != nil {
		return "", err
	}
	p := snap.Resolve(userID)
	p.ApplyUserTurn(message, mood, o.clock.Now())
	if err := o.store.Save(snap); err != nil {
		return "", err
	}

	return o.composer.Compose(p, message), nil
}

func (o *Orchestrator) recordAssistantTurn(userID, reply string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap, err := o.store.Load()
	if err != nil {
		return err
	}
	snap.Resolve(userID).ApplyAssistantTurn(reply, o.clock.Now())
	return o.store.Save(snap)
}

// generate invokes the provider, substituting the fixed fallback for any
// failure or structurally empty completion. The cause is logged, never
// surfaced in the conversation.
func (o *Orchestrator) generate(ctx context.Context, prompt string) (reply string, fallback bool) {
	reply, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("generation failed, using fallback reply", "error", err)
		return FallbackReply, true
	}
	if strings.TrimSpace(reply) == "" {
		slog.Warn("generation returned empty output, using fallback reply")
		return FallbackReply, true
	}
	return strings.TrimSpace(reply), false
}
