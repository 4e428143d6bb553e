// Package api exposes the chat backend over HTTP and MCP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kalambet/solace/internal/profile"
	"github.com/kalambet/solace/internal/sentiment"
	"github.com/kalambet/solace/internal/session"
	"github.com/kalambet/solace/internal/store"
)

const maxRequestBodySize = 1 << 20 // 1MB

const defaultHistoryLimit = 10

// Turner runs one conversational turn. Implemented by session.Orchestrator.
type Turner interface {
	Turn(ctx context.Context, req session.Request) (session.Result, error)
}

// Deps holds the handler's collaborators.
type Deps struct {
	Turner Turner
	Store  store.Store
	// Token guards the profile/history routes when non-empty.
	Token string
}

// NewHandler returns the HTTP handler: POST /chat for conversation,
// /health, and bearer-guarded profile inspection routes for dashboards.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Post("/chat", handleChat(deps.Turner))

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Get("/profiles/{userID}", handleProfileSummary(deps.Store))
		r.Get("/profiles/{userID}/history", handleHistory(deps.Store))
		r.Get("/profiles/{userID}/moods", handleMoods(deps.Store))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ChatRequest is the inbound message shape consumed from presentation layers.
type ChatRequest struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatResponse carries the reply. UserID echoes the caller's identifier, or
// the freshly minted one when the request arrived without it.
type ChatResponse struct {
	Response string `json:"response"`
	UserID   string `json:"user_id"`
}

func handleChat(turner Turner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		userID := req.UserID
		if userID == "" {
			userID = uuid.New().String()
		}

		result, err := turner.Turn(r.Context(), session.Request{
			UserID:  userID,
			Message: req.Message,
			Name:    req.Name,
		})
		if err != nil {
			httpError(w, http.StatusInternalServerError, "storage_error", "failed to persist conversation state: %v", err)
			return
		}

		writeJSON(w, ChatResponse{Response: result.Reply, UserID: userID})
	}
}

// ProfileSummary is the dashboard view of one profile.
type ProfileSummary struct {
	UserID         string            `json:"user_id"`
	Name           string            `json:"name"`
	TotalChats     int               `json:"total_chats"`
	RecentMoods    []sentiment.Label `json:"recent_moods"`
	FrequentTopics []string          `json:"frequent_topics"`
	LastMessage    string            `json:"last_message,omitempty"`
}

func handleProfileSummary(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, userID, ok := lookupProfile(w, r, st)
		if !ok {
			return
		}

		summary := ProfileSummary{
			UserID:         userID,
			Name:           p.Name,
			TotalChats:     len(p.ChatHistory),
			RecentMoods:    p.LastMoods(3),
			FrequentTopics: p.LastTopics(5),
		}
		if last := p.LastTurns(1); len(last) == 1 {
			summary.LastMessage = last[0].Content
		}

		writeJSON(w, summary)
	}
}

func handleHistory(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _, ok := lookupProfile(w, r, st)
		if !ok {
			return
		}

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "limit must be a positive integer")
				return
			}
			limit = n
		}

		turns := p.LastTurns(limit)
		if turns == nil {
			turns = []profile.Turn{}
		}
		writeJSON(w, turns)
	}
}

func handleMoods(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _, ok := lookupProfile(w, r, st)
		if !ok {
			return
		}

		counts := map[sentiment.Label]int{}
		for _, m := range p.Mood {
			counts[m]++
		}
		writeJSON(w, counts)
	}
}

// lookupProfile loads the snapshot and fetches the profile named in the
// URL. On a miss it writes a 404 and reports ok=false.
func lookupProfile(w http.ResponseWriter, r *http.Request, st store.Store) (*profile.Profile, string, bool) {
	userID := chi.URLParam(r, "userID")

	snap, err := st.Load()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "storage_error", "loading profiles: %v", err)
		return nil, "", false
	}

	p, exists := snap[userID]
	if !exists || p == nil {
		httpError(w, http.StatusNotFound, "not_found", "unknown user %q", userID)
		return nil, "", false
	}
	return p, userID, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
