package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/solace/internal/sentiment"
	"github.com/kalambet/solace/internal/session"
	"github.com/kalambet/solace/internal/store"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Turner Turner
	Store  store.Store
}

// NewMCPServer creates an MCP server exposing the counseling chat and
// profile inspection as tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"solace",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("solace — empathetic counseling chat with per-user mood and topic memory."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("chat",
			mcp.WithDescription("Send a message to the counseling persona and receive a reply. Omit user_id on first contact; the returned user_id continues the same conversation."),
			mcp.WithString("message", mcp.Description("The message to send"), mcp.Required()),
			mcp.WithString("user_id", mcp.Description("Conversation identifier from a previous chat call")),
			mcp.WithString("name", mcp.Description("Display name to store on the profile")),
		),
		mcpChat(deps),
	)

	s.AddTool(
		mcp.NewTool("get_profile",
			mcp.WithDescription("Return the profile summary for a user: name, chat count, recent moods, frequent topics."),
			mcp.WithString("user_id", mcp.Description("Conversation identifier"), mcp.Required()),
		),
		mcpGetProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("mood_history",
			mcp.WithDescription("Return mood frequency counts for a user across all recorded turns."),
			mcp.WithString("user_id", mcp.Description("Conversation identifier"), mcp.Required()),
		),
		mcpMoodHistory(deps),
	)

	return s
}

func mcpChat(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}

		userID := req.GetString("user_id", "")
		if userID == "" {
			userID = uuid.New().String()
		}
		name := req.GetString("name", "")

		result, err := deps.Turner.Turn(ctx, session.Request{
			UserID:  userID,
			Message: message,
			Name:    name,
		})
		if err != nil {
			return mcpError(fmt.Sprintf("turn failed: %v", err)), nil
		}

		b, err := json.Marshal(ChatResponse{Response: result.Reply, UserID: userID})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal reply: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcpError("user_id is required"), nil
		}

		snap, err := deps.Store.Load()
		if err != nil {
			return mcpError(fmt.Sprintf("loading profiles: %v", err)), nil
		}
		p, exists := snap[userID]
		if !exists || p == nil {
			return mcpError(fmt.Sprintf("unknown user %q", userID)), nil
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

		b, err := json.Marshal(summary)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpMoodHistory(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcpError("user_id is required"), nil
		}

		snap, err := deps.Store.Load()
		if err != nil {
			return mcpError(fmt.Sprintf("loading profiles: %v", err)), nil
		}
		p, exists := snap[userID]
		if !exists || p == nil {
			return mcpError(fmt.Sprintf("unknown user %q", userID)), nil
		}

		counts := map[sentiment.Label]int{}
		for _, m := range p.Mood {
			counts[m]++
		}

		b, err := json.Marshal(counts)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal mood counts: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
