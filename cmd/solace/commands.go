package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/solace/internal/api"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the counseling persona",
	Long: `Talk to the counseling persona.

With a message argument, sends it and prints the reply. Without arguments,
starts an interactive session (Ctrl-D or /quit to leave).

Examples:
  solace chat "I had a rough day"
  solace chat --user 4f7c… --name Alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		name, _ := cmd.Flags().GetString("name")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if len(args) > 0 {
			_, err := sendMessage(cmd, client, userID, name, strings.Join(args, " "))
			return err
		}

		fmt.Fprintln(os.Stderr, "Interactive session. Ctrl-D or /quit to leave.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Fprint(os.Stderr, "you> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "/quit" {
				break
			}

			newID, err := sendMessage(cmd, client, userID, name, line)
			if err != nil {
				printError("%v", err)
				continue
			}
			// Carry the minted ID so the whole session is one conversation.
			userID = newID
			name = ""
		}
		return scanner.Err()
	},
}

func sendMessage(cmd *cobra.Command, client *apiClient, userID, name, message string) (string, error) {
	resp, err := client.post(cmd.Context(), "/chat", api.ChatRequest{
		Message: message,
		Name:    name,
		UserID:  userID,
	})
	if err != nil {
		return "", err
	}

	var result api.ChatResponse
	if err := decodeJSON(resp, &result); err != nil {
		return "", err
	}

	printPersona("Sarah", result.Response)
	return result.UserID, nil
}

func init() {
	chatCmd.Flags().String("user", "", "conversation identifier (omit to start a new one)")
	chatCmd.Flags().String("name", "", "display name to store on the profile")
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile <user-id>",
	Short: "Show a user's profile summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profiles/"+args[0])
		if err != nil {
			return err
		}

		var summary api.ProfileSummary
		if err := decodeJSON(resp, &summary); err != nil {
			return err
		}

		printStatus("Name", "%s", summary.Name)
		printStatus("Total chats", "%d", summary.TotalChats)
		printStatus("Recent moods", "%s", joinLabels(summary.RecentMoods))
		printStatus("Frequent topics", "%s", strings.Join(summary.FrequentTopics, ", "))
		if summary.LastMessage != "" {
			printStatus("Last message", "%s", summary.LastMessage)
		}
		return nil
	},
}

func joinLabels[T ~string](labels []T) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "Show a user's recent conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/profiles/%s/history?limit=%d", args[0], limit))
		if err != nil {
			return err
		}

		var turns []struct {
			Role      string `json:"role"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		}
		if err := decodeJSON(resp, &turns); err != nil {
			return err
		}

		for _, t := range turns {
			speaker := "Sarah"
			if t.Role == "user" {
				speaker = "You"
			}
			fmt.Fprintf(os.Stdout, "[%s] %s: %s\n", t.Timestamp, speaker, t.Content)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of turns to show")
}
