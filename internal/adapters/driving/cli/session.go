package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session's documents and query history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session, its documents and its index artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session store not configured")
	}

	sessions, err := sessionService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		cmd.Println("No sessions yet. Run 'docsage index' to create one.")
		return nil
	}

	for _, s := range sessions {
		cmd.Printf("  %s  %s  (%s)\n", s.ID, s.Name, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session store not configured")
	}

	sessionID := args[0]
	if err := sessionService.Delete(context.Background(), sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	cmd.Printf("Deleted session %s\n", sessionID)
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session store not configured")
	}

	ctx := context.Background()
	sessionID := args[0]

	session, err := sessionService.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	cmd.Printf("Session %s: %s\n", session.ID, session.Name)

	docs, err := sessionService.Documents(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	cmd.Println()
	cmd.Printf("Documents (%d):\n", len(docs))
	for _, d := range docs {
		cmd.Printf("  %s  %s\n", d.ID, d.Filename)
	}

	history, err := sessionService.History(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(history) == 0 {
		return nil
	}
	cmd.Println()
	cmd.Printf("History (%d):\n", len(history))
	for _, q := range history {
		cmd.Printf("  Q: %s\n", q.Question)
		cmd.Printf("  A: %s\n", q.Answer)
		cmd.Println()
	}
	return nil
}
