package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraud-console/internal/assist"
)

func newChatCmd() *cobra.Command {
	var (
		sessionID   string
		showHistory bool
		clear       bool
	)

	cmd := &cobra.Command{
		Use:   "chat [question...]",
		Short: "Talk to the service's fraud assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := assist.NewClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout, log)
			ctx := cmd.Context()

			switch {
			case clear:
				if sessionID == "" {
					return fmt.Errorf("--session is required with --clear")
				}
				if err := client.Clear(ctx, sessionID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
				return nil

			case showHistory:
				if sessionID == "" {
					return fmt.Errorf("--session is required with --history")
				}
				messages, err := client.History(ctx, sessionID)
				if err != nil {
					return err
				}
				for _, m := range messages {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", m.Role, m.Content)
				}
				return nil

			default:
				if len(args) == 0 {
					return fmt.Errorf("a question is required")
				}
				answer, session, err := client.Ask(ctx, strings.Join(args, " "), sessionID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), answer)
				fmt.Fprintf(cmd.OutOrStdout(), "\n(session %s)\n", session)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "assistant session id")
	cmd.Flags().BoolVar(&showHistory, "history", false, "print the session history")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the session history")
	return cmd
}
