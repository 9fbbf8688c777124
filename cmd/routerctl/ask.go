package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"support-router/internal/app"
	"support-router/internal/chat"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Run one message through the full routing pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			stack, err := app.Build(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer stack.Close()

			uc, err := stack.ChatUseCase(nil)
			if err != nil {
				return err
			}
			turn, err := uc.Chat(ctx, chat.ChatInput{Message: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Intent:     %s (%.1f%%)\n", turn.Intent, turn.Confidence*100)
			fmt.Fprintf(out, "Bucket:     %s [%s cost]\n", turn.Bucket, turn.CostTier)
			fmt.Fprintf(out, "Action:     %s\n", turn.Action)
			fmt.Fprintf(out, "Reason:     %s\n", turn.Reason)
			fmt.Fprintf(out, "Sources:    %d\n", len(turn.Documents))
			fmt.Fprintf(out, "Degraded:   %t\n", turn.Degraded)
			fmt.Fprintf(out, "States:     %s\n", joinStates(turn.Trace))
			fmt.Fprintf(out, "\n%s\n", turn.Response)
			return nil
		},
	}
}

func joinStates(states []chat.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, " -> ")
}
