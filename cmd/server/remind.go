package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventscheduling/config"
)

func remindCommand() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "send reminders for events starting the day after --at (default now)",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.DateOnly, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now = parsed
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger()
			a, closeStore, err := buildApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			report, err := a.Reminders.SendEventReminders(cmd.Context(), now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reminders: %d sent, %d failed\n", len(report.Succeeded), len(report.Failed))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "reference date (YYYY-MM-DD)")
	return cmd
}
