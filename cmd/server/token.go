package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventscheduling/config"
	"eventscheduling/internal/adapters/auth"
)

// tokenCommand signs a bearer token for local testing. Identity is managed outside this
// service, so there is no login endpoint.
func tokenCommand() *cobra.Command {
	var (
		email  string
		roles  []string
		expiry time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "sign a development bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Environment == "production" {
				return fmt.Errorf("token is disabled in production")
			}
			tok, err := auth.NewJWTIssuer(cfg.JWTSecret, expiry).Issue(args[0], email, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{"attendee"}, "role codes")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "token lifetime")
	return cmd
}
