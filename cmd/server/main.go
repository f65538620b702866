package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "eventscheduling/docs"
)

// @title Event Scheduling API
// @version 1.0
// @description Events, activities and enrollments with room and presenter conflict detection.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "event scheduling service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		remindCommand(),
		tokenCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
