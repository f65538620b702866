package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"eventscheduling/config"
	"eventscheduling/internal/domain"
)

const shutdownTimeout = 15 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server and the daily reminder job",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, config.NewLogger())
		},
	}
}

func serve(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, closeStore, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	go runDailyReminders(ctx, a.Reminders, cfg.ReminderHour, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	// Committed writes may still have notifications in flight.
	a.Announcer.Wait()
	return nil
}

// nextReminderAt returns the first time strictly after now at hour:00 in now's location.
func nextReminderAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func runDailyReminders(ctx context.Context, svc domain.ReminderService, hour int, logger *slog.Logger) {
	for {
		wait := time.Until(nextReminderAt(time.Now(), hour))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case now := <-timer.C:
			report, err := svc.SendEventReminders(ctx, now)
			if err != nil {
				logger.ErrorContext(ctx, "event reminders", "err", err)
				continue
			}
			logger.InfoContext(ctx, "event reminders sent", "succeeded", len(report.Succeeded), "failed", len(report.Failed))
		}
	}
}
