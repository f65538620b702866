package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"eventscheduling/config"
	"eventscheduling/internal/adapters/email"
	"eventscheduling/internal/app"
	"eventscheduling/internal/repository/memory"
	"eventscheduling/internal/repository/postgres"
)

// buildApp opens the configured store and assembles the application. The returned close
// function releases the database pool, if any.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, func(), error) {
	var (
		stores app.Stores
		db     *sql.DB
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		stores = app.MemoryStores(memory.New())
	default:
		var err error
		db, err = postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		stores = app.PostgresStores(db, logger)
	}
	closeFn := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretKey,
			InsecureSkipVerify: cfg.AWSSkipTLSVerify,
		},
		Logger: logger,
	})
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("create mailer: %w", err)
	}

	a, err := app.New(stores, app.Options{
		JWTSecret:           cfg.JWTSecret,
		CredentialSecret:    cfg.CredentialSecret,
		CredentialValidity:  cfg.CredentialValidity,
		Mailer:              mailer,
		DispatchConcurrency: cfg.DispatchConcurrency,
		RequestTimeout:      cfg.RequestTimeout,
		AllowedOrigins:      cfg.AllowedOrigins,
	}, logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return a, closeFn, nil
}
