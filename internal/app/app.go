// Package app assembles the scheduling core, its adapters and the HTTP surface.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eventscheduling/internal/adapters/auth"
	"eventscheduling/internal/adapters/email"
	"eventscheduling/internal/adapters/metrics"
	httpdelivery "eventscheduling/internal/delivery/http"
	"eventscheduling/internal/delivery/http/controllers"
	"eventscheduling/internal/domain"
	"eventscheduling/internal/repository/memory"
	"eventscheduling/internal/repository/postgres"
	"eventscheduling/internal/services"
)

// Stores is the set of repositories the core runs against, plus the transaction boundary
// that makes check-then-write atomic for them.
type Stores struct {
	Tx            domain.TxManager
	Events        domain.EventRepository
	Activities    domain.ActivityRepository
	Enrollments   domain.EnrollmentRepository
	Organizers    domain.OrganizerRepository
	Users         domain.UserRepository
	Notifications domain.NotificationRepository
}

// PostgresStores backs every repository with db.
func PostgresStores(db *sql.DB, logger *slog.Logger) Stores {
	return Stores{
		Tx:            postgres.NewTxManager(db, logger),
		Events:        postgres.NewEventRepository(db),
		Activities:    postgres.NewActivityRepository(db),
		Enrollments:   postgres.NewEnrollmentRepository(db),
		Organizers:    postgres.NewOrganizerRepository(db),
		Users:         postgres.NewUserRepository(db),
		Notifications: postgres.NewNotificationRepository(db),
	}
}

// MemoryStores backs every repository with an in-process store.
func MemoryStores(s *memory.Store) Stores {
	return Stores{
		Tx:            s,
		Events:        s.Events(),
		Activities:    s.Activities(),
		Enrollments:   s.Enrollments(),
		Organizers:    s.Organizers(),
		Users:         s.Users(),
		Notifications: s.NotificationLog(),
	}
}

// Options configures New.
type Options struct {
	JWTSecret           string
	CredentialSecret    string
	CredentialValidity  time.Duration
	Mailer              domain.Mailer
	DispatchConcurrency int
	RequestTimeout      time.Duration
	AllowedOrigins      []string
}

// App holds the assembled services and the HTTP handler serving them.
type App struct {
	Schedule    domain.ScheduleService
	Enrollments domain.EnrollmentService
	Reminders   domain.ReminderService
	Announcer   *services.Announcer
	Metrics     *metrics.Prometheus
	Handler     http.Handler
}

// New wires the services over stores. Call Announcer.Wait before exiting so in-flight
// notifications finish.
func New(stores Stores, opts Options, logger *slog.Logger) (*App, error) {
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	prom := metrics.NewPrometheus()

	notifier := services.NewEmailNotifier(stores.Users, stores.Notifications, opts.Mailer, logger)
	dispatcher := services.NewDispatcher(notifier, prom, logger, opts.DispatchConcurrency)
	resolver := services.NewAudienceResolver(stores.Activities, stores.Enrollments, stores.Organizers)
	announcer := services.NewAnnouncer(resolver, dispatcher, renderer, logger)

	checker := services.NewConflictChecker(stores.Activities)
	schedule := services.NewScheduleService(stores.Tx, stores.Events, stores.Activities, stores.Organizers, stores.Users,
		checker, announcer, prom, logger, opts.RequestTimeout)
	credentials := auth.NewCredentialIssuer(opts.CredentialSecret, opts.CredentialValidity)
	enrollments := services.NewEnrollmentService(stores.Tx, stores.Events, stores.Activities, stores.Enrollments, stores.Users,
		credentials, announcer, opts.RequestTimeout)
	reminders := services.NewReminderService(stores.Events, stores.Activities, stores.Enrollments, announcer, logger)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:      controllers.NewEventController(logger, schedule),
		Activities:  controllers.NewActivityController(logger, schedule),
		Enrollments: controllers.NewEnrollmentController(logger, enrollments),
	}, auth.NewJWTVerifier(opts.JWTSecret), prom.Handler(), logger)

	return &App{
		Schedule:    schedule,
		Enrollments: enrollments,
		Reminders:   reminders,
		Announcer:   announcer,
		Metrics:     prom,
		Handler:     httpdelivery.NewHandler(router, logger, prom, opts.AllowedOrigins),
	}, nil
}
