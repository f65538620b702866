package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventscheduling/internal/delivery/http/controllers"
	"eventscheduling/internal/delivery/http/middleware"
	"eventscheduling/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events      *controllers.EventController
	Activities  *controllers.ActivityController
	Enrollments *controllers.EnrollmentController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, metrics http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier, logger)
	staffOnly := middleware.RequireRole(domain.RoleAdmin, domain.RoleOrganizer)
	attendeeOnly := middleware.RequireRole(domain.RoleAttendee)
	staff := func(h http.HandlerFunc) http.HandlerFunc { return authed(staffOnly(h)) }

	// Events
	mux.HandleFunc("POST /events", staff(c.Events.CreateEvent))
	mux.HandleFunc("GET /events", authed(c.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", authed(c.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", staff(c.Events.UpdateEvent))
	mux.HandleFunc("PATCH /events/{eventID}/status", staff(c.Events.ChangeEventStatus))
	mux.HandleFunc("POST /events/{eventID}/organizers", staff(c.Events.AssignOrganizer))

	// Activities
	mux.HandleFunc("POST /activities", staff(c.Activities.CreateActivity))
	mux.HandleFunc("PUT /activities/{activityID}", staff(c.Activities.UpdateActivity))
	mux.HandleFunc("PATCH /activities/{activityID}/status", staff(c.Activities.ChangeActivityStatus))
	mux.HandleFunc("GET /events/{eventID}/activities", authed(c.Activities.ListEventActivities))
	mux.HandleFunc("GET /presenters/{userID}", c.Activities.GetPresenterProfile)

	// Enrollments
	mux.HandleFunc("POST /enrollments", authed(attendeeOnly(c.Enrollments.Enroll)))
	mux.HandleFunc("POST /enrollments/admin", staff(c.Enrollments.EnrollOnBehalf))
	mux.HandleFunc("GET /enrollments/mine", authed(c.Enrollments.ListMyEnrollments))

	mux.Handle("GET /metrics", metrics)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the request-scoped middleware. The observer sits outermost
// so it sees the final status, including CORS preflights.
func NewHandler(router http.Handler, logger *slog.Logger, observer middleware.RequestObserver, allowedOrigins []string) http.Handler {
	return middleware.Instrument(observer, middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, router)))
}
