package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=planning active cancelled finished"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	return helpers.StructErrors(c)
}

func (c CreateEventRequest) toEvent(now time.Time) *domain.Event {
	ev := domain.NewEvent(c.Name, c.Description, c.Location, mustDate(c.StartDate), mustDate(c.EndDate), c.Capacity, now, now)
	if c.Status != "" {
		ev.Status = domain.EventStatus(c.Status)
	}
	return ev
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	return helpers.StructErrors(u)
}

func (u UpdateEventRequest) toPatch() domain.EventPatch {
	return domain.EventPatch{
		Name:        u.Name,
		Description: u.Description,
		StartDate:   optionalDate(u.StartDate),
		EndDate:     optionalDate(u.EndDate),
		Location:    u.Location,
		Capacity:    u.Capacity,
	}
}

// ChangeEventStatusRequest is the request body for PATCH /events/{eventID}/status.
type ChangeEventStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planning active cancelled finished"`
}

// Validate implements Validator.
func (c ChangeEventStatusRequest) Validate() []string {
	return helpers.StructErrors(c)
}

// AssignOrganizerRequest is the request body for POST /events/{eventID}/organizers.
type AssignOrganizerRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// Validate implements Validator.
func (a AssignOrganizerRequest) Validate() []string {
	return helpers.StructErrors(a)
}

// AssignOrganizerResponse reports whether a new assignment row was written.
type AssignOrganizerResponse struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Created bool   `json:"created"`
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for GET /events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventUpdateSuccessResponse is the success envelope for PATCH /events/{eventID}.
type EventUpdateSuccessResponse struct {
	Data  *domain.EventUpdate `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventTransitionSuccessResponse is the success envelope for PATCH /events/{eventID}/status.
type EventTransitionSuccessResponse struct {
	Data  *domain.EventTransition `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
	now     func() time.Time
}

func NewEventController(logger *slog.Logger, svc domain.ScheduleService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		now:     time.Now,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event. Status defaults to planning.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent(c.now())
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update event fields
// @Description Writes only the fields that differ from the stored event and returns the list of changes. Date or location changes notify enrolled attendees.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventUpdateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update, err := c.Service.UpdateEvent(r.Context(), eventID, req.toPatch())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, update)
}

// ChangeEventStatus godoc
// @Summary Change the status of an event
// @Description Cancelling notifies enrolled attendees. Activating or finishing notifies presenters and organizers.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status body ChangeEventStatusRequest true "New status"
// @Success 200 {object} controllers.EventTransitionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [patch]
func (c *EventController) ChangeEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req ChangeEventStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	transition, err := c.Service.ChangeEventStatus(r.Context(), eventID, domain.EventStatus(req.Status))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, transition)
}

// AssignOrganizer godoc
// @Summary Assign an organizer to an event
// @Description Idempotent. Returns 201 when the assignment is new and 200 when it already existed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param organizer body AssignOrganizerRequest true "User to assign"
// @Success 200 {object} controllers.AssignOrganizerResponse
// @Success 201 {object} controllers.AssignOrganizerResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/organizers [post]
func (c *EventController) AssignOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req AssignOrganizerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.AssignOrganizer(r.Context(), eventID, req.UserID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, AssignOrganizerResponse{EventID: eventID, UserID: req.UserID, Created: created})
}
