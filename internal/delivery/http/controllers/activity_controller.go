package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/domain"
)

// CreateActivityRequest is the request body for POST /activities. Times use HH:MM.
type CreateActivityRequest struct {
	EventID     string  `json:"event_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	PresenterID *string `json:"presenter_id" validate:"omitempty,uuid"`
	Room        string  `json:"room" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string  `json:"end_time" validate:"required,datetime=15:04"`
}

// Validate implements Validator. Ordering of start and end is left to the service so the
// error is reported the same way for every caller.
func (c CreateActivityRequest) Validate() []string {
	return helpers.StructErrors(c)
}

func (c CreateActivityRequest) toActivity(now time.Time) *domain.Activity {
	return domain.NewActivity(c.EventID, c.Title, c.Description, c.PresenterID, c.Room,
		mustDate(c.Date), mustTime(c.StartTime), mustTime(c.EndTime), now, now)
}

// UpdateActivityRequest is the request body for PUT /activities/{activityID}. Omitted fields are unchanged.
type UpdateActivityRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	PresenterID *string `json:"presenter_id" validate:"omitempty,uuid"`
	Room        *string `json:"room" validate:"omitempty,min=1"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

// Validate implements Validator.
func (u UpdateActivityRequest) Validate() []string {
	return helpers.StructErrors(u)
}

func (u UpdateActivityRequest) toPatch() domain.ActivityPatch {
	return domain.ActivityPatch{
		Title:       u.Title,
		Description: u.Description,
		PresenterID: u.PresenterID,
		Room:        u.Room,
		Date:        optionalDate(u.Date),
		StartTime:   optionalTime(u.StartTime),
		EndTime:     optionalTime(u.EndTime),
	}
}

// ChangeActivityStatusRequest is the request body for PATCH /activities/{activityID}/status.
type ChangeActivityStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled cancelled"`
}

// Validate implements Validator.
func (c ChangeActivityStatusRequest) Validate() []string {
	return helpers.StructErrors(c)
}

// ActivitySuccessResponse is the success envelope for POST /activities (201).
type ActivitySuccessResponse struct {
	Data  *domain.Activity  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ActivityListSuccessResponse is the success envelope for GET /events/{eventID}/activities.
type ActivityListSuccessResponse struct {
	Data  []*domain.Activity `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// PresenterProfileSuccessResponse is the success envelope for GET /presenters/{userID}.
type PresenterProfileSuccessResponse struct {
	Data  *domain.PresenterProfile `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ActivityUpdateSuccessResponse is the success envelope for PUT /activities/{activityID}.
type ActivityUpdateSuccessResponse struct {
	Data  *domain.ActivityUpdate `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ActivityTransitionSuccessResponse is the success envelope for PATCH /activities/{activityID}/status.
type ActivityTransitionSuccessResponse struct {
	Data  *domain.ActivityTransition `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
	now     func() time.Time
}

func NewActivityController(logger *slog.Logger, svc domain.ScheduleService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
		now:     time.Now,
	}
}

// CreateActivity godoc
// @Summary Schedule an activity
// @Description Rejected with 409 when the room or the presenter is already booked for an overlapping window. Activities that only touch end to start do not collide.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activity body CreateActivityRequest true "Activity data"
// @Success 201 {object} controllers.ActivitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict, error.activity_ids lists the colliding activities"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities [post]
func (c *ActivityController) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	activity := req.toActivity(c.now())
	if err := c.Service.ValidateAndCreateActivity(r.Context(), activity); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, activity)
}

// UpdateActivity godoc
// @Summary Update an activity
// @Description Moves are checked for collisions against every activity except this one. Presenter and attendees are told about the changes.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Param activity body UpdateActivityRequest true "Fields to change"
// @Success 200 {object} controllers.ActivityUpdateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID} [put]
func (c *ActivityController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}
	var req UpdateActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update, err := c.Service.ValidateAndUpdateActivity(r.Context(), activityID, req.toPatch())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, update)
}

// ChangeActivityStatus godoc
// @Summary Change the status of an activity
// @Description Cancelling notifies the presenter and the event's attendees.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Param status body ChangeActivityStatusRequest true "New status"
// @Success 200 {object} controllers.ActivityTransitionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID}/status [patch]
func (c *ActivityController) ChangeActivityStatus(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}
	var req ChangeActivityStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	transition, err := c.Service.ChangeActivityStatus(r.Context(), activityID, domain.ActivityStatus(req.Status))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, transition)
}

// ListEventActivities godoc
// @Summary List the activities of an event
// @Description Ordered by date and start time.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ActivityListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/activities [get]
func (c *ActivityController) ListEventActivities(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	activities, err := c.Service.ListActivitiesByEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activities)
}

// GetPresenterProfile godoc
// @Summary Public profile of a presenter
// @Description The presenter's identity and every activity they run, ordered by date and start time.
// @Tags activities
// @Produce json
// @Param userID path string true "Presenter user ID (UUID)"
// @Success 200 {object} controllers.PresenterProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presenters/{userID} [get]
func (c *ActivityController) GetPresenterProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	profile, err := c.Service.GetPresenterProfile(r.Context(), userID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
