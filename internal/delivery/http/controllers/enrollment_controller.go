package controllers

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/delivery/http/middleware"
	"eventscheduling/internal/domain"
)

// EnrollRequest is the request body for POST /enrollments. Fee accepts a JSON number or string.
type EnrollRequest struct {
	EventID        string          `json:"event_id" validate:"required,uuid"`
	EnrollmentType string          `json:"enrollment_type" validate:"required"`
	Fee            decimal.Decimal `json:"fee" swaggertype:"string" example:"25.00"`
}

// Validate implements Validator.
func (e EnrollRequest) Validate() []string {
	errs := helpers.StructErrors(e)
	if e.Fee.IsNegative() {
		errs = append(errs, "fee must not be negative")
	}
	return errs
}

// EnrollOnBehalfRequest is the request body for POST /enrollments/admin.
type EnrollOnBehalfRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	EnrollRequest
}

// Validate implements Validator.
func (e EnrollOnBehalfRequest) Validate() []string {
	errs := helpers.StructErrors(e)
	if e.Fee.IsNegative() {
		errs = append(errs, "fee must not be negative")
	}
	return errs
}

// EnrollmentSuccessResponse is the success envelope for enrollment creation (201).
type EnrollmentSuccessResponse struct {
	Data  *domain.Enrollment `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// MyEnrollmentsSuccessResponse is the success envelope for GET /enrollments/mine.
type MyEnrollmentsSuccessResponse struct {
	Data  []*domain.EnrollmentWithEvent `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type EnrollmentController struct {
	Logger  *slog.Logger
	Service domain.EnrollmentService
}

func NewEnrollmentController(logger *slog.Logger, svc domain.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		Logger:  logger,
		Service: svc,
	}
}

// Enroll godoc
// @Summary Enroll the caller in an event
// @Description Rejected when the event is cancelled. The response carries the signed access credential, which is also emailed with the event schedule.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body EnrollRequest true "Enrollment data"
// @Success 201 {object} controllers.EnrollmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(w http.ResponseWriter, r *http.Request) {
	var req EnrollRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	enrollment, err := c.Service.Enroll(r.Context(), userID, req.EventID, req.EnrollmentType, req.Fee)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, enrollment)
}

// EnrollOnBehalf godoc
// @Summary Enroll another user in an event
// @Description For admins and organizers. The target user must hold the attendee role.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body EnrollOnBehalfRequest true "Enrollment data"
// @Success 201 {object} controllers.EnrollmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/admin [post]
func (c *EnrollmentController) EnrollOnBehalf(w http.ResponseWriter, r *http.Request) {
	var req EnrollOnBehalfRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	enrollment, err := c.Service.EnrollOnBehalf(r.Context(), req.UserID, req.EventID, req.EnrollmentType, req.Fee)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, enrollment)
}

// ListMyEnrollments godoc
// @Summary List the caller's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MyEnrollmentsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/mine [get]
func (c *EnrollmentController) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	enrollments, err := c.Service.ListMyEnrollments(r.Context(), userID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, enrollments)
}
