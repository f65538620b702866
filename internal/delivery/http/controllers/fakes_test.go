package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/delivery/http/middleware"
	"eventscheduling/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	eventUUID    = "6f1c2f4e-2f53-4a8e-9a43-0c7e5d1a2b01"
	activityUUID = "9a3e1b2c-7d4f-4e5a-8b6c-1d2e3f4a5b02"
	userUUID     = "c4d5e6f7-a8b9-4c0d-9e1f-2a3b4c5d6e03"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeScheduleService implements domain.ScheduleService for handler tests.
type fakeScheduleService struct {
	err error

	lastEvent        *domain.Event
	lastEventID      string
	lastEventPatch   domain.EventPatch
	lastEventStatus  domain.EventStatus
	lastOrganizer    string
	organizerCreated bool

	lastActivity       *domain.Activity
	lastActivityID     string
	lastActivityPatch  domain.ActivityPatch
	lastActivityStatus domain.ActivityStatus

	events     []*domain.Event
	activities []*domain.Activity
	profile    *domain.PresenterProfile
	lastUserID string
}

func (f *fakeScheduleService) CreateEvent(_ context.Context, event *domain.Event) error {
	f.lastEvent = event
	if f.err != nil {
		return f.err
	}
	event.ID = eventUUID
	return nil
}

func (f *fakeScheduleService) GetEvent(_ context.Context, eventID string) (*domain.Event, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Event{ID: eventID, Name: "GopherCon", Status: domain.EventPlanning}, nil
}

func (f *fakeScheduleService) ListEvents(_ context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeScheduleService) UpdateEvent(_ context.Context, eventID string, patch domain.EventPatch) (*domain.EventUpdate, error) {
	f.lastEventID = eventID
	f.lastEventPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventUpdate{
		Event:   &domain.Event{ID: eventID},
		Changes: []domain.FieldChange{{Field: "location", OldValue: "Hall A", NewValue: "Hall B"}},
	}, nil
}

func (f *fakeScheduleService) ChangeEventStatus(_ context.Context, eventID string, status domain.EventStatus) (*domain.EventTransition, error) {
	f.lastEventID = eventID
	f.lastEventStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventTransition{EventID: eventID, OldStatus: domain.EventPlanning, NewStatus: status}, nil
}

func (f *fakeScheduleService) AssignOrganizer(_ context.Context, eventID, userID string) (bool, error) {
	f.lastEventID = eventID
	f.lastOrganizer = userID
	if f.err != nil {
		return false, f.err
	}
	return f.organizerCreated, nil
}

func (f *fakeScheduleService) ValidateAndCreateActivity(_ context.Context, activity *domain.Activity) error {
	f.lastActivity = activity
	if f.err != nil {
		return f.err
	}
	activity.ID = activityUUID
	return nil
}

func (f *fakeScheduleService) ValidateAndUpdateActivity(_ context.Context, activityID string, patch domain.ActivityPatch) (*domain.ActivityUpdate, error) {
	f.lastActivityID = activityID
	f.lastActivityPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ActivityUpdate{Activity: &domain.Activity{ID: activityID}}, nil
}

func (f *fakeScheduleService) ChangeActivityStatus(_ context.Context, activityID string, status domain.ActivityStatus) (*domain.ActivityTransition, error) {
	f.lastActivityID = activityID
	f.lastActivityStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ActivityTransition{ActivityID: activityID, EventID: eventUUID, OldStatus: domain.ActivityScheduled, NewStatus: status}, nil
}

func (f *fakeScheduleService) ListActivitiesByEvent(_ context.Context, eventID string) ([]*domain.Activity, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.activities, nil
}

func (f *fakeScheduleService) GetPresenterProfile(_ context.Context, userID string) (*domain.PresenterProfile, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// fakeEnrollmentService implements domain.EnrollmentService for handler tests.
type fakeEnrollmentService struct {
	err error

	lastUserID  string
	lastEventID string
	lastType    string
	lastFee     decimal.Decimal
	onBehalf    bool

	mine []*domain.EnrollmentWithEvent
}

func (f *fakeEnrollmentService) record(userID, eventID, enrollmentType string, fee decimal.Decimal) (*domain.Enrollment, error) {
	f.lastUserID, f.lastEventID, f.lastType, f.lastFee = userID, eventID, enrollmentType, fee
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Enrollment{ID: "en-1", UserID: userID, EventID: eventID, EnrollmentType: enrollmentType, Fee: fee, CredentialToken: "signed"}, nil
}

func (f *fakeEnrollmentService) Enroll(_ context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*domain.Enrollment, error) {
	return f.record(userID, eventID, enrollmentType, fee)
}

func (f *fakeEnrollmentService) EnrollOnBehalf(_ context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*domain.Enrollment, error) {
	f.onBehalf = true
	return f.record(userID, eventID, enrollmentType, fee)
}

func (f *fakeEnrollmentService) ListMyEnrollments(_ context.Context, userID string) ([]*domain.EnrollmentWithEvent, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.mine, nil
}

// serve routes a single request through a mux so PathValue is populated.
func serve(t *testing.T, pattern string, handler http.HandlerFunc, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}
