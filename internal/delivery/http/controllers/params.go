package controllers

import (
	"net/http"
	"time"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/domain"
)

// pathID reads a UUID path value and writes a 400 when it is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if !helpers.ValidUUID(id) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, name+" must be a UUID")
		return "", false
	}
	return id, true
}

// The helpers below run after struct validation has checked the layout, so parse errors
// cannot occur.

func mustDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func optionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := mustDate(*s)
	return &t
}

func mustTime(s string) domain.TimeOfDay {
	t, _ := domain.ParseTimeOfDay(s)
	return t
}

func optionalTime(s *string) *domain.TimeOfDay {
	if s == nil {
		return nil
	}
	t := mustTime(*s)
	return &t
}
