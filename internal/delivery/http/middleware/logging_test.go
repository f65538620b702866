package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/domain"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	record slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.record = r.Clone()
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func TestLoggingMiddleware(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)

	tests := []struct {
		name          string
		handlerStatus int
		path          string
		method        string
		wantLevel     slog.Level
	}{
		{"ok status", http.StatusOK, "/events", http.MethodPost, slog.LevelInfo},
		{"created", http.StatusCreated, "/activities", http.MethodPost, slog.LevelInfo},
		{"conflict", http.StatusConflict, "/activities", http.MethodPost, slog.LevelWarn},
		{"server error", http.StatusInternalServerError, "/events", http.MethodPost, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})
			handler := LoggingMiddleware(logger, next)
			req := httptest.NewRequest(tt.method, "http://test"+tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, "request", cap.record.Message)
			require.Equal(t, tt.wantLevel, cap.record.Level)
			attrs := make(map[string]slog.Value)
			cap.record.Attrs(func(a slog.Attr) bool {
				attrs[a.Key] = a.Value
				return true
			})
			require.Contains(t, attrs, "method")
			require.Contains(t, attrs, "path")
			require.Contains(t, attrs, "status")
			require.Contains(t, attrs, "duration_ms")
			require.Contains(t, attrs, "bytes")
			require.Equal(t, tt.method, attrs["method"].String())
			require.Equal(t, tt.path, attrs["path"].String())
			require.Equal(t, int64(tt.handlerStatus), attrs["status"].Int64())
			require.GreaterOrEqual(t, attrs["duration_ms"].Int64(), int64(0))
			require.Equal(t, tt.handlerStatus, rr.Code)
		})
	}
}

func TestLoggingMiddleware_ConflictingActivityCreate(t *testing.T) {
	var cap capturingHandler
	mux := http.NewServeMux()
	mux.HandleFunc("POST /activities", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteDomainError(w, r, slog.Default(), &domain.ConflictError{Kind: domain.ConflictRoom, ActivityIDs: []string{"a1", "a2"}})
	})
	handler := LoggingMiddleware(slog.New(&cap), mux)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/activities", nil))

	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, slog.LevelWarn, cap.record.Level)
	attrs := make(map[string]slog.Value)
	cap.record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	require.Equal(t, "/activities", attrs["path"].String())
	require.Equal(t, int64(http.StatusConflict), attrs["status"].Int64())
	require.Equal(t, int64(rr.Body.Len()), attrs["bytes"].Int64())
	require.Positive(t, attrs["bytes"].Int64())
	require.Contains(t, rr.Body.String(), `"activity_ids":["a1","a2"]`)
}
