package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	EventID string `json:"event_id" validate:"required,uuid"`
	Status  string `json:"status" validate:"required,oneof=planning active"`
	Seats   int    `json:"seats" validate:"gte=0"`
}

func (s sampleRequest) Validate() []string { return StructErrors(s) }

func TestStructErrors(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want []string
	}{
		{
			name: "valid",
			req:  sampleRequest{EventID: "0b7e7c52-9a43-4c55-9c7c-2f0f1d0f5a11", Status: "active"},
		},
		{
			name: "uses json names",
			req:  sampleRequest{Seats: -1},
			want: []string{"event_id is required", "status is required", "seats must be at least 0"},
		},
		{
			name: "format rules",
			req:  sampleRequest{EventID: "nope", Status: "finished"},
			want: []string{"event_id must be a UUID", "status must be one of [planning active]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StructErrors(tt.req))
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantSubstr string
	}{
		{"valid", `{"event_id":"0b7e7c52-9a43-4c55-9c7c-2f0f1d0f5a11","status":"planning"}`, true, ""},
		{"malformed json", `{"event_id":`, false, "unexpected EOF"},
		{"unknown field", `{"event_id":"x","bogus":1}`, false, "unknown field"},
		{"validation failure joined", `{"seats":-2}`, false, "event_id is required; status is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest sampleRequest

			ok := DecodeAndValidate(rr, req, &dest)

			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.Contains(t, rr.Body.String(), tt.wantSubstr)
			}
		})
	}
}

func TestValidUUID(t *testing.T) {
	assert.True(t, ValidUUID("0b7e7c52-9a43-4c55-9c7c-2f0f1d0f5a11"))
	assert.False(t, ValidUUID(""))
	assert.False(t, ValidUUID("e1"))
}
