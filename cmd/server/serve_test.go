package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextReminderAt(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{"later today", time.Date(2026, 3, 10, 6, 30, 0, 0, loc), 8, time.Date(2026, 3, 10, 8, 0, 0, 0, loc)},
		{"exactly at the hour rolls over", time.Date(2026, 3, 10, 8, 0, 0, 0, loc), 8, time.Date(2026, 3, 11, 8, 0, 0, 0, loc)},
		{"past the hour", time.Date(2026, 3, 10, 21, 0, 0, 0, loc), 8, time.Date(2026, 3, 11, 8, 0, 0, 0, loc)},
		{"month end", time.Date(2026, 3, 31, 23, 59, 0, 0, loc), 0, time.Date(2026, 4, 1, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextReminderAt(tt.now, tt.hour))
		})
	}
}
