package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/scheduler"
)

func TestClampEase(t *testing.T) {
	tests := []struct {
		name     string
		ease     float64
		expected float64
	}{
		{"below minimum", 1.0, 1.3},
		{"at minimum", 1.3, 1.3},
		{"in range", 2.5, 2.5},
		{"at maximum", 2.8, 2.8},
		{"above maximum", 3.1, 2.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheduler.ClampEase(tt.ease))
		})
	}
}

func TestClampInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected time.Duration
	}{
		{"below floor", time.Hour, 6 * time.Hour},
		{"at floor", 6 * time.Hour, 6 * time.Hour},
		{"in range", models.Days(30), models.Days(30)},
		{"above cap", models.Days(1000), models.Days(365)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheduler.ClampInterval(tt.interval))
		})
	}
}

func TestDayConversions(t *testing.T) {
	assert.Equal(t, 6*time.Hour, models.Days(0.25))
	assert.Equal(t, 12*time.Hour, models.Days(0.5))
	assert.Equal(t, 24*time.Hour, models.Days(1))
	assert.InDelta(t, 0.25, models.InDays(6*time.Hour), 1e-9)
	assert.InDelta(t, 2.0, models.InDays(48*time.Hour), 1e-9)
}
