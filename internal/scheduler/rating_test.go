package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benrueckert/koda-flashcard-app/internal/scheduler"
)

func TestPawRating_QualityMapping(t *testing.T) {
	tests := []struct {
		rating  scheduler.PawRating
		quality int
		correct bool
	}{
		{scheduler.PawWrong, 1, false},
		{scheduler.PawHard, 3, true},
		{scheduler.PawGood, 4, true},
		{scheduler.PawEasy, 5, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.quality, tt.rating.Quality())
		assert.Equal(t, tt.correct, tt.rating.Correct())
	}
}

func TestPawRating_Outcome(t *testing.T) {
	outcome, err := scheduler.PawGood.Outcome(42, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(42), outcome.CardID)
	assert.Equal(t, 4, outcome.Quality)
	assert.True(t, outcome.WasCorrect)
	assert.NoError(t, outcome.Validate(), "mapped outcomes are always on the canonical scale")
}

func TestPawRating_OutOfRange(t *testing.T) {
	for _, r := range []scheduler.PawRating{0, 5, -1} {
		_, err := r.Outcome(1, 0)
		assert.ErrorIs(t, err, scheduler.ErrInvalidPawRating, "rating %d", r)
	}
}
