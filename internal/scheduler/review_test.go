package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/scheduler"
)

var reviewTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func correct(quality int) scheduler.Outcome {
	return scheduler.Outcome{Quality: quality, WasCorrect: true}
}

func incorrect(quality int) scheduler.Outcome {
	return scheduler.Outcome{Quality: quality, WasCorrect: false}
}

func TestApply_NewCardEasy(t *testing.T) {
	state := scheduler.NewCardState(reviewTime)

	next, err := scheduler.Apply(state, correct(4), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageLearning, next.Stage)
	assert.Equal(t, models.Days(2), next.Interval)
	assert.Equal(t, 1, next.ConsecutiveCorrect)
	assert.Equal(t, 1, next.ReviewCount)
	assert.Equal(t, reviewTime.Add(models.Days(2)), next.NextReviewAt)
}

func TestApply_NewCardGood(t *testing.T) {
	state := scheduler.NewCardState(reviewTime)

	next, err := scheduler.Apply(state, correct(3), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageLearning, next.Stage)
	assert.Equal(t, models.Days(1), next.Interval)
}

func TestApply_LearningGraduatesToReview(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageLearning,
		Interval:           models.Days(1),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 1,
	}

	next, err := scheduler.Apply(state, correct(4), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageReview, next.Stage)
	assert.Equal(t, models.Days(5), next.Interval)
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, 2, next.ConsecutiveCorrect)
}

func TestApply_LearningGraduatesGood(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageLearning,
		Interval:           models.Days(2),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 1,
	}

	next, err := scheduler.Apply(state, correct(3), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageReview, next.Stage)
	assert.Equal(t, models.Days(4), next.Interval, "quality 3 graduation uses the shorter interval")
}

func TestApply_LearningStaysWithoutStreak(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageLearning,
		Interval:           models.Days(2),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 0,
	}

	next, err := scheduler.Apply(state, correct(4), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageLearning, next.Stage, "one correct answer is not enough to graduate")
	assert.Equal(t, models.Days(3), next.Interval, "interval grows by 1.3x, rounded")
}

func TestApply_ReviewGraduatesToMastered(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageReview,
		Interval:           models.Days(5),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 2,
	}

	next, err := scheduler.Apply(state, correct(4), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageMastered, next.Stage)
	assert.Equal(t, models.Days(13), next.Interval, "interval recomputed with the pre-review ease factor")
}

func TestApply_ReviewGraduatesWithLongerStreak(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageReview,
		Interval:           models.Days(4),
		EaseFactor:         2.0,
		ConsecutiveCorrect: 3,
	}

	next, err := scheduler.Apply(state, correct(3), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageMastered, next.Stage, "quality 3 graduates at a streak of 4")
	assert.Equal(t, models.Days(8), next.Interval)
}

func TestApply_ReviewStaysButIntervalGrows(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageReview,
		Interval:           models.Days(5),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 0,
	}

	next, err := scheduler.Apply(state, correct(3), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageReview, next.Stage)
	assert.Equal(t, models.Days(13), next.Interval, "interval grows even without graduating")
	assert.GreaterOrEqual(t, next.Interval, models.Days(1))
}

func TestApply_MasteredStaysMastered(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageMastered,
		Interval:           models.Days(2),
		EaseFactor:         1.3,
		ConsecutiveCorrect: 5,
	}

	next, err := scheduler.Apply(state, correct(5), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageMastered, next.Stage)
	assert.GreaterOrEqual(t, next.Interval, models.Days(7), "mastered intervals never drop below a week")
}

func TestApply_MasteredFailureDemotes(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageMastered,
		Interval:           models.Days(30),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 6,
	}

	next, err := scheduler.Apply(state, incorrect(1), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageLearning, next.Stage)
	assert.Equal(t, models.Days(1), next.Interval)
	assert.Equal(t, 0, next.ConsecutiveCorrect)
	assert.InDelta(t, 2.3, next.EaseFactor, 1e-9)
}

func TestApply_LearningFailureDemotesToNew(t *testing.T) {
	state := models.CardMemoryState{
		Stage:              models.StageLearning,
		Interval:           models.Days(2),
		EaseFactor:         2.0,
		ConsecutiveCorrect: 1,
	}

	next, err := scheduler.Apply(state, incorrect(0), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageNew, next.Stage)
	assert.Equal(t, models.Days(0.5), next.Interval)
	assert.Equal(t, 0, next.ConsecutiveCorrect)
}

func TestApply_NewFailureStaysAtFloor(t *testing.T) {
	state := scheduler.NewCardState(reviewTime)

	next, err := scheduler.Apply(state, incorrect(0), reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageNew, next.Stage, "a new card cannot be demoted further")
	assert.Equal(t, models.Days(0.25), next.Interval)
	assert.Equal(t, reviewTime.Add(6*time.Hour), next.NextReviewAt)
}

func TestApply_EaseFactorStaysInBounds(t *testing.T) {
	state := models.CardMemoryState{
		Stage:      models.StageReview,
		Interval:   models.Days(5),
		EaseFactor: 1.4,
	}

	for i := 0; i < 10; i++ {
		var err error
		state, err = scheduler.Apply(state, incorrect(0), reviewTime)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.EaseFactor, scheduler.MinEase)
	}

	for i := 0; i < 20; i++ {
		var err error
		state, err = scheduler.Apply(state, correct(5), reviewTime)
		require.NoError(t, err)
		assert.LessOrEqual(t, state.EaseFactor, scheduler.MaxEase)
		assert.GreaterOrEqual(t, state.EaseFactor, scheduler.MinEase)
	}
}

func TestApply_IntervalNeverExceedsCap(t *testing.T) {
	state := models.CardMemoryState{
		Stage:      models.StageMastered,
		Interval:   models.Days(300),
		EaseFactor: 2.8,
	}

	for i := 0; i < 5; i++ {
		var err error
		state, err = scheduler.Apply(state, correct(5), reviewTime)
		require.NoError(t, err)
		assert.LessOrEqual(t, state.Interval, scheduler.MaxInterval)
	}
}

func TestApply_InvalidQualityRejected(t *testing.T) {
	state := scheduler.NewCardState(reviewTime)

	for _, quality := range []int{-1, 6, 42} {
		_, err := scheduler.Apply(state, correct(quality), reviewTime)
		assert.ErrorIs(t, err, scheduler.ErrInvalidQuality, "quality %d must be rejected", quality)
	}
}

func TestApply_ReviewCountAlwaysIncrements(t *testing.T) {
	state := scheduler.NewCardState(reviewTime)

	state, err := scheduler.Apply(state, correct(4), reviewTime)
	require.NoError(t, err)
	state, err = scheduler.Apply(state, incorrect(1), reviewTime)
	require.NoError(t, err)

	assert.Equal(t, 2, state.ReviewCount, "review count never resets")
	assert.Equal(t, 0, state.ConsecutiveCorrect, "streak resets on failure")
}

func TestApply_WasCorrectDecidesBranch(t *testing.T) {
	// A caller may send a high quality with wasCorrect=false; the failure
	// branch must win.
	state := models.CardMemoryState{
		Stage:              models.StageReview,
		Interval:           models.Days(10),
		EaseFactor:         2.5,
		ConsecutiveCorrect: 3,
	}

	next, err := scheduler.Apply(state, scheduler.Outcome{Quality: 5, WasCorrect: false}, reviewTime)

	require.NoError(t, err)
	assert.Equal(t, models.StageLearning, next.Stage)
	assert.Equal(t, 0, next.ConsecutiveCorrect)
}

func TestNewCardState(t *testing.T) {
	state := scheduler.NewCardState(reviewTime)

	assert.Equal(t, models.StageNew, state.Stage)
	assert.Equal(t, models.Days(1), state.Interval)
	assert.Equal(t, scheduler.DefaultEase, state.EaseFactor)
	assert.Equal(t, 0, state.ConsecutiveCorrect)
	assert.Equal(t, 0, state.ReviewCount)
	assert.Equal(t, reviewTime, state.NextReviewAt, "fresh cards are due immediately")
}
