package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRejectsNegativeIndex(t *testing.T) {
	_, err := Apply(nil, 5, -1, true, nil)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	prev := &State{ChapterCompleted: make([]bool, 5), ChapterScores: make([]float64, 5)}
	_, err = Apply(prev, 5, -3, false, nil)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestApplyRejectsOutOfRangeIndex(t *testing.T) {
	_, err := Apply(nil, 5, 5, true, nil)
	assert.ErrorIs(t, err, ErrChapterOutOfRange)

	_, err = Apply(nil, 5, 9, false, nil)
	assert.ErrorIs(t, err, ErrChapterOutOfRange)
}

func TestApplyCreatesInitialState(t *testing.T) {
	state, err := Apply(nil, 5, 2, false, nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, true, false, false}, state.ChapterCompleted)
	assert.Equal(t, 2, state.CurrentChapter)
	assert.False(t, state.Completed)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, state.ChapterScores)
}

func TestApplyCreateIgnoresScore(t *testing.T) {
	score := 87.5
	state, err := Apply(nil, 3, 1, false, &score)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, state.ChapterScores)
}

func TestApplyCreateAtFinalChapter(t *testing.T) {
	state, err := Apply(nil, 3, 2, true, nil)
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.Equal(t, 2, state.CurrentChapter)
	assert.Equal(t, []bool{true, true, true}, state.ChapterCompleted)

	// Completion intent alone is not enough off the final chapter.
	state, err = Apply(nil, 3, 1, true, nil)
	require.NoError(t, err)
	assert.False(t, state.Completed)
}

func TestApplyUpdateForcesEarlierChapters(t *testing.T) {
	prev := &State{
		CurrentChapter:   1,
		ChapterCompleted: []bool{true, true, false, false, false},
		ChapterScores:    make([]float64, 5),
	}

	state, err := Apply(prev, 5, 4, true, nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, true, true, true}, state.ChapterCompleted)
	assert.True(t, state.Completed)
	assert.Equal(t, 4, state.CurrentChapter)
}

func TestApplyUpdateWithoutCompletionIntent(t *testing.T) {
	prev := &State{
		CurrentChapter:   4,
		Completed:        true,
		ChapterCompleted: []bool{true, true, true, true, true},
		ChapterScores:    make([]float64, 5),
	}

	// Revisiting chapter 2 without completing it flips its flag off but
	// leaves the stored course-level flag alone.
	state, err := Apply(prev, 5, 2, false, nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, false, true, true}, state.ChapterCompleted)
	assert.True(t, state.Completed)
	assert.Equal(t, 2, state.CurrentChapter)
}

func TestApplyUpdateAppliesScore(t *testing.T) {
	prev := &State{
		ChapterCompleted: []bool{true, false, false},
		ChapterScores:    []float64{0, 0, 0},
	}

	score := 80.0
	state, err := Apply(prev, 3, 1, true, &score)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 80, 0}, state.ChapterScores)

	// No score provided leaves the stored one untouched.
	state, err = Apply(&state, 3, 1, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 80, 0}, state.ChapterScores)
}

func TestApplyUpdateResetsResizedSequences(t *testing.T) {
	prev := &State{
		CurrentChapter:   2,
		ChapterCompleted: []bool{true, true, true},
		ChapterScores:    []float64{90, 80, 70},
	}

	// The course grew to 5 chapters since this record was written.
	state, err := Apply(prev, 5, 1, true, nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, false, false, false}, state.ChapterCompleted)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, state.ChapterScores)
	assert.False(t, state.Completed)
}

func TestApplyUpdateCompletionRequiresAllFlags(t *testing.T) {
	prev := &State{
		ChapterCompleted: []bool{true, false, false, false, false},
		ChapterScores:    make([]float64, 5),
	}

	state, err := Apply(prev, 5, 2, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, false, false}, state.ChapterCompleted)
	assert.False(t, state.Completed)
}

func TestApplyDoesNotMutatePrev(t *testing.T) {
	prev := &State{
		ChapterCompleted: []bool{true, false, false},
		ChapterScores:    []float64{10, 0, 0},
	}

	_, err := Apply(prev, 3, 2, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, prev.ChapterCompleted)
	assert.Equal(t, []float64{10, 0, 0}, prev.ChapterScores)
}

func TestApplyIsIdempotentForIdenticalInputs(t *testing.T) {
	score := 60.0
	first, err := Apply(&State{
		ChapterCompleted: make([]bool, 4),
		ChapterScores:    make([]float64, 4),
	}, 4, 2, true, &score)
	require.NoError(t, err)

	second, err := Apply(&first, 4, 2, true, &score)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 5))
	assert.Equal(t, 40, Percentage(2, 5))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 100, Percentage(5, 5))
	assert.Equal(t, 0, Percentage(3, 0))
}
