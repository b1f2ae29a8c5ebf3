// Package progress computes chapter-completion state transitions. The reducer
// is pure: callers persist the returned snapshot themselves.
package progress

import (
	"errors"
	"math"
)

var (
	ErrInvalidIndex      = errors.New("invalid chapter index")
	ErrChapterOutOfRange = errors.New("chapter index out of range")
)

// State is a progress snapshot. ChapterCompleted and ChapterScores are always
// the same length as the course's chapter count at reduction time.
type State struct {
	CurrentChapter   int
	Completed        bool
	ChapterCompleted []bool
	ChapterScores    []float64
}

// Apply computes the next progress state for a transition to chapterIndex
// (0-based). prev is nil on the first transition for a (user, course) pair.
//
// Chapters before the target are always marked complete: reaching a chapter
// means the user has passed through every earlier one. The target chapter
// itself takes the caller's markCompleted intent verbatim, so revisiting a
// chapter without completing it flips its flag back off.
func Apply(prev *State, totalChapters, chapterIndex int, markCompleted bool, score *float64) (State, error) {
	if chapterIndex < 0 {
		return State{}, ErrInvalidIndex
	}
	if chapterIndex >= totalChapters {
		return State{}, ErrChapterOutOfRange
	}

	if prev == nil {
		return create(totalChapters, chapterIndex, markCompleted), nil
	}
	return update(prev, totalChapters, chapterIndex, markCompleted, score), nil
}

func create(totalChapters, chapterIndex int, markCompleted bool) State {
	completed := make([]bool, totalChapters)
	for i := 0; i <= chapterIndex; i++ {
		completed[i] = true
	}
	return State{
		CurrentChapter:   min(chapterIndex, totalChapters-1),
		Completed:        markCompleted && chapterIndex >= totalChapters-1,
		ChapterCompleted: completed,
		// The score parameter is intentionally not applied on creation; only
		// update transitions write scores.
		ChapterScores: make([]float64, totalChapters),
	}
}

func update(prev *State, totalChapters, chapterIndex int, markCompleted bool, score *float64) State {
	completed := prev.ChapterCompleted
	scores := prev.ChapterScores

	// A course edit can change the chapter count; stale sequences are
	// discarded rather than partially reused.
	if len(completed) != totalChapters || len(scores) != totalChapters {
		completed = make([]bool, totalChapters)
		scores = make([]float64, totalChapters)
	} else {
		completed = append([]bool(nil), completed...)
		scores = append([]float64(nil), scores...)
	}

	completed[chapterIndex] = markCompleted
	if score != nil {
		scores[chapterIndex] = *score
	}
	for i := 0; i < chapterIndex; i++ {
		completed[i] = true
	}

	allCompleted := true
	for _, done := range completed {
		if !done {
			allCompleted = false
			break
		}
	}

	// A non-completing navigation never re-derives the course-level flag.
	courseCompleted := prev.Completed
	if markCompleted {
		courseCompleted = allCompleted
	}

	return State{
		CurrentChapter:   min(chapterIndex, totalChapters-1),
		Completed:        courseCompleted,
		ChapterCompleted: completed,
		ChapterScores:    scores,
	}
}

// Percentage derives the display progress percentage. It is never persisted.
func Percentage(currentChapter, totalChapters int) int {
	if totalChapters <= 0 {
		return 0
	}
	return int(math.Round(float64(currentChapter) / float64(totalChapters) * 100))
}
