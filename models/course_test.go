package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChapters() ChapterList {
	return ChapterList{
		{Index: 0, Title: "Basics", ContentText: "text"},
		{Index: 1, Title: "Tooling", ContentText: "text", Quiz: &Quiz{
			Questions: []Question{
				{ID: "q1", Prompt: "?", Type: "single-choice", Options: []string{"a", "b"}, CorrectAnswerIndex: 1},
			},
		}},
	}
}

func TestChapterListValidate(t *testing.T) {
	assert.NoError(t, validChapters().Validate())

	assert.Error(t, ChapterList{}.Validate())

	gap := validChapters()
	gap[1].Index = 5
	assert.Error(t, gap.Validate())

	badQuiz := validChapters()
	badQuiz[1].Quiz.Questions[0].CorrectAnswerIndex = 2
	assert.Error(t, badQuiz.Validate())
}

func TestChapterListRoundTrip(t *testing.T) {
	chapters := validChapters()

	value, err := chapters.Value()
	require.NoError(t, err)

	var scanned ChapterList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, chapters, scanned)
}

func TestChapterListScanRejectsMalformedPayloads(t *testing.T) {
	var cl ChapterList

	assert.Error(t, cl.Scan([]byte(`{"not": "a list"}`)))
	assert.Error(t, cl.Scan([]byte(`[{"index": 3, "title": "orphan"}]`)))
	assert.Error(t, cl.Scan(nil))
	assert.Error(t, cl.Scan(42))
}

func TestChapterListValueRejectsInvalidChapters(t *testing.T) {
	bad := validChapters()
	bad[0].Index = 7
	_, err := bad.Value()
	assert.Error(t, err)
}
