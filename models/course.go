package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Resource struct {
	Type  string `json:"type" validate:"required,oneof=link article repo pdf video"`
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
}

type Question struct {
	ID                 string   `json:"id" validate:"required"`
	Prompt             string   `json:"prompt" validate:"required"`
	Type               string   `json:"type" validate:"required,oneof=single-choice multi-choice short-answer"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation"`
}

type Quiz struct {
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
}

type Chapter struct {
	Index            int        `json:"index"`
	Title            string     `json:"title" validate:"required"`
	Summary          string     `json:"summary"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	YoutubeURL       *string    `json:"youtube_url"`
	ContentText      string     `json:"content_text" validate:"required"`
	Quiz             *Quiz      `json:"quiz,omitempty"`
	Resources        []Resource `json:"resources" validate:"dive"`
}

// ChapterList is the chapters column. It is stored as JSON but typed and
// validated at the persistence boundary: malformed payloads are rejected on
// both write and read instead of being passed through as untyped blobs.
type ChapterList []Chapter

// Validate enforces the structural invariants of a chapter sequence:
// contiguous indexes matching position, and quiz answers pointing at an
// existing option.
func (cl ChapterList) Validate() error {
	if len(cl) == 0 {
		return errors.New("chapter list is empty")
	}
	for i, ch := range cl {
		if ch.Index != i {
			return fmt.Errorf("chapter at position %d has index %d", i, ch.Index)
		}
		if ch.Quiz == nil {
			continue
		}
		for _, q := range ch.Quiz.Questions {
			if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
				return fmt.Errorf("chapter %d question %q: correct_answer_index %d out of range", i, q.ID, q.CorrectAnswerIndex)
			}
		}
	}
	return nil
}

func (cl ChapterList) Value() (driver.Value, error) {
	if err := cl.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(cl)
}

func (cl *ChapterList) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		return errors.New("chapters column is null")
	default:
		return fmt.Errorf("unsupported chapters column type %T", value)
	}

	var chapters []Chapter
	if err := json.Unmarshal(data, &chapters); err != nil {
		return fmt.Errorf("malformed chapters payload: %w", err)
	}
	parsed := ChapterList(chapters)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("malformed chapters payload: %w", err)
	}
	*cl = parsed
	return nil
}

// Course is a generated learning unit. CourseID is the human-facing slug and
// is unique across all courses; ID is the internal key.
type Course struct {
	ID                    string `gorm:"primaryKey" json:"id"`
	CourseID              string `gorm:"uniqueIndex;not null" json:"courseId"`
	Title                 string `json:"title"`
	Subtitle              string `json:"subtitle"`
	Category              string `json:"category"`
	Level                 string `json:"level"`
	DurationWeeks         int    `json:"duration_weeks"`
	EstimatedTotalMinutes int    `json:"estimated_total_minutes"`
	Description           string `json:"description"`
	ImageURL              *string `json:"image_url"`

	LearningOutcomes datatypes.JSONSlice[string] `json:"learning_outcomes"`
	Chapters         ChapterList                 `gorm:"type:jsonb" json:"chapters"`
	Meta             datatypes.JSON              `gorm:"type:jsonb" json:"meta,omitempty"`

	CreatedBy string    `gorm:"index;not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
