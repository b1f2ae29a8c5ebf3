package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChapterProgress holds the per-chapter completion flags and scores, aligned
// to the course's chapter count. Stored as a JSON column.
type ChapterProgress struct {
	Completed []bool    `json:"completed"`
	Scores    []float64 `json:"scores"`
}

func (cp ChapterProgress) Value() (driver.Value, error) {
	return json.Marshal(cp)
}

func (cp *ChapterProgress) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*cp = ChapterProgress{}
		return nil
	default:
		return fmt.Errorf("unsupported chapter progress column type %T", value)
	}
	if err := json.Unmarshal(data, cp); err != nil {
		return fmt.Errorf("malformed chapter progress payload: %w", err)
	}
	return nil
}

// Progress is the per (user, course) completion record. CurrentChapter points
// into the course's chapter sequence; Completed is the course-level flag.
type Progress struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	UserID         string          `gorm:"index:idx_progress_user_course,unique;not null" json:"userId"`
	CourseID       string          `gorm:"index:idx_progress_user_course,unique;not null" json:"courseId"`
	CurrentChapter int             `json:"currentChapter"`
	Completed      bool            `json:"completed"`
	Chapters       ChapterProgress `gorm:"type:jsonb" json:"chapters"`
	LastAccessed   time.Time       `json:"lastAccessed"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
