package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coursegen/models"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Get fetches the progress record for a (user, course) pair. courseID is the
// course's internal id.
func (r *ProgressRepository) Get(userID, courseID string) (*models.Progress, error) {
	var p models.Progress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching progress: %w", err)
	}
	return &p, nil
}

func (r *ProgressRepository) Create(p *models.Progress) error {
	if err := r.DB.Create(p).Error; err != nil {
		return fmt.Errorf("creating progress: %w", err)
	}
	return nil
}

// Save writes a full progress snapshot. Concurrent writers race with
// last-write-wins semantics; no version token is kept.
func (r *ProgressRepository) Save(p *models.Progress) error {
	if err := r.DB.Save(p).Error; err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}
