package repository

import (
	"fmt"

	"gorm.io/gorm"

	"coursegen/models"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	if err := r.DB.Create(session).Error; err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// Delete removes a mirrored session. Webhook deliveries for ended, removed
// and revoked sessions can overlap, so an already-deleted session is a
// benign no-op.
func (r *SessionRepository) Delete(sessionID string) error {
	if err := r.DB.Delete(&models.Session{}, "id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
