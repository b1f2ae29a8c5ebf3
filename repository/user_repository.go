package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursegen/models"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Upsert creates the user or refreshes an existing row, keyed on the
// identity-provider id.
func (r *UserRepository) Upsert(user *models.User) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "image", "email_verified", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(user *models.User) error {
	result := r.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":          user.Email,
			"name":           user.Name,
			"image":          user.Image,
			"email_verified": user.EmailVerified,
		})
	if result.Error != nil {
		return fmt.Errorf("updating user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user and any sessions mirrored for them.
func (r *UserRepository) Delete(userID string) error {
	if err := r.DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("deleting user sessions: %w", err)
	}
	err := r.DB.Delete(&models.User{}, "id = ?", userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

func (r *UserRepository) Exists(userID string) (bool, error) {
	var count int64
	if err := r.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return count > 0, nil
}
