package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coursegen/models"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// Create persists a new course. The external course id must be unique across
// all courses, not just the owner's.
func (r *CourseRepository) Create(course *models.Course) error {
	var count int64
	if err := r.DB.Model(&models.Course{}).
		Where("course_id = ?", course.CourseID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("checking course id: %w", err)
	}
	if count > 0 {
		return ErrDuplicateCourseID
	}

	if err := r.DB.Create(course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCourseID
		}
		return fmt.Errorf("creating course: %w", err)
	}
	return nil
}

// GetByCourseID fetches a course by its external id, scoped to the owning
// user. A course owned by someone else looks identical to a missing one.
func (r *CourseRepository) GetByCourseID(ownerID, courseID string) (*models.Course, error) {
	var course models.Course
	err := r.DB.Where("course_id = ? AND created_by = ?", courseID, ownerID).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching course: %w", err)
	}
	return &course, nil
}

var courseSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

// ListByOwner returns the owner's courses. Unknown sort fields fall back to
// creation time.
func (r *CourseRepository) ListByOwner(ownerID, sortField string, desc bool) ([]models.Course, error) {
	column, ok := courseSortColumns[sortField]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	var courses []models.Course
	err := r.DB.Where("created_by = ?", ownerID).
		Order(column + " " + direction).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}
