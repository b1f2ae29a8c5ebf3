package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"coursegen/generator"
	"coursegen/middleware"
	"coursegen/models"
	"coursegen/progress"
	"coursegen/repository"
	"coursegen/utils"
)

type CoursesController struct {
	Courses    *repository.CourseRepository
	Progresses *repository.ProgressRepository
	Logger     *zap.Logger
}

func NewCoursesController(courses *repository.CourseRepository, progresses *repository.ProgressRepository, logger *zap.Logger) *CoursesController {
	return &CoursesController{Courses: courses, Progresses: progresses, Logger: logger}
}

// SaveCourse godoc
// @Summary Save a reviewed course draft
// @Description Persists a generated course and initializes its progress record
// @Tags courses
// @Accept json
// @Produce json
// @Router /courses [post]
func (cc *CoursesController) SaveCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"courseId": nil,
			"error":    "Unauthorized",
		})
	}

	var doc generator.CourseDocument
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"courseId": nil,
			"error":    "Cannot parse JSON",
		})
	}

	slug := utils.Slugify(doc.CourseID)
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"courseId": nil,
			"error":    "Course ID is required",
		})
	}
	if err := doc.Chapters.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"courseId": nil,
			"error":    err.Error(),
		})
	}

	meta, err := json.Marshal(doc.Meta)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"courseId": nil,
			"error":    "Could not encode course metadata",
		})
	}

	course := &models.Course{
		CourseID:              slug,
		Title:                 doc.Title,
		Subtitle:              doc.Subtitle,
		Category:              doc.Category,
		Level:                 doc.Level,
		DurationWeeks:         doc.DurationWeeks,
		EstimatedTotalMinutes: doc.EstimatedTotalMinutes,
		Description:           doc.Description,
		LearningOutcomes:      doc.LearningOutcomes,
		Chapters:              doc.Chapters,
		Meta:                  meta,
		CreatedBy:             userID,
	}

	if err := cc.Courses.Create(course); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourseID) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"courseId": nil,
				"error":    "A course with this ID already exists",
			})
		}
		cc.Logger.Error("saving course", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"courseId": nil,
			"error":    "Could not save course",
		})
	}

	initial := &models.Progress{
		UserID:   userID,
		CourseID: course.ID,
		Chapters: models.ChapterProgress{
			Completed: make([]bool, len(course.Chapters)),
			Scores:    make([]float64, len(course.Chapters)),
		},
		LastAccessed: time.Now(),
	}
	if err := cc.Progresses.Create(initial); err != nil {
		cc.Logger.Error("initializing progress", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"courseId": nil,
			"error":    "Could not initialize progress",
		})
	}

	return c.JSON(fiber.Map{
		"courseId": course.CourseID,
		"error":    nil,
	})
}

// ListCourses godoc
// @Summary List the caller's courses
// @Tags courses
// @Produce json
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"courses": nil,
			"error":   "Unauthorized",
		})
	}

	sortField := c.Query("sort", "created_at")
	desc := c.Query("order", "desc") != "asc"

	courses, err := cc.Courses.ListByOwner(userID, sortField, desc)
	if err != nil {
		cc.Logger.Error("listing courses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"courses": nil,
			"error":   "Could not fetch courses",
		})
	}

	return c.JSON(fiber.Map{
		"courses": courses,
		"error":   nil,
	})
}

// GetCourse godoc
// @Summary Get one course with its progress
// @Tags courses
// @Produce json
// @Router /courses/{courseId} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"course": nil,
			"error":  "Unauthorized",
		})
	}

	course, err := cc.Courses.GetByCourseID(userID, c.Params("courseId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"course": nil,
				"error":  "Course not found or access denied",
			})
		}
		cc.Logger.Error("fetching course", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"course": nil,
			"error":  "Could not fetch course",
		})
	}

	var progressPayload fiber.Map
	if p, err := cc.Progresses.Get(userID, course.ID); err == nil {
		progressPayload = progressResponse(p, len(course.Chapters))
	} else if !errors.Is(err, repository.ErrNotFound) {
		cc.Logger.Error("fetching progress", zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"course":   course,
		"progress": progressPayload,
		"error":    nil,
	})
}

// UpdateProgress godoc
// @Summary Record a chapter transition
// @Description Recomputes the caller's progress for the target chapter and persists the snapshot
// @Tags courses
// @Accept json
// @Produce json
// @Router /courses/{courseId}/progress [post]
func (cc *CoursesController) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"progress": nil,
			"error":    "Unauthorized",
		})
	}

	var input struct {
		ChapterIndex  int      `json:"chapter_index"`
		MarkCompleted bool     `json:"mark_completed"`
		Score         *float64 `json:"score"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"progress": nil,
			"error":    "Cannot parse JSON",
		})
	}

	course, err := cc.Courses.GetByCourseID(userID, c.Params("courseId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"progress": nil,
				"error":    "Course not found or access denied",
			})
		}
		cc.Logger.Error("fetching course", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"progress": nil,
			"error":    "Could not fetch course",
		})
	}
	totalChapters := len(course.Chapters)

	existing, err := cc.Progresses.Get(userID, course.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		cc.Logger.Error("fetching progress", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"progress": nil,
			"error":    "Could not fetch progress",
		})
	}

	var prev *progress.State
	if existing != nil {
		prev = &progress.State{
			CurrentChapter:   existing.CurrentChapter,
			Completed:        existing.Completed,
			ChapterCompleted: existing.Chapters.Completed,
			ChapterScores:    existing.Chapters.Scores,
		}
	}

	// Reducer failures abort before anything is written.
	next, err := progress.Apply(prev, totalChapters, input.ChapterIndex, input.MarkCompleted, input.Score)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"progress": nil,
			"error":    err.Error(),
		})
	}

	record := existing
	if record == nil {
		record = &models.Progress{UserID: userID, CourseID: course.ID}
	}
	record.CurrentChapter = next.CurrentChapter
	record.Completed = next.Completed
	record.Chapters = models.ChapterProgress{
		Completed: next.ChapterCompleted,
		Scores:    next.ChapterScores,
	}
	record.LastAccessed = time.Now()

	if existing == nil {
		err = cc.Progresses.Create(record)
	} else {
		err = cc.Progresses.Save(record)
	}
	if err != nil {
		cc.Logger.Error("saving progress", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"progress": nil,
			"error":    "Could not save progress",
		})
	}

	return c.JSON(fiber.Map{
		"progress": progressResponse(record, totalChapters),
		"error":    nil,
	})
}

// progressResponse attaches the derived percentage; it is presentation only
// and never stored.
func progressResponse(p *models.Progress, totalChapters int) fiber.Map {
	return fiber.Map{
		"currentChapter":     p.CurrentChapter,
		"completed":          p.Completed,
		"chapters":           p.Chapters,
		"progressPercentage": progress.Percentage(p.CurrentChapter, totalChapters),
		"lastAccessed":       p.LastAccessed,
	}
}
