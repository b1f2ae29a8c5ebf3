package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coursegen/config"
	"coursegen/controllers"
	"coursegen/middleware"
	"coursegen/repository"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, gen controllers.CourseGenerator, logger *zap.Logger) {
	courseRepo := repository.NewCourseRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Webhook receiver, verified by signature rather than session token
	webhookController := controllers.NewWebhookController(cfg, userRepo, sessionRepo, logger)
	app.Post("/api/webhooks/user", webhookController.HandleUserWebhook)

	// Generator routes
	generatorController := controllers.NewGeneratorController(gen)
	app.Post("/api/generator", authMiddleware, generatorController.Generate)

	// Courses routes
	coursesController := controllers.NewCoursesController(courseRepo, progressRepo, logger)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.ListCourses)
	courses.Post("/", coursesController.SaveCourse)
	courses.Get("/:courseId", coursesController.GetCourse)
	courses.Post("/:courseId/progress", coursesController.UpdateProgress)
}
