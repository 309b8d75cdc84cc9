package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/assessment"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/config"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/controllers"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/middleware"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	engine := assessment.NewEngine(db, logger)

	authMiddleware := middleware.AuthMiddleware(cfg)
	tutorMiddleware := middleware.RequireRole(db, cfg, models.RoleTutor, models.RoleAdmin)

	// Quiz routes
	quizController := controllers.NewQuizController(engine, cfg)
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id", quizController.GetQuizState)
	quizzes.Post("/:id/attempts", quizController.SubmitAttempt)
	quizzes.Get("/:id/analytics", tutorMiddleware, quizController.GetQuizAnalytics)

	// Assignment routes
	assignmentsController := controllers.NewAssignmentsController(engine, cfg)
	app.Post("/api/items/:id/submission", authMiddleware, assignmentsController.SubmitAssignment)
	app.Put("/api/submissions/:id/grade", authMiddleware, tutorMiddleware, assignmentsController.GradeSubmission)

	// Progress routes
	progressController := controllers.NewProgressController(engine, cfg)
	app.Get("/api/courses/:id/progress", authMiddleware, progressController.GetCourseProgress)
	app.Post("/api/courses/:id/progress", authMiddleware, progressController.SetCourseProgress)
}
