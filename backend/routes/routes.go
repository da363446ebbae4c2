package routes

import (
	"log"
	"time"

	"examprep/backend/auth"
	"examprep/backend/cache"
	"examprep/backend/config"
	"examprep/backend/controllers"
	"examprep/backend/middleware"
	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/services"
	"examprep/backend/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Services are the collaborators that differ between production and tests.
type Services struct {
	Uploader storage.Uploader
	Catalog  cache.Catalog
	Logger   *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, svc Services) error {
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return err
	}
	if svc.Catalog == nil {
		svc.Catalog = cache.NopCatalog{}
	}
	if svc.Now == nil {
		svc.Now = time.Now
	}

	repo := repository.New(db)
	streaks := services.NewStreakService(repo, svc.Now)
	logger := svc.Logger

	requireTeacher := middleware.RequireRole(models.RoleTeacher, issuer, repo, logger)
	requireStudent := middleware.RequireRole(models.RoleStudent, issuer, repo, logger)
	rateLimit := middleware.AuthRateLimit(cfg.AuthRateLimit)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Exam prep API is running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Teacher auth
	teacherController := controllers.NewTeacherController(repo, issuer, logger)
	teacher := api.Group("/teacher")
	teacher.Post("/signup", rateLimit, teacherController.Signup)
	teacher.Post("/signin", rateLimit, teacherController.Signin)
	teacher.Get("/profile", requireTeacher, teacherController.Profile)

	// Student auth
	studentController := controllers.NewStudentController(repo, issuer, logger)
	student := api.Group("/student")
	student.Post("/signup", rateLimit, studentController.Signup)
	student.Post("/signin", rateLimit, studentController.Signin)
	student.Get("/profile", requireStudent, studentController.Profile)

	// Todos
	todoController := controllers.NewTodoController(repo, logger)
	todos := student.Group("/todos", requireStudent)
	todos.Post("/create", todoController.Create)
	todos.Get("/get", todoController.List)
	todos.Put("/update/:id", todoController.Update)
	todos.Delete("/delete/:id", todoController.Delete)

	prelimsController := controllers.NewPrelimsExamController(repo, svc.Catalog, logger)
	mainsController := controllers.NewMainsExamController(repo, svc.Uploader, svc.Catalog, logger)
	prelimsAttempts := controllers.NewPrelimsAttemptController(repo, streaks, logger)
	mainsAttempts := controllers.NewMainsAttemptController(repo, svc.Uploader, streaks, logger)
	streakController := controllers.NewStreakController(streaks, logger)

	// Static exam paths are registered before /:id so they are not shadowed.
	exam := api.Group("/exam")
	exam.Get("/prelims/free", prelimsController.ListFree)
	exam.Get("/prelims/free-and-paid-info", prelimsController.ListFreeAndPaidInfo)
	exam.Get("/mains/free", mainsController.ListFree)

	exam.Post("/prelims/attempt", requireStudent, prelimsAttempts.Submit)
	exam.Get("/prelims/scores", requireStudent, prelimsAttempts.ListScores)
	exam.Post("/mains/attempt", requireStudent, mainsAttempts.Submit)
	exam.Get("/mains/attempts", requireStudent, mainsAttempts.ListMine)
	exam.Get("/mains/pending-attempts", requireTeacher, mainsAttempts.ListPending)
	exam.Post("/mains/evaluate", requireTeacher, mainsAttempts.Evaluate)
	exam.Post("/streak/update", requireStudent, streakController.Update)
	exam.Get("/streak", requireStudent, streakController.Get)

	exam.Post("/prelims", requireTeacher, prelimsController.Create)
	exam.Get("/prelims", requireTeacher, prelimsController.ListMine)
	exam.Get("/prelims/:id", requireTeacher, prelimsController.Get)
	exam.Delete("/prelims/:id", requireTeacher, prelimsController.Delete)

	exam.Post("/mains", requireTeacher, mainsController.Create)
	exam.Get("/mains", requireTeacher, mainsController.ListMine)
	exam.Get("/mains/:id", requireTeacher, mainsController.Get)
	exam.Delete("/mains/:id", requireTeacher, mainsController.Delete)

	// Syllabus
	syllabusController := controllers.NewSyllabusController(repo, logger)
	syllabus := api.Group("/syllabus", requireTeacher)
	syllabus.Post("/create", syllabusController.Create)
	syllabus.Get("/all", syllabusController.ListMine)
	syllabus.Get("/get/:id", syllabusController.Get)
	syllabus.Get("/teacher/:id", syllabusController.ListByTeacher)
	syllabus.Post("/update/:id", syllabusController.Update)
	syllabus.Put("/update/:id", syllabusController.Update)
	syllabus.Post("/delete/:id", syllabusController.Delete)
	syllabus.Delete("/delete/:id", syllabusController.Delete)

	return nil
}
