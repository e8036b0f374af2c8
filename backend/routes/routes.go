package routes

import (
	"examportal/backend/config"
	"examportal/backend/controllers"
	"examportal/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Get("/api/auth", authMiddleware, authController.GetCurrentUser)
	app.Post("/api/auth", authController.Login)

	// Batch routes
	batchController := controllers.NewBatchController(db, cfg)
	batches := app.Group("/api/batches")
	batches.Get("/", batchController.GetBatches)
	batches.Get("/:id", authMiddleware, batchController.GetBatch)
	batches.Post("/", authMiddleware, batchController.CreateBatch)
	batches.Put("/:id", authMiddleware, batchController.UpdateBatch)
	batches.Delete("/:id", authMiddleware, batchController.DeleteBatch)
	batches.Post("/faculty/:id", authMiddleware, batchController.AssignFaculty)
	batches.Delete("/faculty/:id", authMiddleware, batchController.UnassignFaculty)

	// Faculty routes
	facultyController := controllers.NewFacultyController(db, cfg)
	faculties := app.Group("/api/faculties")
	faculties.Get("/", authMiddleware, facultyController.GetFaculties)
	faculties.Get("/:id", authMiddleware, facultyController.GetFaculty)
	faculties.Post("/", facultyController.Register)

	// Student routes
	studentController := controllers.NewStudentController(db, cfg)
	students := app.Group("/api/students")
	students.Get("/", authMiddleware, studentController.GetStudents)
	students.Get("/:id", authMiddleware, studentController.GetStudent)
	students.Post("/", studentController.Register)
	students.Put("/score/:id", authMiddleware, studentController.AddScore)

	// Submission routes
	submissionController := controllers.NewSubmissionController(db, cfg)
	submissions := app.Group("/api/submissions")
	submissions.Get("/", authMiddleware, submissionController.GetSubmissions)
	submissions.Get("/:id", authMiddleware, submissionController.GetSubmission)
	submissions.Post("/", authMiddleware, submissionController.CreateSubmission)
	submissions.Post("/:id", authMiddleware, submissionController.EvaluateSubmission)

	// Test routes
	testController := controllers.NewTestController(db, cfg)
	tests := app.Group("/api/tests")
	tests.Get("/", authMiddleware, testController.GetTests)
	tests.Post("/", authMiddleware, testController.CreateTest)
	tests.Put("/:id", authMiddleware, testController.UpdateTest)
	tests.Delete("/:id", authMiddleware, testController.DeleteTest)
	tests.Post("/dismiss/:id", authMiddleware, testController.DismissTest)
	tests.Post("/:id", authMiddleware, testController.ConfirmTest)
}
