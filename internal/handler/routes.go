package handler

import (
	"quizdeck/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth      *AuthHandler
	AdminQuiz *AdminQuizHandler
	Quiz      *QuizHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the API under /api. Admin routes other than login
// require a bearer token verified by tokens.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator) {
	api := app.Group("/api")
	quizID := middleware.ValidateIDParam("id")

	api.Get("/health", h.Health.Health)

	// Public quiz-taking routes
	api.Get("/quizzes", h.Quiz.ListQuizzes)
	api.Post("/quizzes/submit", h.Quiz.SubmitQuiz)
	api.Get("/quizzes/:id", quizID, h.Quiz.GetQuiz)
	api.Get("/results/:id", quizID, h.Quiz.GetResult)

	// Admin routes
	admin := api.Group("/admin")
	admin.Post("/login", h.Auth.Login)

	auth := middleware.Protected(tokens)
	admin.Post("/change-password", auth, h.Auth.ChangePassword)
	admin.Get("/quizzes", auth, h.AdminQuiz.ListQuizzes)
	admin.Post("/quizzes", auth, h.AdminQuiz.CreateQuiz)
	admin.Post("/quizzes/import", auth, h.AdminQuiz.ImportQuiz)
	admin.Get("/quizzes/:id", auth, quizID, h.AdminQuiz.GetQuiz)
	admin.Put("/quizzes/:id", auth, quizID, h.AdminQuiz.ReplaceQuiz)
	admin.Delete("/quizzes/:id", auth, quizID, h.AdminQuiz.DeleteQuiz)
	admin.Get("/quizzes/:id/export", auth, quizID, h.AdminQuiz.ExportQuiz)
}
