package quizRoutes

import (
	controllers "github.com/mdv314/claritas-learning/controllers/course"
	"github.com/mdv314/claritas-learning/middleware"
	validators "github.com/mdv314/claritas-learning/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz generation, evaluation and session routes
func SetupQuizRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Stateless wrappers around the backend quiz endpoints
	api.Post("/generate-quiz", middleware.AuthOptional, validators.QuizRequest(), controllers.GenerateQuiz)
	api.Post("/evaluate-quiz", middleware.AuthRequired, validators.EvaluateQuiz(), controllers.EvaluateQuiz)
	api.Get("/quiz-attempts", middleware.AuthRequired, validators.QuizAttemptsQuery(), controllers.ListQuizAttempts)
	api.Get("/quiz-status", middleware.AuthRequired, validators.CourseIDQuery(), controllers.QuizStatus)
	api.Post("/quiz-help", middleware.AuthOptional, validators.QuizHelp(), controllers.QuizHelp)

	// Server-held quiz sessions (the state machine lives here)
	sessionGroup := api.Group("/quiz-session", middleware.AuthOptional)
	sessionGroup.Post("/", validators.QuizRequest(), controllers.StartQuizSession)
	sessionGroup.Get("/:id", validators.SessionIDParam(), controllers.GetQuizSession)
	sessionGroup.Post("/:id/answer", validators.SessionIDParam(), validators.Answer(), controllers.AnswerQuizSession)
	sessionGroup.Post("/:id/submit", validators.SessionIDParam(), controllers.SubmitQuizSession)
	sessionGroup.Post("/:id/retake", validators.SessionIDParam(), controllers.RetakeQuizSession)
	sessionGroup.Post("/:id/retry", validators.SessionIDParam(), controllers.RetryQuizSession)
	sessionGroup.Delete("/:id", validators.SessionIDParam(), controllers.DeleteQuizSession)
}
