package courseValidator

import (
	"strconv"
	"strings"

	controllers "github.com/mdv314/claritas-learning/controllers/course"
	"github.com/mdv314/claritas-learning/middleware"

	"github.com/gofiber/fiber/v2"
)

// QuizRequest validates quiz generation / session start bodies.
func QuizRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.CourseID) == "" {
			errors["courseId"] = "courseId is required"
		}
		if reqData.UnitNumber < 1 {
			errors["unitNumber"] = "unitNumber must be greater than 0"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("quizRequest", reqData)
		return c.Next()
	}
}

// EvaluateQuiz validates the evaluation body. Sentinel values (-1, "") are
// legal: the answer gate is client-side only and the contract stays robust
// against partially answered submissions.
func EvaluateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.EvaluateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.CourseID) == "" {
			errors["courseId"] = "courseId is required"
		}
		if reqData.UnitNumber < 1 {
			errors["unitNumber"] = "unitNumber must be greater than 0"
		}
		if reqData.McqAnswers == nil {
			errors["mcqAnswers"] = "mcqAnswers is required"
		}
		if reqData.FrqAnswers == nil {
			errors["frqAnswers"] = "frqAnswers is required"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("evaluateRequest", reqData)
		return c.Next()
	}
}

// QuizAttemptsQuery validates ?courseId&unitNumber for the history fetch.
func QuizAttemptsQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Query("courseId"))
		if courseID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing courseId or unitNumber")
		}
		unitNumber, err := strconv.Atoi(c.Query("unitNumber"))
		if err != nil || unitNumber < 1 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing courseId or unitNumber")
		}

		c.Locals("courseID", courseID)
		c.Locals("unitNumber", unitNumber)
		return c.Next()
	}
}

// QuizHelp validates the tutoring proxy body.
func QuizHelp() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.HelpRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.CourseID) == "" {
			errors["courseId"] = "courseId is required"
		}
		if reqData.UnitNumber < 1 {
			errors["unitNumber"] = "unitNumber must be greater than 0"
		}
		if reqData.QuestionType != "mcq" && reqData.QuestionType != "frq" {
			errors["questionType"] = "questionType must be mcq or frq"
		}
		if strings.TrimSpace(reqData.StudentMessage) == "" {
			errors["studentMessage"] = "studentMessage is required"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("helpRequest", reqData)
		return c.Next()
	}
}

// SessionIDParam validates the :id session path parameter.
func SessionIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Params("id"))
		if sessionID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing session id")
		}
		c.Locals("sessionID", sessionID)
		return c.Next()
	}
}

// Answer validates one answer action for a quiz session.
func Answer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.AnswerRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if reqData.Type != "mcq" && reqData.Type != "frq" {
			errors["type"] = "type must be mcq or frq"
		}
		if reqData.QuestionIndex < 0 {
			errors["questionIndex"] = "questionIndex must not be negative"
		}
		if reqData.Type == "mcq" && reqData.OptionIndex == nil {
			errors["optionIndex"] = "optionIndex is required for mcq answers"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("answerRequest", reqData)
		return c.Next()
	}
}
