package courseController

import (
	"errors"

	"github.com/mdv314/claritas-learning/backend"
	"github.com/mdv314/claritas-learning/database"
	"github.com/mdv314/claritas-learning/middleware"
	courseModels "github.com/mdv314/claritas-learning/models/course"
	"github.com/mdv314/claritas-learning/models/quiz"
	"github.com/mdv314/claritas-learning/quizsession"

	"github.com/gofiber/fiber/v2"
)

// backendGenerator adapts the AI backend client to the session Generator.
type backendGenerator struct {
	client *backend.Client
}

func (g backendGenerator) Generate(courseID string, unitNumber int, retake bool) (*quiz.ModuleQuiz, error) {
	return g.client.GenerateModuleQuiz(courseID, unitNumber, retake)
}

func (g backendGenerator) GenerateAdaptive(userID uint, courseID string, unitNumber int) (*quiz.ModuleQuiz, error) {
	if userID == 0 {
		return nil, errors.New("adaptive retake requires an authenticated session")
	}
	return g.client.GenerateRetakeQuiz(courseID, unitNumber, authIDString(userID))
}

// persistingEvaluator scores through the backend and records the attempt
// server-side for authenticated owners, assigning the attempt number.
type persistingEvaluator struct {
	client *backend.Client
}

func (e persistingEvaluator) Evaluate(userID uint, courseID string, unitNumber int, mcqAnswers []int, frqAnswers []string) (*quiz.EvaluationResult, error) {
	authID := ""
	if userID != 0 {
		authID = authIDString(userID)
	}
	result, err := e.client.EvaluateModuleQuiz(courseID, unitNumber, mcqAnswers, frqAnswers, authID)
	if err != nil {
		return nil, err
	}
	recordAttempt(userID, courseID, unitNumber, result)
	return result, nil
}

// dbHistory reads the stored attempt history for a (user, course, unit).
type dbHistory struct{}

func (dbHistory) Attempts(userID uint, courseID string, unitNumber int) ([]quizsession.Attempt, error) {
	if userID == 0 {
		return nil, errors.New("not authenticated")
	}

	var rows []courseModels.QuizAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND unit_number = ? AND is_deleted = ?", userID, courseID, unitNumber, false).
		Order("attempt_number asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	attempts := make([]quizsession.Attempt, len(rows))
	for i, row := range rows {
		attempts[i] = quizsession.Attempt{
			AttemptNumber: row.AttemptNumber,
			Percentage:    row.Percentage,
			Passed:        row.Passed,
			McqScore:      row.McqScore,
			McqTotal:      row.McqTotal,
			FrqScore:      row.FrqScore,
			FrqTotal:      row.FrqTotal,
			TotalScore:    row.TotalScore,
			TotalPossible: row.TotalPossible,
			CreatedAt:     row.CreatedAt,
		}
	}
	return attempts, nil
}

// ownedSession resolves the session id param and enforces ownership: a
// session started by another user is indistinguishable from a missing one.
func ownedSession(c *fiber.Ctx) (*quizsession.Session, error) {
	id := c.Locals("sessionID").(string)
	s, ok := sessions.Get(id)
	if !ok || s.UserID != middleware.UserID(c) {
		return nil, middleware.ErrorResponse(c, fiber.StatusNotFound, "Quiz session not found")
	}
	return s, nil
}

// StartQuizSession opens a session and generates its quiz. The response
// carries the full session view, including the ERROR state when generation
// failed; the client retries explicitly from there.
func StartQuizSession(c *fiber.Ctx) error {
	reqData := c.Locals("quizRequest").(*QuizRequest)

	s := sessions.Start(middleware.UserID(c), reqData.CourseID, reqData.UnitNumber)
	return c.Status(fiber.StatusCreated).JSON(s.View())
}

// GetQuizSession returns the current session snapshot.
func GetQuizSession(c *fiber.Ctx) error {
	s, err := ownedSession(c)
	if err != nil {
		return err
	}
	return c.JSON(s.View())
}

// AnswerQuizSession records one MCQ selection or FRQ text edit.
func AnswerQuizSession(c *fiber.Ctx) error {
	s, err := ownedSession(c)
	if err != nil {
		return err
	}
	reqData := c.Locals("answerRequest").(*AnswerRequest)

	if reqData.Type == "mcq" {
		err = s.SelectOption(reqData.QuestionIndex, *reqData.OptionIndex)
	} else {
		err = s.SetResponse(reqData.QuestionIndex, reqData.Text)
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(s.View())
}

// AnswerRequest is the validated body for AnswerQuizSession.
type AnswerRequest struct {
	Type          string `json:"type"` // "mcq" or "frq"
	QuestionIndex int    `json:"questionIndex"`
	OptionIndex   *int   `json:"optionIndex,omitempty"`
	Text          string `json:"text"`
}

// SubmitQuizSession evaluates the session's answers. Failures surface in
// the returned state, not as transport errors.
func SubmitQuizSession(c *fiber.Ctx) error {
	s, err := ownedSession(c)
	if err != nil {
		return err
	}
	if err := sessions.Submit(s); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(s.View())
}

// RetakeQuizSession requests an adaptive retake after a failing result.
func RetakeQuizSession(c *fiber.Ctx) error {
	s, err := ownedSession(c)
	if err != nil {
		return err
	}
	if err := sessions.Retake(s); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(s.View())
}

// RetryQuizSession restarts a session stuck in ERROR.
func RetryQuizSession(c *fiber.Ctx) error {
	s, err := ownedSession(c)
	if err != nil {
		return err
	}
	if err := sessions.Retry(s); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(s.View())
}

// DeleteQuizSession tears a session down when the user navigates away.
func DeleteQuizSession(c *fiber.Ctx) error {
	s, err := ownedSession(c)
	if err != nil {
		return err
	}
	sessions.Remove(s.ID)
	return c.JSON(fiber.Map{"success": true})
}
