package courseController

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/mdv314/claritas-learning/backend"
	"github.com/mdv314/claritas-learning/database"
	"github.com/mdv314/claritas-learning/middleware"
	courseModels "github.com/mdv314/claritas-learning/models/course"
	"github.com/mdv314/claritas-learning/models/quiz"
	"github.com/mdv314/claritas-learning/navigator"
	"github.com/mdv314/claritas-learning/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GenerateQuiz proxies plain quiz generation for anonymous flows.
func GenerateQuiz(c *fiber.Ctx) error {
	reqData := c.Locals("quizRequest").(*QuizRequest)

	q, err := backendClient.GenerateModuleQuiz(reqData.CourseID, reqData.UnitNumber, reqData.Retake)
	if err != nil {
		return upstreamError(c, err, "Failed to generate quiz")
	}
	return c.JSON(q)
}

// QuizRequest is the validated body for GenerateQuiz.
type QuizRequest struct {
	CourseID   string `json:"courseId"`
	UnitNumber int    `json:"unitNumber"`
	Retake     bool   `json:"retake"`
}

// EvaluateQuiz scores a submission through the backend and persists the
// attempt for the authenticated caller. Sentinel answers (-1, "") are
// forwarded as-is; the evaluation service scores them incorrect rather than
// rejecting the request.
func EvaluateQuiz(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	reqData := c.Locals("evaluateRequest").(*EvaluateRequest)

	result, err := backendClient.EvaluateModuleQuiz(
		reqData.CourseID, reqData.UnitNumber,
		reqData.McqAnswers, reqData.FrqAnswers,
		authIDString(userID),
	)
	if err != nil {
		return upstreamError(c, err, "Failed to evaluate quiz")
	}

	recordAttempt(userID, reqData.CourseID, reqData.UnitNumber, result)
	return c.JSON(result)
}

// EvaluateRequest is the validated body for EvaluateQuiz.
type EvaluateRequest struct {
	CourseID   string   `json:"courseId"`
	UnitNumber int      `json:"unitNumber"`
	McqAnswers []int    `json:"mcqAnswers"`
	FrqAnswers []string `json:"frqAnswers"`
}

// recordAttempt stores an append-only QuizAttempt row, assigns the
// server-tracked attempt number, and kicks off module completion when the
// attempt passes. The result is normalized so percentage and passed are
// always present in responses and storage.
func recordAttempt(userID uint, courseID string, unitNumber int, result *quiz.EvaluationResult) {
	result.Normalize()
	if userID == 0 {
		return
	}

	db := database.Database.Db

	var count int64
	db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND course_id = ? AND unit_number = ? AND is_deleted = ?", userID, courseID, unitNumber, false).
		Count(&count)

	weak, _ := json.Marshal(result.WeakSubtopics)
	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		CourseID:      courseID,
		UnitNumber:    unitNumber,
		AttemptNumber: int(count) + 1,
		Percentage:    result.Percent(),
		Passed:        result.IsPassed(),
		McqScore:      result.McqScore,
		McqTotal:      result.McqTotal,
		FrqScore:      result.FrqScore,
		FrqTotal:      result.FrqTotal,
		TotalScore:    result.TotalScore,
		TotalPossible: result.TotalPossible,
		WeakSubtopics: datatypes.JSON(weak),
	}
	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return
	}
	result.AttemptNumber = attempt.AttemptNumber

	if attempt.Passed {
		go finishModule(userID, courseID, unitNumber, attempt.Percentage)
	}
}

// finishModule marks every subtopic of a passed unit completed in the
// progress mirror, advances the enrollment status, and notifies the user.
// Everything here is best-effort: the evaluation response never waits on it.
func finishModule(userID uint, courseID string, unitNumber, percentage int) {
	plan, err := backendClient.GetCourse(courseID)
	if err != nil {
		log.Printf("Could not load course %s to complete unit %d: %v", courseID, unitNumber, err)
		return
	}
	unit, found := navigator.ResolveModule(plan, unitNumber)
	if !found {
		log.Printf("Unit %d no longer exists in course %s", unitNumber, courseID)
		return
	}

	store := mirrorStore{userID: userID}
	for idx := range unit.Subtopics {
		if err := navigator.MarkCompleted(store, courseID, unitNumber, idx); err != nil {
			log.Printf("Error marking topic %d-%d complete: %v", unitNumber, idx, err)
		}
	}

	updateEnrollmentStatus(userID, courseID, plan.Units)

	var user struct {
		Name  string
		Email string
	}
	db := database.Database.Db
	if err := db.Table("users").Select("name, email").Where("id = ?", userID).Scan(&user).Error; err == nil && user.Email != "" {
		if err := utils.SendModulePassedEmail(user.Email, user.Name, plan.CourseTitle, unitNumber, percentage); err != nil {
			log.Printf("Error sending module-passed email: %v", err)
		}
	}
}

// updateEnrollmentStatus moves an enrollment to IN_PROGRESS, or COMPLETED
// once every unit of the plan has a passing attempt.
func updateEnrollmentStatus(userID uint, courseID string, units []quiz.Unit) {
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return
	}

	var passedUnits int64
	db.Model(&courseModels.QuizAttempt{}).
		Distinct("unit_number").
		Where("user_id = ? AND course_id = ? AND passed = ? AND is_deleted = ?", userID, courseID, true, false).
		Count(&passedUnits)

	if int(passedUnits) >= len(units) && len(units) > 0 {
		enrollment.Status = "COMPLETED"
	} else if passedUnits > 0 {
		enrollment.Status = "IN_PROGRESS"
	}
	db.Save(&enrollment)
}

// ListQuizAttempts returns the attempt history for a (course, unit),
// ordered by attempt number ascending.
func ListQuizAttempts(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Locals("courseID").(string)
	unitNumber := c.Locals("unitNumber").(int)

	attempts, err := dbHistory{}.Attempts(userID, courseID, unitNumber)
	if err != nil {
		log.Printf("Error fetching quiz attempts: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch attempts")
	}
	return c.JSON(fiber.Map{"attempts": attempts})
}

// QuizStatus summarizes per-unit quiz outcomes for a course.
func QuizStatus(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Locals("courseID").(string)

	var rows []courseModels.QuizAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Order("unit_number asc, attempt_number asc").
		Find(&rows).Error; err != nil {
		log.Printf("Error fetching quiz status: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch quiz status")
	}

	type unitStatus struct {
		Passed         bool `json:"passed"`
		BestPercentage int  `json:"bestPercentage"`
		Attempts       int  `json:"attempts"`
	}
	units := map[string]*unitStatus{}
	passedUnits := []int{}
	for _, row := range rows {
		key := strconv.Itoa(row.UnitNumber)
		st, ok := units[key]
		if !ok {
			st = &unitStatus{}
			units[key] = st
		}
		st.Attempts++
		if row.Percentage > st.BestPercentage {
			st.BestPercentage = row.Percentage
		}
		if row.Passed && !st.Passed {
			st.Passed = true
			passedUnits = append(passedUnits, row.UnitNumber)
		}
	}

	return c.JSON(fiber.Map{"units": units, "passedUnits": passedUnits})
}

// QuizHelp proxies the text tutoring endpoint.
func QuizHelp(c *fiber.Ctx) error {
	reqData := c.Locals("helpRequest").(*HelpRequest)

	reply, err := backendClient.QuizHelpText(
		reqData.CourseID, reqData.UnitNumber, reqData.QuestionIndex,
		reqData.QuestionType, reqData.ConversationHistory, reqData.StudentMessage,
	)
	if err != nil {
		return upstreamError(c, err, "Failed to get quiz help")
	}
	return c.JSON(fiber.Map{"response": reply})
}

// HelpRequest is the validated body for QuizHelp.
type HelpRequest struct {
	CourseID            string                `json:"courseId"`
	UnitNumber          int                   `json:"unitNumber"`
	QuestionIndex       int                   `json:"questionIndex"`
	QuestionType        string                `json:"questionType"`
	ConversationHistory []backend.HelpMessage `json:"conversationHistory"`
	StudentMessage      string                `json:"studentMessage"`
}
