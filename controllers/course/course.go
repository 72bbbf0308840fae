package courseController

import (
	"errors"
	"log"
	"strconv"

	"github.com/mdv314/claritas-learning/backend"
	"github.com/mdv314/claritas-learning/config"
	"github.com/mdv314/claritas-learning/database"
	"github.com/mdv314/claritas-learning/middleware"
	courseModels "github.com/mdv314/claritas-learning/models/course"
	"github.com/mdv314/claritas-learning/navigator"
	"github.com/mdv314/claritas-learning/progress"
	"github.com/mdv314/claritas-learning/quizsession"

	"github.com/gofiber/fiber/v2"
)

var (
	backendClient *backend.Client
	sessions      *quizsession.Manager
	localProgress *progress.FileStore
)

// Init wires the controllers to the AI backend client and builds the quiz
// session manager around it. Must be called before routes are served.
func Init(client *backend.Client) {
	backendClient = client
	localProgress = progress.NewFileStore(config.AppConfig.ProgressFile)
	sessions = quizsession.NewManager(
		backendGenerator{client: client},
		persistingEvaluator{client: client},
		dbHistory{},
	)
}

// progressStore picks the progress backend for a caller: the per-user
// database mirror when authenticated, the local JSON file otherwise.
func progressStore(userID uint) progress.Store {
	if userID == 0 {
		return localProgress
	}
	return mirrorStore{userID: userID}
}

// Sessions exposes the manager for the background janitor.
func Sessions() *quizsession.Manager {
	return sessions
}

// authIDString is the id form sent to the backend for attempt attribution.
func authIDString(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// upstreamError propagates the backend status when known, else answers 502.
func upstreamError(c *fiber.Ctx, err error, message string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return middleware.ErrorResponse(c, apiErr.StatusCode, message, apiErr.Body)
	}
	log.Printf("Backend call failed: %v", err)
	return middleware.ErrorResponse(c, fiber.StatusBadGateway, message, err.Error())
}

// GenerateCourse proxies the multipart course-generation form to the AI
// backend and returns the generated plan.
func GenerateCourse(c *fiber.Ctx) error {
	req := backend.GenerateCourseRequest{
		Topic:           c.FormValue("topic"),
		SkillLevel:      c.FormValue("skill_level"),
		AgeGroup:        c.FormValue("age_group"),
		AdditionalNotes: c.FormValue("additional_notes"),
		MaterialsText:   c.FormValue("materials_text"),
	}
	if req.Topic == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing topic")
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Could not read uploaded file")
		}
		defer f.Close()
		req.FileName = fh.Filename
		req.File = f
	}

	plan, err := backendClient.GenerateCourse(req)
	if err != nil {
		return upstreamError(c, err, "Failed to generate course")
	}
	return c.JSON(plan)
}

// GetCourse proxies a course plan fetch by id.
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	plan, err := backendClient.GetCourse(courseID)
	if err != nil {
		return upstreamError(c, err, "Course not found")
	}
	return c.JSON(plan)
}

// GenerateTopic proxies lesson generation for a single subtopic.
func GenerateTopic(c *fiber.Ctx) error {
	reqData := c.Locals("topicRequest").(*TopicRequest)

	topic, err := backendClient.GenerateTopic(reqData.CourseID, reqData.UnitNumber, reqData.SubtopicIndex)
	if err != nil {
		return upstreamError(c, err, "Failed to generate topic")
	}
	return c.JSON(topic)
}

// TopicRequest is the validated body for GenerateTopic.
type TopicRequest struct {
	CourseID      string `json:"courseId"`
	UnitNumber    int    `json:"unitNumber"`
	SubtopicIndex int    `json:"subtopicIndex"`
}

// ListUserCourses returns the caller's enrollments.
func ListUserCourses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at asc").
		Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollments for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	courses := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		courses = append(courses, fiber.Map{
			"course_id":    e.CourseID,
			"course_title": e.CourseTitle,
			"status":       e.Status,
			"enrolled_at":  e.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

// ResumeCourse resolves where the user should pick a course back up: the
// lastVisited unit when it still exists, else the first unit of the plan.
func ResumeCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Locals("courseID").(string)

	plan, err := backendClient.GetCourse(courseID)
	if err != nil {
		return upstreamError(c, err, "Course not found")
	}

	store := progressStore(userID)
	unitNumber := navigator.ResumeTarget(plan, store.Load(courseID))
	return c.JSON(fiber.Map{"unitNumber": unitNumber})
}
