package courseValidator

import (
	"strings"

	controllers "github.com/mdv314/claritas-learning/controllers/course"
	"github.com/mdv314/claritas-learning/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseIDParam validates the :id path parameter.
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing courseId")
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseIDQuery validates the ?courseId query parameter.
func CourseIDQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Query("courseId"))
		if courseID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing courseId")
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// GenerateTopic validates the topic-generation body.
func GenerateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.TopicRequest)
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
		if reqData.SubtopicIndex < 0 {
			errors["subtopicIndex"] = "subtopicIndex must not be negative"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("topicRequest", reqData)
		return c.Next()
	}
}

// Enroll validates the enrollment body.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(reqData.CourseID) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing course_id")
		}
		c.Locals("enrollRequest", reqData)
		return c.Next()
	}
}

// SaveProgress validates the progress mirror write body.
func SaveProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(reqData.CourseID) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing course_id")
		}
		c.Locals("progressRequest", reqData)
		return c.Next()
	}
}

// TopicVisited validates the visit-tracking body.
func TopicVisited() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.VisitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.CourseID) == "" {
			errors["course_id"] = "course_id is required"
		}
		if reqData.UnitNumber < 1 {
			errors["unitNumber"] = "unitNumber must be greater than 0"
		}
		if reqData.SubtopicIndex < 0 {
			errors["subtopicIndex"] = "subtopicIndex must not be negative"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("visitRequest", reqData)
		return c.Next()
	}
}
