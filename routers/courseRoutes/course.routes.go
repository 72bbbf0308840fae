package courseRoutes

import (
	controllers "github.com/mdv314/claritas-learning/controllers/course"
	"github.com/mdv314/claritas-learning/middleware"
	validators "github.com/mdv314/claritas-learning/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course generation, enrollment and progress routes
func SetupCourseRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Course generation and fetch (anonymous callers allowed)
	api.Post("/generate-course", middleware.AuthOptional, controllers.GenerateCourse)
	api.Get("/course/:id", middleware.AuthOptional, validators.CourseIDParam(), controllers.GetCourse)
	api.Post("/topic", middleware.AuthOptional, validators.GenerateTopic(), controllers.GenerateTopic)

	// Enrollment requires an account
	api.Get("/courses", middleware.AuthRequired, controllers.ListUserCourses)
	api.Post("/enroll", middleware.AuthRequired, validators.Enroll(), controllers.Enroll)

	// Progress works for anonymous callers too, via the local file store
	api.Get("/progress", middleware.AuthOptional, validators.CourseIDQuery(), controllers.GetProgress)
	api.Post("/progress", middleware.AuthOptional, validators.SaveProgress(), controllers.SaveProgress)
	api.Post("/topic-visited", middleware.AuthOptional, validators.TopicVisited(), controllers.TopicVisited)
	api.Get("/resume", middleware.AuthOptional, validators.CourseIDQuery(), controllers.ResumeCourse)
}
