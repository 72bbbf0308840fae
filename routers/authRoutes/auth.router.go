package authRoutes

import (
	controllers "github.com/mdv314/claritas-learning/controllers/auth"
	"github.com/mdv314/claritas-learning/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up session and account routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api")

	authGroup.Post("/signup", controllers.Signup)
	authGroup.Post("/login", controllers.Login)
	authGroup.Post("/logout", controllers.Logout)
	authGroup.Get("/auth", middleware.AuthOptional, controllers.Status)
}
