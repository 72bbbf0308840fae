package main

import (
	"log"
	"time"

	"github.com/mdv314/claritas-learning/backend"
	"github.com/mdv314/claritas-learning/config"
	courseController "github.com/mdv314/claritas-learning/controllers/course"
	"github.com/mdv314/claritas-learning/database"
	"github.com/mdv314/claritas-learning/routers/authRoutes"
	"github.com/mdv314/claritas-learning/routers/courseRoutes"
	"github.com/mdv314/claritas-learning/routers/quizRoutes"
	"github.com/mdv314/claritas-learning/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	backendClient := backend.New(
		config.AppConfig.BackendURL,
		time.Duration(config.AppConfig.BackendTimeout)*time.Second,
	)
	courseController.Init(backendClient)

	janitor := utils.StartSessionJanitor(courseController.Sessions())
	defer janitor.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3001",
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	quizRoutes.SetupQuizRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
