package authController

import (
	"log"

	"github.com/mdv314/claritas-learning/config"
	"github.com/mdv314/claritas-learning/database"
	"github.com/mdv314/claritas-learning/middleware"
	"github.com/mdv314/claritas-learning/models"
	"github.com/mdv314/claritas-learning/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// fieldErrors flattens validator output into a field -> message map.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed " + fe.Tag() + " validation"
		}
	}
	return fields
}

// Signup creates a user account and opens a session.
func Signup(c *fiber.Ctx) error {
	var reqData signupRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(reqData); err != nil {
		return middleware.ValidationErrorResponse(c, fieldErrors(err))
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	// Welcome mail is best-effort and must not delay signup
	go func(name, email string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			log.Printf("Error sending welcome email to %s: %v", email, err)
		}
	}(newUser.Name, newUser.Email)

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Name, newUser.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	middleware.SetAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user_id": newUser.ID,
	})
}

// Login verifies credentials and sets the session cookie.
func Login(c *fiber.Ctx) error {
	var reqData loginRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email and password required")
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	middleware.SetAuthCookie(c, token)

	return c.JSON(fiber.Map{"success": true})
}

// Logout clears the session cookie.
func Logout(c *fiber.Ctx) error {
	middleware.ClearAuthCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// Status reports the session state. Unauthenticated callers get
// {authenticated:false}, never a 401.
func Status(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == 0 {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{"authenticated": true, "user_id": userID})
}
