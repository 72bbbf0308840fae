package middleware

import (
	"fmt"
	"time"

	"github.com/mdv314/claritas-learning/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AuthCookieName is the HTTP-only session cookie carrying the JWT.
const AuthCookieName = "access_token"

const tokenLifetime = 24 * time.Hour

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, name, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// SetAuthCookie attaches the session token as an HttpOnly cookie.
// SameSite=Lax; Secure only in production so local HTTP still works.
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenLifetime.Seconds()),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   config.IsProduction(),
	})
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   config.IsProduction(),
	})
}

// parseUserID validates the raw token and extracts the user id claim.
func parseUserID(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, fmt.Errorf("invalid token payload")
	}

	// JWT number claims decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid token payload")
	}
	return uint(userID), nil
}

// AuthRequired rejects requests without a valid session cookie with the
// uniform 401 body used across all authenticated routes.
func AuthRequired(c *fiber.Ctx) error {
	cookie := c.Cookies(AuthCookieName)
	if cookie == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	userID, err := parseUserID(cookie)
	if err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	c.Locals("userId", userID)
	return c.Next()
}

// AuthOptional resolves the session when present but never rejects. Handlers
// read Locals("userId") == nil as an anonymous caller.
func AuthOptional(c *fiber.Ctx) error {
	cookie := c.Cookies(AuthCookieName)
	if cookie != "" {
		if userID, err := parseUserID(cookie); err == nil {
			c.Locals("userId", userID)
		}
	}
	return c.Next()
}

// UserID returns the authenticated user id, or 0 for anonymous callers.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userId").(uint); ok {
		return id
	}
	return 0
}
